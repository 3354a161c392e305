package websocket

import (
	"log"
	"sync"

	"recycup/models"

	"github.com/gorilla/websocket"
)

// AwardClient represents a client connected for award notifications
type AwardClient struct {
	Conn    *websocket.Conn
	Email   string
	writeMu sync.Mutex
}

// SafeWriteJSON safely writes JSON data to the client's connection
func (ac *AwardClient) SafeWriteJSON(v interface{}) error {
	ac.writeMu.Lock()
	defer ac.writeMu.Unlock()
	return ac.Conn.WriteJSON(v)
}

// Global award hub for broadcasting events to all connected clients
var (
	awardClients = make(map[*AwardClient]bool)
	awardMutex   sync.RWMutex
)

// RegisterAwardClient registers a client for award notifications
func RegisterAwardClient(client *AwardClient) {
	awardMutex.Lock()
	defer awardMutex.Unlock()
	awardClients[client] = true
	log.Printf("Award client registered. Total clients: %d", len(awardClients))
}

// UnregisterAwardClient removes a client and closes its connection
func UnregisterAwardClient(client *AwardClient) {
	awardMutex.Lock()
	defer awardMutex.Unlock()
	delete(awardClients, client)
	client.Conn.Close()
	log.Printf("Award client unregistered. Total clients: %d", len(awardClients))
}

// BroadcastAwardEvent broadcasts a mileage award to all connected clients
func BroadcastAwardEvent(event models.AwardEvent) {
	awardMutex.RLock()
	defer awardMutex.RUnlock()

	for client := range awardClients {
		if err := client.SafeWriteJSON(event); err != nil {
			log.Printf("Error broadcasting award event to client: %v", err)
			// Remove client if write fails
			go UnregisterAwardClient(client)
		}
	}

	log.Printf("Broadcasted award event for %s to %d clients", event.Email, len(awardClients))
}

// GetAwardClientsCount returns the number of connected award clients
func GetAwardClientsCount() int {
	awardMutex.RLock()
	defer awardMutex.RUnlock()
	return len(awardClients)
}
