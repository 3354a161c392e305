package websocket

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var awardUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// AwardsHandler upgrades an authenticated connection and keeps it registered
// until the peer goes away. It runs behind the auth middleware, which has
// already bound the email to the context.
func AwardsHandler(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	conn, err := awardUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade award connection: %v", err)
		return
	}

	client := &AwardClient{Conn: conn, Email: email}
	RegisterAwardClient(client)

	// Drain control frames; the hub only pushes
	go func() {
		defer UnregisterAwardClient(client)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
