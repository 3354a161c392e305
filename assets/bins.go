// Package assets bundles the static trash-bin dataset the map screen renders.
package assets

import (
	_ "embed"
	"encoding/json"
	"log"
	"math"
	"sort"
	"strconv"
	"sync"
)

//go:embed trashBins.json
var trashBinsJSON []byte

// rawBin mirrors the bundled dataset, which stores coordinates as strings
type rawBin struct {
	Name      string `json:"name"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// TrashBin is a point-of-interest marker with parsed coordinates
type TrashBin struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NearbyBin is a marker annotated with its distance from a device fix
type NearbyBin struct {
	TrashBin
	DistanceMeters float64 `json:"distanceMeters"`
}

var (
	bins     []TrashBin
	loadOnce sync.Once
)

// TrashBins returns the bundled markers, parsing the dataset on first use.
// Records with unparseable coordinates are skipped.
func TrashBins() []TrashBin {
	loadOnce.Do(func() {
		var raw []rawBin
		if err := json.Unmarshal(trashBinsJSON, &raw); err != nil {
			log.Printf("Failed to parse bundled trash-bin dataset: %v", err)
			return
		}

		for _, r := range raw {
			lat, err := strconv.ParseFloat(r.Latitude, 64)
			if err != nil {
				log.Printf("Skipping bin %q: bad latitude %q", r.Name, r.Latitude)
				continue
			}
			lng, err := strconv.ParseFloat(r.Longitude, 64)
			if err != nil {
				log.Printf("Skipping bin %q: bad longitude %q", r.Name, r.Longitude)
				continue
			}
			bins = append(bins, TrashBin{Name: r.Name, Latitude: lat, Longitude: lng})
		}
	})
	return bins
}

// Nearby returns up to limit bins sorted by distance from the given fix
func Nearby(latitude, longitude float64, limit int) []NearbyBin {
	all := TrashBins()
	nearby := make([]NearbyBin, 0, len(all))
	for _, bin := range all {
		nearby = append(nearby, NearbyBin{
			TrashBin:       bin,
			DistanceMeters: haversineMeters(latitude, longitude, bin.Latitude, bin.Longitude),
		})
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceMeters < nearby[j].DistanceMeters
	})

	if limit > 0 && limit < len(nearby) {
		nearby = nearby[:limit]
	}
	return nearby
}

const earthRadiusMeters = 6371000

func haversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}
