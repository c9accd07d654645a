// Package geo resolves coordinates to display names via reverse geocoding.
package geo

import (
	"fmt"
	"sync"

	"github.com/kelvins/geocoder"

	"github.com/airpulse/aqi-prediction-service/internal/aqi"
)

// Cache is a memoizing reverse geocoder. Lookups require a Google API key;
// without one every label is empty. Failures are cached as empty names so a
// broken upstream is only asked once per location.
type Cache struct {
	mu      sync.Mutex
	names   map[string]string
	enabled bool
}

// New configures the geocoder with apiKey. An empty key disables lookups.
func New(apiKey string) *Cache {
	if apiKey != "" {
		geocoder.ApiKey = apiKey
	}
	return &Cache{
		names:   make(map[string]string),
		enabled: apiKey != "",
	}
}

// Label returns a human-readable name for the location, or "" when unknown.
// Never fails.
func (c *Cache) Label(loc aqi.Location) string {
	if !c.enabled {
		return ""
	}

	key := loc.Key()

	c.mu.Lock()
	if name, ok := c.names[key]; ok {
		c.mu.Unlock()
		return name
	}
	c.mu.Unlock()

	name := lookup(loc)

	c.mu.Lock()
	c.names[key] = name
	c.mu.Unlock()

	return name
}

func lookup(loc aqi.Location) string {
	addresses, err := geocoder.GeocodingReverse(geocoder.Location{
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
	})
	if err != nil || len(addresses) == 0 {
		return ""
	}

	addr := addresses[0]
	switch {
	case addr.City != "" && addr.Country != "":
		return fmt.Sprintf("%s, %s", addr.City, addr.Country)
	case addr.City != "":
		return addr.City
	default:
		return addr.Country
	}
}
