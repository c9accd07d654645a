package store

import (
	"errors"
	"sync"
	"time"

	"github.com/airpulse/aqi-prediction-service/internal/aqi"
)

var (
	// ErrNotFound is returned when no readings are available for a location.
	ErrNotFound = errors.New("no readings for location")
)

// readingHistory holds the readings for one location plus the time the last
// fetch completed.
type readingHistory struct {
	readings  []aqi.HourlyReading
	fetchedAt time.Time
}

// MemoryStore is a concurrency-safe in-memory reading history keyed by
// rounded coordinates. Readings have no identity beyond their timestamp;
// nothing is persisted.
type MemoryStore struct {
	mu sync.RWMutex

	data map[string]*readingHistory

	maxHistory int           // max readings per location (0 = unlimited)
	maxAge     time.Duration // max age of readings (0 = unlimited)
}

// NewMemoryStore creates a new MemoryStore with optional retention limits.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*readingHistory),
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// SaveReadings replaces the stored history for a location with a fresh
// fetch window and enforces retention. readings must be oldest first.
func (s *MemoryStore) SaveReadings(loc aqi.Location, readings []aqi.HourlyReading) {
	if len(readings) == 0 {
		return
	}

	kept := make([]aqi.HourlyReading, len(readings))
	copy(kept, readings)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(kept) > s.maxHistory {
		kept = kept[len(kept)-s.maxHistory:]
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(kept); i++ {
			if !kept[i].Timestamp.Before(cutoff) {
				break
			}
		}
		kept = kept[i:]
	}

	if len(kept) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[loc.Key()] = &readingHistory{
		readings:  kept,
		fetchedAt: time.Now(),
	}
}

// GetReadings returns the stored readings for a location, oldest first,
// along with when they were fetched.
func (s *MemoryStore) GetReadings(loc aqi.Location) ([]aqi.HourlyReading, time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[loc.Key()]
	if !ok || len(history.readings) == 0 {
		return nil, time.Time{}, ErrNotFound
	}

	out := make([]aqi.HourlyReading, len(history.readings))
	copy(out, history.readings)
	return out, history.fetchedAt, nil
}
