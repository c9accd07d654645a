package store

import (
	"errors"
	"testing"
	"time"

	"github.com/airpulse/aqi-prediction-service/internal/aqi"
)

func readings(n int, end time.Time) []aqi.HourlyReading {
	out := make([]aqi.HourlyReading, n)
	for i := range out {
		out[i] = aqi.HourlyReading{
			Timestamp: end.Add(-time.Duration(n-i-1) * time.Hour),
			AQI:       float64(i),
		}
	}
	return out
}

func TestGetReadingsNotFound(t *testing.T) {
	s := NewMemoryStore(0, 0)

	_, _, err := s.GetReadings(aqi.Location{Latitude: 1, Longitude: 2})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveAndGetReadings(t *testing.T) {
	s := NewMemoryStore(0, 0)
	loc := aqi.Location{Latitude: -15.7797, Longitude: -47.9297}

	s.SaveReadings(loc, readings(24, time.Now().UTC()))

	got, fetchedAt, err := s.GetReadings(loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 24 {
		t.Fatalf("expected 24 readings, got %d", len(got))
	}
	if time.Since(fetchedAt) > time.Minute {
		t.Errorf("fetchedAt not recorded: %v", fetchedAt)
	}

	// Coordinates rounding to 4 decimals must hit the same entry.
	jittered := aqi.Location{Latitude: -15.77968, Longitude: -47.92972}
	if _, _, err := s.GetReadings(jittered); err != nil {
		t.Errorf("jittered coordinates missed the cache: %v", err)
	}
}

func TestRetentionByCount(t *testing.T) {
	s := NewMemoryStore(10, 0)
	loc := aqi.Location{}

	s.SaveReadings(loc, readings(24, time.Now().UTC()))

	got, _, err := s.GetReadings(loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 10 {
		t.Fatalf("expected retention to keep 10 readings, got %d", len(got))
	}
	// The newest readings must survive.
	if got[len(got)-1].AQI != 23 {
		t.Errorf("retention dropped the newest reading: %+v", got[len(got)-1])
	}
}

func TestRetentionByAge(t *testing.T) {
	s := NewMemoryStore(0, 6*time.Hour)
	loc := aqi.Location{}

	s.SaveReadings(loc, readings(24, time.Now().UTC()))

	got, _, err := s.GetReadings(loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 24 hourly readings ending now; only the last ~6 hours survive.
	if len(got) < 5 || len(got) > 7 {
		t.Fatalf("expected roughly 6 readings after age retention, got %d", len(got))
	}
}

func TestSaveReplacesHistory(t *testing.T) {
	s := NewMemoryStore(0, 0)
	loc := aqi.Location{}

	s.SaveReadings(loc, readings(24, time.Now().UTC().Add(-2*time.Hour)))
	s.SaveReadings(loc, readings(12, time.Now().UTC()))

	got, _, err := s.GetReadings(loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 12 {
		t.Fatalf("expected fresh window to replace the old one, got %d readings", len(got))
	}
}

func TestGetReadingsReturnsCopy(t *testing.T) {
	s := NewMemoryStore(0, 0)
	loc := aqi.Location{}
	s.SaveReadings(loc, readings(3, time.Now().UTC()))

	first, _, _ := s.GetReadings(loc)
	first[0].AQI = 999

	second, _, _ := s.GetReadings(loc)
	if second[0].AQI == 999 {
		t.Errorf("GetReadings leaked internal state")
	}
}
