package aqi

import (
	"testing"
	"time"
)

func TestGenerateSynthetic(t *testing.T) {
	now := time.Date(2025, 8, 26, 14, 30, 0, 0, time.UTC)
	readings := GenerateSynthetic(48, now)

	if len(readings) != 48 {
		t.Fatalf("expected 48 readings, got %d", len(readings))
	}

	for i, r := range readings {
		if r.AQI < 0 || r.AQI > 500 {
			t.Errorf("reading %d: AQI %v out of [0,500]", i, r.AQI)
		}
		if r.PM25 <= 0 {
			t.Errorf("reading %d: expected positive PM2.5, got %v", i, r.PM25)
		}
		if i > 0 && !readings[i-1].Timestamp.Before(r.Timestamp) {
			t.Errorf("reading %d: timestamps not strictly increasing", i)
		}
	}

	last := readings[len(readings)-1]
	if last.Timestamp != now.Truncate(time.Hour) {
		t.Errorf("last timestamp = %v, want %v", last.Timestamp, now.Truncate(time.Hour))
	}
}

func TestSynthesizeFromCurrent(t *testing.T) {
	now := time.Date(2025, 8, 26, 14, 0, 0, 0, time.UTC)
	readings := SynthesizeFromCurrent(20, 35, 0.9, 40, 25, 8, now)

	if len(readings) != 48 {
		t.Fatalf("expected 48 readings, got %d", len(readings))
	}

	for i, r := range readings {
		// Variation stays within [0.8, 1.35] of the input.
		if r.PM25 < 20*0.8 || r.PM25 > 20*1.4 {
			t.Errorf("reading %d: PM2.5 %v outside expected variation band", i, r.PM25)
		}
		if r.AQI <= 0 {
			t.Errorf("reading %d: expected positive AQI, got %v", i, r.AQI)
		}
	}
}
