package aqi

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubHistory struct {
	readings []HourlyReading
	err      error
}

func (s stubHistory) Name() string { return "stub-history" }

func (s stubHistory) FetchHourly(_ context.Context, _ Location, _ int) ([]HourlyReading, error) {
	return s.readings, s.err
}

type stubCovariates struct {
	covs []Covariates
	err  error
}

func (s stubCovariates) Name() string { return "stub-covariates" }

func (s stubCovariates) FetchCovariates(_ context.Context, _ Location, _ int) ([]Covariates, error) {
	return s.covs, s.err
}

type fakeStore struct {
	readings  []HourlyReading
	fetchedAt time.Time
}

func (f *fakeStore) SaveReadings(_ Location, readings []HourlyReading) {
	f.readings = readings
	f.fetchedAt = time.Now()
}

func (f *fakeStore) GetReadings(_ Location) ([]HourlyReading, time.Time, error) {
	if len(f.readings) == 0 {
		return nil, time.Time{}, errors.New("not found")
	}
	return f.readings, f.fetchedAt, nil
}

func hourly(n int, baseAQI float64) []HourlyReading {
	now := time.Now().UTC().Truncate(time.Hour)
	readings := make([]HourlyReading, n)
	for i := range readings {
		readings[i] = HourlyReading{
			Timestamp: now.Add(-time.Duration(n-i-1) * time.Hour),
			AQI:       baseAQI + float64(i),
			PM25:      10,
		}
	}
	return readings
}

func TestFetchHistoryLive(t *testing.T) {
	st := &fakeStore{}
	svc := NewService(st, stubHistory{readings: hourly(24, 40)}, nil, nil, Options{})

	readings, source := svc.FetchHistory(context.Background(), Location{}, 24)
	if source != SourceLive {
		t.Fatalf("source = %q, want %q", source, SourceLive)
	}
	if len(readings) != 24 {
		t.Fatalf("expected 24 readings, got %d", len(readings))
	}
	if len(st.readings) != 24 {
		t.Errorf("expected readings stored, got %d", len(st.readings))
	}
}

func TestFetchHistoryServesFreshCache(t *testing.T) {
	st := &fakeStore{}
	st.SaveReadings(Location{}, hourly(48, 40))

	// The provider would fail; fresh cache must win before it is consulted.
	svc := NewService(st, stubHistory{err: errors.New("down")}, nil, nil, Options{
		FreshFor: time.Hour,
	})

	readings, source := svc.FetchHistory(context.Background(), Location{}, 24)
	if source != SourceCache {
		t.Fatalf("source = %q, want %q", source, SourceCache)
	}
	if len(readings) != 24 {
		t.Fatalf("expected cache trimmed to 24 readings, got %d", len(readings))
	}
}

func TestFetchHistorySyntheticFallback(t *testing.T) {
	svc := NewService(&fakeStore{}, stubHistory{err: errors.New("provider down")}, nil, nil, Options{
		SyntheticFallback: true,
	})

	readings, source := svc.FetchHistory(context.Background(), Location{}, 24)
	if source != SourceSynthetic {
		t.Fatalf("source = %q, want %q", source, SourceSynthetic)
	}
	if len(readings) != 24 {
		t.Fatalf("expected 24 synthetic readings, got %d", len(readings))
	}
}

func TestFetchHistoryNoDataWithoutFallback(t *testing.T) {
	svc := NewService(&fakeStore{}, stubHistory{err: errors.New("provider down")}, nil, nil, Options{})

	readings, source := svc.FetchHistory(context.Background(), Location{}, 24)
	if readings != nil || source != "" {
		t.Fatalf("expected absent result, got %d readings from %q", len(readings), source)
	}
}

func TestFetchHistoryCovariateFailureDegrades(t *testing.T) {
	svc := NewService(&fakeStore{}, stubHistory{readings: hourly(24, 40)},
		stubCovariates{err: errors.New("forecast down")}, nil, Options{})

	readings, source := svc.FetchHistory(context.Background(), Location{}, 24)
	if source != SourceLive {
		t.Fatalf("source = %q, want %q", source, SourceLive)
	}
	if len(readings) != 24 {
		t.Fatalf("expected pollutant-only readings, got %d", len(readings))
	}
	if readings[0].Temperature != 0 {
		t.Errorf("expected zero covariates, got temperature %v", readings[0].Temperature)
	}
}

func TestMergeCovariates(t *testing.T) {
	readings := hourly(3, 40)
	covs := []Covariates{
		{Timestamp: readings[1].Timestamp, Temperature: 21.5, Humidity: 60, WindSpeed: 3.2},
	}

	merged := MergeCovariates(readings, covs)
	if merged[1].Temperature != 21.5 || merged[1].Humidity != 60 {
		t.Errorf("covariates not merged into matching hour: %+v", merged[1])
	}
	if merged[0].Temperature != 0 {
		t.Errorf("unmatched hour should stay untouched, got temperature %v", merged[0].Temperature)
	}
	// Input must not be mutated.
	if readings[1].Temperature != 0 {
		t.Errorf("MergeCovariates mutated its input")
	}
}

func TestTrend(t *testing.T) {
	cases := []struct {
		name string
		aqis []float64
		want string
	}{
		{"too short", []float64{50, 60}, "stable"},
		{"rising", []float64{40, 45, 50}, "increasing"},
		{"falling", []float64{50, 45, 40}, "decreasing"},
		{"flat", []float64{50, 80, 50}, "stable"},
	}

	for _, tc := range cases {
		readings := make([]HourlyReading, len(tc.aqis))
		for i, v := range tc.aqis {
			readings[i] = HourlyReading{AQI: v}
		}
		if got := Trend(readings); got != tc.want {
			t.Errorf("%s: Trend = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestRefreshKeepsLastGoodReadings(t *testing.T) {
	st := &fakeStore{}
	st.SaveReadings(Location{}, hourly(24, 40))

	svc := NewService(st, stubHistory{err: errors.New("down")}, nil, nil, Options{})
	if err := svc.Refresh(context.Background(), Location{}, 48); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if len(st.readings) != 24 {
		t.Errorf("failed refresh must not overwrite stored readings, got %d", len(st.readings))
	}
}
