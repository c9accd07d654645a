package aqi

import (
	"context"
	"time"
)

// HistoryProvider abstracts a source of hourly pollutant readings
// (e.g. the Open-Meteo air-quality API).
//
// Implementations return (nil, err) on any failure — network, non-2xx,
// malformed payload. Callers treat a nil result as "no data"; it is never
// fatal.
type HistoryProvider interface {
	Name() string
	FetchHourly(ctx context.Context, loc Location, hours int) ([]HourlyReading, error)
}

// CovariateProvider abstracts a source of hourly weather covariates that are
// merged into pollutant readings by hour. Same failure contract as
// HistoryProvider; a missing covariate feed degrades to pollutant-only
// readings.
type CovariateProvider interface {
	Name() string
	FetchCovariates(ctx context.Context, loc Location, hours int) ([]Covariates, error)
}

// Store is the contract the in-memory reading history must satisfy.
type Store interface {
	SaveReadings(loc Location, readings []HourlyReading)
	GetReadings(loc Location) ([]HourlyReading, time.Time, error)
}

// Labeler resolves a display name for coordinates. Implementations must be
// non-fatal; an empty string means unknown.
type Labeler interface {
	Label(loc Location) string
}
