package aqi

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Data sources reported in response envelopes.
const (
	SourceLive      = "open-meteo"
	SourceCache     = "cache"
	SourceSynthetic = "synthetic"
)

// Options tunes Service behavior.
type Options struct {
	// SyntheticFallback substitutes generated readings when no live data is
	// available.
	SyntheticFallback bool

	// FreshFor is how long stored readings are served without refetching.
	FreshFor time.Duration

	// Labeler optionally resolves coordinates to a display name.
	Labeler Labeler
}

// Service orchestrates the providers, the reading store, and the synthetic
// fallback.
type Service struct {
	store      Store
	history    HistoryProvider
	covariates CovariateProvider
	opts       Options
	log        *slog.Logger
}

// NewService creates a new Service. covariates may be nil.
func NewService(store Store, history HistoryProvider, covariates CovariateProvider, log *slog.Logger, opts Options) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		store:      store,
		history:    history,
		covariates: covariates,
		opts:       opts,
		log:        log,
	}
}

// FetchHistory returns up to hours of hourly readings for loc, oldest first,
// along with the data source used. Fresh cached readings are served as-is;
// otherwise both providers are fetched concurrently and the merged result is
// stored. When nothing usable comes back the synthetic fallback applies, and
// with the fallback disabled the result is nil — a valid "no data" outcome,
// never an error.
func (s *Service) FetchHistory(ctx context.Context, loc Location, hours int) ([]HourlyReading, string) {
	if cached, fetchedAt, err := s.store.GetReadings(loc); err == nil {
		if s.opts.FreshFor > 0 && time.Since(fetchedAt) < s.opts.FreshFor && len(cached) > 0 {
			return tail(cached, hours), SourceCache
		}
	}

	readings := s.fetchLive(ctx, loc, hours)
	if len(readings) > 0 {
		s.store.SaveReadings(loc, readings)
		return readings, SourceLive
	}

	// Serve stale data over nothing.
	if cached, _, err := s.store.GetReadings(loc); err == nil && len(cached) > 0 {
		return tail(cached, hours), SourceCache
	}

	if s.opts.SyntheticFallback {
		s.log.Warn("no live readings, using synthetic fallback", "location", loc.Key())
		return GenerateSynthetic(hours, time.Now().UTC()), SourceSynthetic
	}

	return nil, ""
}

// Refresh fetches live readings for loc and stores them, bypassing the cache
// and the synthetic fallback. Used by the background scheduler.
func (s *Service) Refresh(ctx context.Context, loc Location, hours int) error {
	readings := s.fetchLive(ctx, loc, hours)
	if len(readings) == 0 {
		// Keep the last good readings if any.
		s.log.Warn("refresh produced no readings", "location", loc.Key())
		return nil
	}
	s.store.SaveReadings(loc, readings)
	return nil
}

// Label resolves a display name for loc, or "" when reverse geocoding is
// unavailable.
func (s *Service) Label(loc Location) string {
	if s.opts.Labeler == nil {
		return ""
	}
	return s.opts.Labeler.Label(loc)
}

// fetchLive runs the pollutant and covariate fetches in parallel; the two
// calls are independently fallible with no ordering dependency.
func (s *Service) fetchLive(ctx context.Context, loc Location, hours int) []HourlyReading {
	var (
		wg       sync.WaitGroup
		readings []HourlyReading
		covs     []Covariates
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		r, err := s.history.FetchHourly(ctx, loc, hours)
		if err != nil {
			s.log.Warn("pollutant fetch failed", "provider", s.history.Name(), "location", loc.Key(), "err", err)
			return
		}
		readings = r
	}()

	if s.covariates != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := s.covariates.FetchCovariates(ctx, loc, hours)
			if err != nil {
				s.log.Warn("covariate fetch failed", "provider", s.covariates.Name(), "location", loc.Key(), "err", err)
				return
			}
			covs = c
		}()
	}

	wg.Wait()

	return MergeCovariates(readings, covs)
}

// MergeCovariates folds weather covariates into pollutant readings, matched
// by hour. Readings without a matching covariate hour are kept untouched.
func MergeCovariates(readings []HourlyReading, covs []Covariates) []HourlyReading {
	if len(readings) == 0 || len(covs) == 0 {
		return readings
	}

	byHour := make(map[time.Time]Covariates, len(covs))
	for _, c := range covs {
		byHour[c.Timestamp.UTC().Truncate(time.Hour)] = c
	}

	merged := make([]HourlyReading, len(readings))
	for i, r := range readings {
		if c, ok := byHour[r.Timestamp.UTC().Truncate(time.Hour)]; ok {
			r.Temperature = c.Temperature
			r.Humidity = c.Humidity
			r.Pressure = c.Pressure
			r.WindSpeed = c.WindSpeed
			r.WindDirection = c.WindDirection
		}
		merged[i] = r
	}
	return merged
}

// Trend summarizes the short-term AQI direction over the last three points.
func Trend(readings []HourlyReading) string {
	if len(readings) < 3 {
		return "stable"
	}
	last := readings[len(readings)-1].AQI
	prev := readings[len(readings)-3].AQI
	switch {
	case last > prev:
		return "increasing"
	case last < prev:
		return "decreasing"
	default:
		return "stable"
	}
}

func tail(readings []HourlyReading, n int) []HourlyReading {
	if n > 0 && len(readings) > n {
		return readings[len(readings)-n:]
	}
	return readings
}
