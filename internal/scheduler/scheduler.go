package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/airpulse/aqi-prediction-service/internal/aqi"
)

// refreshHours is the history window fetched on each background refresh,
// wide enough for the largest prediction input.
const refreshHours = 48

// Scheduler periodically refreshes readings for the fallback location so
// default-location requests are served warm.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *aqi.Service
	location  aqi.Location
	interval  time.Duration
	log       *slog.Logger
}

// New creates a new Scheduler.
func New(location aqi.Location, interval time.Duration, service *aqi.Service, log *slog.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		location:  location,
		interval:  interval,
		log:       log,
	}
}

// Start schedules the periodic refresh and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		s.log.Info("running background refresh", "location", s.location.Key())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.service.Refresh(ctx, s.location, refreshHours); err != nil {
			s.log.Warn("background refresh failed", "location", s.location.Key(), "err", err)
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
