package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"aqi-dashboard/internal/services"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler refreshes the enriched table on a fixed interval. Overlapping
// runs are skipped rather than queued; a refresh against a rate-limited API
// can outlast a short interval.
type Scheduler struct {
	enricher *services.Enricher
	logger   *zap.Logger
	interval time.Duration
	timeout  time.Duration
	cron     *cron.Cron

	mu       sync.Mutex
	running  bool
	inFlight bool
	lastRun  time.Time
}

func NewScheduler(enricher *services.Enricher, interval, timeout time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		enricher: enricher,
		logger:   logger,
		interval: interval,
		timeout:  timeout,
		cron:     cron.New(),
	}
}

func (s *Scheduler) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.mu.Unlock()

	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cron.AddFunc(spec, s.runRefresh); err != nil {
		return fmt.Errorf("scheduling table refresh: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Scheduler started", zap.Duration("interval", s.interval))

	// Run immediately on start so the table is populated before the first tick.
	go s.runRefresh()

	return nil
}

func (s *Scheduler) runRefresh() {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		s.logger.Debug("Skipping refresh, previous run still in flight")
		return
	}
	s.inFlight = true
	s.lastRun = time.Now()
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	startTime := time.Now()
	s.logger.Info("Starting scheduled table refresh")

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.enricher.Refresh(ctx); err != nil {
		s.logger.Error("Scheduled table refresh failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(startTime)))
		return
	}

	s.logger.Info("Scheduled table refresh completed",
		zap.Duration("duration", time.Since(startTime)))
}

// ForceRun triggers a refresh outside the schedule.
func (s *Scheduler) ForceRun() {
	s.logger.Info("Manually triggering table refresh")
	go s.runRefresh()
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.logger.Info("Stopping scheduler")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false
}

func (s *Scheduler) Status() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]interface{}{
		"running":   s.running,
		"in_flight": s.inFlight,
		"interval":  s.interval.String(),
		"last_run":  s.lastRun,
	}
}
