package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/service"
)

// Scheduler runs the background slot expansion so active availability
// rules always cover the configured horizon.
type Scheduler struct {
	availability *service.AvailabilityService
	horizonWeeks int
	logger       *zap.Logger
	stopChan     chan struct{}
}

func NewScheduler(availability *service.AvailabilityService, horizonWeeks int, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		availability: availability,
		horizonWeeks: horizonWeeks,
		logger:       logger,
		stopChan:     make(chan struct{}),
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler",
		zap.Int("horizon_weeks", s.horizonWeeks))
	go s.runExpansionTask(ctx)
}

func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

func (s *Scheduler) runExpansionTask(ctx context.Context) {
	// expand immediately on startup, then once a day
	s.expand(ctx)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.expand(ctx)
		case <-s.stopChan:
			s.logger.Info("Slot expansion task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Slot expansion task cancelled")
			return
		}
	}
}

func (s *Scheduler) expand(ctx context.Context) {
	s.logger.Info("Starting automatic slot expansion")

	if err := s.availability.ExpandAll(ctx, s.horizonWeeks); err != nil {
		s.logger.Error("Slot expansion failed", zap.Error(err))
		return
	}

	s.logger.Info("Slot expansion completed")
}
