package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/model"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/repository"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/schedule"
)

// AvailabilityService manages the weekly recurrence templates and expands
// them into published slots through the booking engine.
type AvailabilityService struct {
	ruleRepo *repository.AvailabilityRepository
	booking  *BookingService
	logger   *zap.Logger
	now      func() time.Time
}

func NewAvailabilityService(ruleRepo *repository.AvailabilityRepository, booking *BookingService, logger *zap.Logger) *AvailabilityService {
	return &AvailabilityService{
		ruleRepo: ruleRepo,
		booking:  booking,
		logger:   logger,
		now:      time.Now,
	}
}

// RuleSpec is one weekday/window entry of a rule group.
type RuleSpec struct {
	Weekday         int
	WindowStartMin  int
	WindowEndMin    int
	DurationMinutes int
	StepMinutes     int
}

// CreateGroup stores one rule per spec under a shared group id and
// immediately expands them weeksAhead weeks. Expansion goes through
// Publish, so windows already covered by existing slots are skipped.
func (s *AvailabilityService) CreateGroup(ctx context.Context, ownerID int64, specs []RuleSpec, location string, weeksAhead int) (uuid.UUID, int, error) {
	groupID := uuid.New()
	published := 0

	for _, spec := range specs {
		rule := &model.AvailabilityRule{
			GroupID:         groupID,
			OwnerID:         ownerID,
			Weekday:         spec.Weekday,
			WindowStartMin:  spec.WindowStartMin,
			WindowEndMin:    spec.WindowEndMin,
			DurationMinutes: spec.DurationMinutes,
			StepMinutes:     spec.StepMinutes,
			Location:        location,
			IsActive:        true,
		}

		// Validate before persisting so a bad entry rejects the whole group.
		if err := expansionRule(rule, weeksAhead, s.now()).Validate(); err != nil {
			return uuid.Nil, 0, err
		}

		if err := s.ruleRepo.Create(ctx, rule); err != nil {
			return uuid.Nil, 0, err
		}

		n, err := s.expand(ctx, rule, weeksAhead)
		if err != nil {
			s.logger.Error("Failed to expand new availability rule",
				zap.Error(err),
				zap.Int64("rule_id", rule.ID),
			)
			continue
		}
		published += n
	}

	s.logger.Info("Availability rule group created",
		zap.String("group_id", groupID.String()),
		zap.Int64("owner_id", ownerID),
		zap.Int("rules", len(specs)),
		zap.Int("slots_published", published),
	)
	return groupID, published, nil
}

// ExpandAll regenerates slots for every active rule. Called periodically
// by the background scheduler; idempotent thanks to the publish overlap
// filter.
func (s *AvailabilityService) ExpandAll(ctx context.Context, weeksAhead int) error {
	rules, err := s.ruleRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list active rules: %w", err)
	}

	total := 0
	for _, rule := range rules {
		n, err := s.expand(ctx, rule, weeksAhead)
		if err != nil {
			s.logger.Error("Failed to expand availability rule",
				zap.Error(err),
				zap.Int64("rule_id", rule.ID),
			)
			continue
		}
		total += n
	}

	s.logger.Info("Availability expansion finished",
		zap.Int("rules", len(rules)),
		zap.Int("slots_published", total),
	)
	return nil
}

func (s *AvailabilityService) expand(ctx context.Context, rule *model.AvailabilityRule, weeksAhead int) (int, error) {
	candidates, err := schedule.Candidates(expansionRule(rule, weeksAhead, s.now()))
	if err != nil {
		return 0, err
	}

	// Never offer windows that already started.
	now := s.now()
	fresh := candidates[:0]
	for _, c := range candidates {
		if c.Start.After(now) {
			fresh = append(fresh, c)
		}
	}

	published, err := s.booking.Publish(ctx, rule.OwnerID, fresh, rule.Location, "")
	if err != nil {
		return 0, err
	}
	return len(published), nil
}

func (s *AvailabilityService) ListByOwner(ctx context.Context, ownerID int64) ([]*model.AvailabilityRule, error) {
	return s.ruleRepo.ListByOwner(ctx, ownerID)
}

// DeactivateGroup retires every rule created together under one group id.
func (s *AvailabilityService) DeactivateGroup(ctx context.Context, groupID uuid.UUID, actorID int64) error {
	rules, err := s.ruleRepo.ListByOwner(ctx, actorID)
	if err != nil {
		return err
	}

	owned := false
	for _, rule := range rules {
		if rule.GroupID == groupID {
			owned = true
			break
		}
	}
	if !owned {
		return ErrNotFound
	}

	if err := s.ruleRepo.DeactivateGroup(ctx, groupID.String()); err != nil {
		return err
	}
	s.logger.Info("Availability rule group deactivated",
		zap.String("group_id", groupID.String()),
		zap.Int64("owner_id", actorID),
	)
	return nil
}

func (s *AvailabilityService) Deactivate(ctx context.Context, ruleID, actorID int64) error {
	rule, err := s.ruleRepo.GetByID(ctx, ruleID)
	if err != nil {
		return err
	}
	if rule == nil {
		return ErrNotFound
	}
	if rule.OwnerID != actorID {
		return ErrForbidden
	}
	return s.ruleRepo.Deactivate(ctx, ruleID)
}

func expansionRule(rule *model.AvailabilityRule, weeksAhead int, reference time.Time) schedule.Rule {
	return schedule.RuleFromAvailability(
		rule.Weekday,
		rule.WindowStartMin,
		rule.WindowEndMin,
		rule.DurationMinutes,
		rule.StepMinutes,
		weeksAhead,
		reference,
	)
}
