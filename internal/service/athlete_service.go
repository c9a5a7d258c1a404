package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/model"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/repository"
)

type AthleteService struct {
	athleteRepo  *repository.AthleteRepository
	guardianRepo *repository.GuardianRepository
	logger       *zap.Logger
}

func NewAthleteService(athleteRepo *repository.AthleteRepository, guardianRepo *repository.GuardianRepository, logger *zap.Logger) *AthleteService {
	return &AthleteService{
		athleteRepo:  athleteRepo,
		guardianRepo: guardianRepo,
		logger:       logger,
	}
}

func (s *AthleteService) Create(ctx context.Context, a *model.Athlete) error {
	if a.FirstName == "" || a.LastName == "" {
		return fmt.Errorf("%w: athlete name required", ErrInvalidState)
	}
	if a.GuardianID != nil {
		g, err := s.guardianRepo.GetByID(ctx, *a.GuardianID)
		if err != nil {
			return err
		}
		if g == nil {
			return fmt.Errorf("%w: guardian %d", ErrNotFound, *a.GuardianID)
		}
	}
	a.IsActive = true
	if err := s.athleteRepo.Create(ctx, a); err != nil {
		return err
	}
	s.logger.Info("Athlete created",
		zap.Int64("athlete_id", a.ID),
		zap.String("national_id", a.NationalID),
	)
	return nil
}

func (s *AthleteService) GetByID(ctx context.Context, id int64) (*model.Athlete, error) {
	a, err := s.athleteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}

func (s *AthleteService) List(ctx context.Context, limit, offset int) ([]*model.Athlete, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.athleteRepo.List(ctx, limit, offset)
}

func (s *AthleteService) ListByGuardian(ctx context.Context, guardianID int64) ([]*model.Athlete, error) {
	return s.athleteRepo.ListByGuardian(ctx, guardianID)
}

func (s *AthleteService) Update(ctx context.Context, a *model.Athlete) error {
	return s.athleteRepo.Update(ctx, a)
}

func (s *AthleteService) Deactivate(ctx context.Context, id int64) error {
	if err := s.athleteRepo.Deactivate(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Athlete deactivated", zap.Int64("athlete_id", id))
	return nil
}

func (s *AthleteService) CreateGuardian(ctx context.Context, g *model.Guardian) error {
	if g.FirstName == "" || g.LastName == "" {
		return fmt.Errorf("%w: guardian name required", ErrInvalidState)
	}
	if err := s.guardianRepo.Create(ctx, g); err != nil {
		return err
	}
	s.logger.Info("Guardian created", zap.Int64("guardian_id", g.ID))
	return nil
}

func (s *AthleteService) GetGuardian(ctx context.Context, id int64) (*model.Guardian, error) {
	g, err := s.guardianRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrNotFound
	}
	return g, nil
}

func (s *AthleteService) GuardianByUser(ctx context.Context, userID int64) (*model.Guardian, error) {
	g, err := s.guardianRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrNotFound
	}
	return g, nil
}

func (s *AthleteService) ListGuardians(ctx context.Context, limit, offset int) ([]*model.Guardian, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.guardianRepo.List(ctx, limit, offset)
}

func (s *AthleteService) UpdateGuardian(ctx context.Context, g *model.Guardian) error {
	return s.guardianRepo.Update(ctx, g)
}
