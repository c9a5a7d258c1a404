package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/model"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/repository"
)

type RecordService struct {
	recordRepo   *repository.RecordRepository
	athleteRepo  *repository.AthleteRepository
	guardianRepo *repository.GuardianRepository
	userRepo     *repository.UserRepository
	logger       *zap.Logger
}

func NewRecordService(
	recordRepo *repository.RecordRepository,
	athleteRepo *repository.AthleteRepository,
	guardianRepo *repository.GuardianRepository,
	userRepo *repository.UserRepository,
	logger *zap.Logger,
) *RecordService {
	return &RecordService{
		recordRepo:   recordRepo,
		athleteRepo:  athleteRepo,
		guardianRepo: guardianRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

// Create writes a clinical note. The author must be a professional and the
// note carries the author's own specialty.
func (s *RecordService) Create(ctx context.Context, rec *model.ClinicalRecord) error {
	author, err := s.userRepo.GetByID(ctx, rec.ProfessionalID)
	if err != nil {
		return err
	}
	if author == nil || author.Role != model.RoleProfessional {
		return fmt.Errorf("%w: only professionals write clinical records", ErrForbidden)
	}

	athlete, err := s.athleteRepo.GetByID(ctx, rec.AthleteID)
	if err != nil {
		return err
	}
	if athlete == nil {
		return ErrNotFound
	}

	if rec.Title == "" || rec.Body == "" {
		return fmt.Errorf("%w: title and body required", ErrInvalidState)
	}

	rec.Specialty = author.Specialty
	if err := s.recordRepo.Create(ctx, rec); err != nil {
		return err
	}

	s.logger.Info("Clinical record created",
		zap.Int64("record_id", rec.ID),
		zap.Int64("athlete_id", rec.AthleteID),
		zap.String("specialty", string(rec.Specialty)),
	)
	return nil
}

// GetByID returns a record if the viewer may read notes about its athlete.
func (s *RecordService) GetByID(ctx context.Context, id, viewerID int64, viewerRole model.Role) (*model.ClinicalRecord, error) {
	rec, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	if err := s.authorizeRead(ctx, rec.AthleteID, viewerID, viewerRole); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *RecordService) ListByAthlete(ctx context.Context, athleteID, viewerID int64, viewerRole model.Role) ([]*model.ClinicalRecord, error) {
	if err := s.authorizeRead(ctx, athleteID, viewerID, viewerRole); err != nil {
		return nil, err
	}
	return s.recordRepo.ListByAthlete(ctx, athleteID)
}

func (s *RecordService) ListByProfessional(ctx context.Context, professionalID int64) ([]*model.ClinicalRecord, error) {
	return s.recordRepo.ListByProfessional(ctx, professionalID)
}

// authorizeRead lets clinical staff read any record and guardians read
// records about their own athletes; coaching roles get nothing.
func (s *RecordService) authorizeRead(ctx context.Context, athleteID, viewerID int64, viewerRole model.Role) error {
	switch viewerRole {
	case model.RoleProfessional, model.RoleAdmin:
		return nil
	case model.RoleGuardian:
		guardian, err := s.guardianRepo.GetByUserID(ctx, viewerID)
		if err != nil {
			return err
		}
		if guardian == nil {
			return ErrForbidden
		}
		athlete, err := s.athleteRepo.GetByID(ctx, athleteID)
		if err != nil {
			return err
		}
		if athlete == nil || athlete.GuardianID == nil || *athlete.GuardianID != guardian.ID {
			return ErrForbidden
		}
		return nil
	default:
		return ErrForbidden
	}
}
