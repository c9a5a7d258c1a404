package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/auth"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/model"
	"github.com/carolinaopazo01-byte/proyecto-sub000/internal/repository"
)

type UserService struct {
	userRepo *repository.UserRepository
	tokens   *auth.TokenManager
	logger   *zap.Logger
}

func NewUserService(userRepo *repository.UserRepository, tokens *auth.TokenManager, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register creates an account. Accounts are always staff-created; there is
// no self sign-up.
func (s *UserService) Register(ctx context.Context, email, password, firstName, lastName, phone string, role model.Role, specialty model.Specialty) (*model.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidState, role)
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicate
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        phone,
		Role:         role,
		Specialty:    specialty,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("role", string(role)),
	)
	return user, nil
}

// Login verifies credentials and returns the user with a signed token.
func (s *UserService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("get user: %w", err)
	}
	if user == nil || !user.IsActive || !auth.CheckPassword(user.PasswordHash, password) {
		// One failure mode on purpose: do not reveal which part was wrong.
		return nil, "", ErrForbidden
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("User logged in", zap.Int64("user_id", user.ID))
	return user, token, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *UserService) ListByRole(ctx context.Context, role model.Role) ([]*model.User, error) {
	return s.userRepo.ListByRole(ctx, role)
}

func (s *UserService) Update(ctx context.Context, user *model.User) error {
	return s.userRepo.Update(ctx, user)
}

func (s *UserService) Deactivate(ctx context.Context, id int64) error {
	if err := s.userRepo.SetActive(ctx, id, false); err != nil {
		return err
	}
	s.logger.Info("User deactivated", zap.Int64("user_id", id))
	return nil
}
