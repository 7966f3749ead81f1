package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mvillagran/securedocs/internal/models"
)

// UserRepository defines the interface for account data access
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, email string, user *models.User) (*models.User, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
	DeleteByEmail(ctx context.Context, email string) error
}

// UserService handles account business logic
type UserService struct {
	repo   UserRepository
	logger *slog.Logger
}

func NewUserService(repo UserRepository, logger *slog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger,
	}
}

// GetUserByEmail retrieves an account by email without credential fields
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get user", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return user, nil
}

// ListUsers retrieves accounts with pagination, credential fields excluded
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	users, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error("failed to list users", slog.Int("limit", limit), slog.Int("offset", offset), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return users, nil
}

// UpdateUser updates the mutable profile fields of the account with the
// given email
func (s *UserService) UpdateUser(ctx context.Context, email string, user *models.User) (*models.User, error) {
	existingUser, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get user", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	// Apply updates only to non-zero fields
	if user.Name != "" {
		existingUser.Name = user.Name
	}

	updatedUser, err := s.repo.Update(ctx, email, existingUser)
	if err != nil {
		s.logger.Error("failed to update user", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("user updated", slog.String("user_id", updatedUser.ID))
	return updatedUser, nil
}

// DeleteUser removes the account with the given email
func (s *UserService) DeleteUser(ctx context.Context, email string) error {
	err := s.repo.DeleteByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to delete user", slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.logger.Info("user deleted")
	return nil
}
