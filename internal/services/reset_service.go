package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mvillagran/securedocs/internal/mail"
	"github.com/mvillagran/securedocs/internal/models"
	"github.com/mvillagran/securedocs/pkg/auth"
	pkglogger "github.com/mvillagran/securedocs/pkg/logger"
	"github.com/mvillagran/securedocs/pkg/password"
)

// MailDispatcher accepts a message for asynchronous delivery.
type MailDispatcher interface {
	Enqueue(msg mail.Message) error
}

// ResetService rotates a forgotten password: it looks the account up,
// applies the lockout policy, generates and hashes a fresh secret, persists
// it and hands the notification to the dispatcher.
type ResetService struct {
	repo       UserRepository
	dispatcher MailDispatcher
	logger     *slog.Logger
	bcryptCost int
	secretOpts password.Options
}

func NewResetService(repo UserRepository, dispatcher MailDispatcher, logger *slog.Logger, bcryptCost, secretLength int) *ResetService {
	opts := password.DefaultOptions()
	opts.Length = secretLength

	return &ResetService{
		repo:       repo,
		dispatcher: dispatcher,
		logger:     logger,
		bcryptCost: bcryptCost,
		secretOpts: opts,
	}
}

// ForgotPassword rotates the account's password and queues the notification
// email. The returned error is one of the sentinel errors for lookup and
// lockout failures; anything else is a persistence or generation failure.
// Delivery outcome never affects the result.
func (s *ResetService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("reset requested for unknown account",
				slog.String("email", pkglogger.SanitizedEmail(email)))
			return models.ErrNotRegistered
		}
		s.logger.Error("failed to look up account", slog.Any("error", err))
		return fmt.Errorf("failed to look up account: %w", err)
	}

	// The counter is read here, never written: incrementing belongs to the
	// login flow.
	if user.Locked() {
		s.logger.Info("reset refused for locked account",
			slog.String("email", pkglogger.SanitizedEmail(email)))
		return models.ErrAccountLocked
	}

	secret, err := password.Generate(s.secretOpts)
	if err != nil {
		s.logger.Error("failed to generate secret", slog.Any("error", err))
		return fmt.Errorf("failed to generate password: %w", err)
	}

	hash, err := auth.HashPassword(secret, s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash secret", slog.Any("error", err))
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// Persist before dispatch: a write failure aborts the rotation, a
	// delivery failure does not revert it.
	if err := s.repo.UpdatePassword(ctx, user.Email, hash); err != nil {
		s.logger.Error("failed to persist rotated password", slog.Any("error", err))
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.dispatcher.Enqueue(NewPasswordMessage(user.Email, user.Name, secret)); err != nil {
		// The rotation stands; the user can retry the flow for a new secret.
		s.logger.Error("failed to queue password email",
			slog.String("email", pkglogger.SanitizedEmail(user.Email)),
			slog.Any("error", err))
	}

	s.logger.Info("password rotated",
		slog.String("email", pkglogger.SanitizedEmail(user.Email)))

	return nil
}
