package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/mvillagran/securedocs/internal/mail"
	"github.com/mvillagran/securedocs/internal/models"
	"github.com/mvillagran/securedocs/pkg/auth"
	"github.com/stretchr/testify/assert"
)

func newResetService(repo *MockUserRepository, dispatcher *MockDispatcher) *ResetService {
	return NewResetService(repo, dispatcher, slog.Default(), auth.DefaultBcryptCost, 16)
}

func TestResetService_UnknownEmail(t *testing.T) {
	writes := 0
	mockRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return nil, models.ErrNotFound
		},
		UpdatePasswordFunc: func(ctx context.Context, email, passwordHash string) error {
			writes++
			return nil
		},
	}
	dispatcher := &MockDispatcher{}

	svc := newResetService(mockRepo, dispatcher)
	err := svc.ForgotPassword(context.Background(), "a@x.com")

	assert.ErrorIs(t, err, models.ErrNotRegistered)
	assert.Zero(t, writes, "no storage write for unknown email")
	assert.Empty(t, dispatcher.Messages, "no email dispatch for unknown email")
}

func TestResetService_LockedAccount(t *testing.T) {
	user := NewTestUser("user123", "b@x.com", "Beatriz")
	user.Attempts = 3

	writes := 0
	mockRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
		UpdatePasswordFunc: func(ctx context.Context, email, passwordHash string) error {
			writes++
			return nil
		},
	}
	dispatcher := &MockDispatcher{}

	svc := newResetService(mockRepo, dispatcher)
	err := svc.ForgotPassword(context.Background(), "b@x.com")

	assert.ErrorIs(t, err, models.ErrAccountLocked)
	assert.Zero(t, writes, "no mutation for locked account")
	assert.Empty(t, dispatcher.Messages)
}

func TestResetService_CounterBelowThreshold(t *testing.T) {
	// Counters 0, 1 and 2 all permit rotation
	for _, attempts := range []int{0, 1, 2} {
		user := NewTestUser("user123", "c@x.com", "Carla")
		user.Attempts = attempts
		oldHash := user.PasswordHash

		var storedHash string
		mockRepo := &MockUserRepository{
			GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
				return user, nil
			},
			UpdatePasswordFunc: func(ctx context.Context, email, passwordHash string) error {
				storedHash = passwordHash
				return nil
			},
		}
		dispatcher := &MockDispatcher{}

		svc := newResetService(mockRepo, dispatcher)
		err := svc.ForgotPassword(context.Background(), "c@x.com")

		assert.NoError(t, err, "attempts=%d", attempts)
		assert.NotEmpty(t, storedHash, "attempts=%d", attempts)
		assert.NotEqual(t, oldHash, storedHash, "stored hash must change")
		assert.Len(t, dispatcher.Messages, 1)
	}
}

func TestResetService_NewSecretVerifiesAgainstNewHash(t *testing.T) {
	user := NewTestUser("user123", "c@x.com", "Carla")

	var storedHash string
	mockRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
		UpdatePasswordFunc: func(ctx context.Context, email, passwordHash string) error {
			storedHash = passwordHash
			return nil
		},
	}
	dispatcher := &MockDispatcher{}

	svc := newResetService(mockRepo, dispatcher)
	err := svc.ForgotPassword(context.Background(), "c@x.com")
	assert.NoError(t, err)

	// The plaintext secret leaves the service only inside the message body
	assert.Len(t, dispatcher.Messages, 1)
	msg := dispatcher.Messages[0]
	secret := extractSecret(t, msg.TextBody)

	assert.Len(t, secret, 16)
	assert.NoError(t, auth.ComparePassword(storedHash, secret), "new secret must verify against new hash")
	assert.Error(t, auth.ComparePassword(storedHash, "oldPassword123!"), "old secret must not verify")
	assert.NotContains(t, msg.Subject, secret, "secret only appears in the body")
}

func TestResetService_MessageAddressedToAccount(t *testing.T) {
	user := NewTestUser("user123", "c@x.com", "Carla")

	mockRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}
	dispatcher := &MockDispatcher{}

	svc := newResetService(mockRepo, dispatcher)
	err := svc.ForgotPassword(context.Background(), "c@x.com")
	assert.NoError(t, err)

	assert.Len(t, dispatcher.Messages, 1)
	msg := dispatcher.Messages[0]
	assert.Equal(t, "c@x.com", msg.To)
	assert.Contains(t, msg.Subject, "Carla")
	assert.Contains(t, msg.Subject, "Olvidaste tu contraseña en SECURE DOCS")
}

func TestResetService_PersistenceFailureAborts(t *testing.T) {
	user := NewTestUser("user123", "c@x.com", "Carla")

	mockRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
		UpdatePasswordFunc: func(ctx context.Context, email, passwordHash string) error {
			return errors.New("write rejected")
		},
	}
	dispatcher := &MockDispatcher{}

	svc := newResetService(mockRepo, dispatcher)
	err := svc.ForgotPassword(context.Background(), "c@x.com")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrNotRegistered)
	assert.NotErrorIs(t, err, models.ErrAccountLocked)
	assert.Empty(t, dispatcher.Messages, "no email when the write fails")
}

func TestResetService_DispatchFailureDoesNotFailReset(t *testing.T) {
	user := NewTestUser("user123", "c@x.com", "Carla")

	var storedHash string
	mockRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
		UpdatePasswordFunc: func(ctx context.Context, email, passwordHash string) error {
			storedHash = passwordHash
			return nil
		},
	}
	dispatcher := &MockDispatcher{
		EnqueueFunc: func(msg mail.Message) error {
			return mail.ErrQueueFull
		},
	}

	svc := newResetService(mockRepo, dispatcher)
	err := svc.ForgotPassword(context.Background(), "c@x.com")

	assert.NoError(t, err, "dispatch failure must not change the result")
	assert.NotEmpty(t, storedHash, "rotation is not reverted")
}

func TestResetService_ConsecutiveResetsProduceDifferentHashes(t *testing.T) {
	user := NewTestUser("user123", "c@x.com", "Carla")

	var hashes []string
	mockRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
		UpdatePasswordFunc: func(ctx context.Context, email, passwordHash string) error {
			hashes = append(hashes, passwordHash)
			return nil
		},
	}
	dispatcher := &MockDispatcher{}

	svc := newResetService(mockRepo, dispatcher)
	assert.NoError(t, svc.ForgotPassword(context.Background(), "c@x.com"))
	assert.NoError(t, svc.ForgotPassword(context.Background(), "c@x.com"))

	assert.Len(t, hashes, 2)
	assert.NotEqual(t, hashes[0], hashes[1], "independent salts yield distinct digests")
}

// extractSecret pulls the plaintext out of the notification text body.
func extractSecret(t *testing.T, textBody string) string {
	t.Helper()
	const marker = "Tu nueva contraseña es: "
	i := strings.Index(textBody, marker)
	if i < 0 {
		t.Fatalf("text body missing secret marker: %q", textBody)
	}
	rest := textBody[i+len(marker):]
	end := strings.IndexByte(rest, '\n')
	if end < 0 {
		end = len(rest)
	}
	return rest[:end]
}
