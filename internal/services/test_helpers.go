package services

import (
	"context"
	"time"

	"github.com/mvillagran/securedocs/internal/mail"
	"github.com/mvillagran/securedocs/internal/models"
)

// MockUserRepository implements UserRepository for testing
type MockUserRepository struct {
	GetByEmailFunc     func(ctx context.Context, email string) (*models.User, error)
	FindByEmailFunc    func(ctx context.Context, email string) (*models.User, error)
	ListFunc           func(ctx context.Context, limit, offset int) ([]*models.User, error)
	CreateFunc         func(ctx context.Context, user *models.User) (*models.User, error)
	UpdateFunc         func(ctx context.Context, email string, user *models.User) (*models.User, error)
	UpdatePasswordFunc func(ctx context.Context, email, passwordHash string) error
	DeleteByEmailFunc  func(ctx context.Context, email string) error
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return []*models.User{}, nil
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) Update(ctx context.Context, email string, user *models.User) (*models.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, email, user)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, email, passwordHash)
	}
	return nil
}

func (m *MockUserRepository) DeleteByEmail(ctx context.Context, email string) error {
	if m.DeleteByEmailFunc != nil {
		return m.DeleteByEmailFunc(ctx, email)
	}
	return nil
}

// MockEntryRepository implements EntryRepository for testing
type MockEntryRepository struct {
	GetByIDFunc func(ctx context.Context, id string) (*models.Entry, error)
	ListFunc    func(ctx context.Context, limit, offset int) ([]*models.Entry, error)
	CreateFunc  func(ctx context.Context, entry *models.Entry) (*models.Entry, error)
	UpdateFunc  func(ctx context.Context, id string, entry *models.Entry) (*models.Entry, error)
	DeleteFunc  func(ctx context.Context, id string) error
}

func (m *MockEntryRepository) GetByID(ctx context.Context, id string) (*models.Entry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockEntryRepository) List(ctx context.Context, limit, offset int) ([]*models.Entry, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return []*models.Entry{}, nil
}

func (m *MockEntryRepository) Create(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entry)
	}
	return nil, models.ErrInternalServer
}

func (m *MockEntryRepository) Update(ctx context.Context, id string, entry *models.Entry) (*models.Entry, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, entry)
	}
	return nil, models.ErrInternalServer
}

func (m *MockEntryRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockDispatcher records enqueued messages
type MockDispatcher struct {
	EnqueueFunc func(msg mail.Message) error
	Messages    []mail.Message
}

func (m *MockDispatcher) Enqueue(msg mail.Message) error {
	if m.EnqueueFunc != nil {
		return m.EnqueueFunc(msg)
	}
	m.Messages = append(m.Messages, msg)
	return nil
}

// NewTestUser creates a user with sensible defaults for tests
func NewTestUser(id, email, name string) *models.User {
	now := time.Now()
	return &models.User{
		ID:           id,
		Email:        email,
		Name:         name,
		PasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		Attempts:     0,
		FirstLogin:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
