package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mvillagran/securedocs/internal/models"
	"github.com/stretchr/testify/assert"
)

// mockUserService implements UserService
type mockUserService struct {
	getUserByEmailFunc func(ctx context.Context, email string) (*models.User, error)
	listUsersFunc      func(ctx context.Context, limit, offset int) ([]*models.User, error)
	updateUserFunc     func(ctx context.Context, email string, user *models.User) (*models.User, error)
	deleteUserFunc     func(ctx context.Context, email string) error
}

func (m *mockUserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.getUserByEmailFunc != nil {
		return m.getUserByEmailFunc(ctx, email)
	}
	return nil, models.ErrNotFound
}

func (m *mockUserService) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	if m.listUsersFunc != nil {
		return m.listUsersFunc(ctx, limit, offset)
	}
	return []*models.User{}, nil
}

func (m *mockUserService) UpdateUser(ctx context.Context, email string, user *models.User) (*models.User, error) {
	if m.updateUserFunc != nil {
		return m.updateUserFunc(ctx, email, user)
	}
	return nil, models.ErrInternalServer
}

func (m *mockUserService) DeleteUser(ctx context.Context, email string) error {
	if m.deleteUserFunc != nil {
		return m.deleteUserFunc(ctx, email)
	}
	return nil
}

func testUser(email, name string) *models.User {
	now := time.Now()
	return &models.User{
		ID:        "user123",
		Email:     email,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestGetUser_Success(t *testing.T) {
	svc := &mockUserService{
		getUserByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return testUser(email, "Carla"), nil
		},
	}
	handler := NewUserHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/users/search", strings.NewReader(`{"email":"c@x.com"}`))
	rec := httptest.NewRecorder()
	handler.GetUser(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp, "user")

	var user UserResponse
	assert.NoError(t, json.Unmarshal(resp["user"], &user))
	assert.Equal(t, "c@x.com", user.Email)
	assert.Equal(t, "Carla", user.Name)

	// Credential fields never appear in the payload
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestGetUser_NotFound(t *testing.T) {
	svc := &mockUserService{}
	handler := NewUserHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/users/search", strings.NewReader(`{"email":"a@x.com"}`))
	rec := httptest.NewRecorder()
	handler.GetUser(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, MsgUserNotFound, resp["message"])
}

func TestListUsers_Success(t *testing.T) {
	svc := &mockUserService{
		listUsersFunc: func(ctx context.Context, limit, offset int) ([]*models.User, error) {
			return []*models.User{
				testUser("a@x.com", "Ana"),
				testUser("b@x.com", "Bruno"),
			}, nil
		},
	}
	handler := NewUserHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	handler.ListUsers(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp usersEnvelope
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Users, 2)
}

func TestListUsers_Empty(t *testing.T) {
	svc := &mockUserService{}
	handler := NewUserHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	handler.ListUsers(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, MsgUsersNotFound, resp["message"])
}

func TestListUsers_InvalidLimit(t *testing.T) {
	svc := &mockUserService{}
	handler := NewUserHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/users?limit=abc", nil)
	rec := httptest.NewRecorder()
	handler.ListUsers(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateUser_Success(t *testing.T) {
	svc := &mockUserService{
		updateUserFunc: func(ctx context.Context, email string, user *models.User) (*models.User, error) {
			updated := testUser(email, user.Name)
			return updated, nil
		},
	}
	handler := NewUserHandler(svc)

	req := httptest.NewRequest(http.MethodPut, "/users", strings.NewReader(`{"email":"c@x.com","name":"Carla M"}`))
	rec := httptest.NewRecorder()
	handler.UpdateUser(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp updateEnvelope
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, MsgUserUpdated, resp.Message)
	assert.Equal(t, "Carla M", resp.User.Name)
}

func TestUpdateUser_NotFound(t *testing.T) {
	svc := &mockUserService{
		updateUserFunc: func(ctx context.Context, email string, user *models.User) (*models.User, error) {
			return nil, models.ErrNotFound
		},
	}
	handler := NewUserHandler(svc)

	req := httptest.NewRequest(http.MethodPut, "/users", strings.NewReader(`{"email":"a@x.com","name":"Ana"}`))
	rec := httptest.NewRecorder()
	handler.UpdateUser(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteUser_Success(t *testing.T) {
	svc := &mockUserService{}
	handler := NewUserHandler(svc)

	req := httptest.NewRequest(http.MethodDelete, "/users", strings.NewReader(`{"email":"c@x.com"}`))
	rec := httptest.NewRecorder()
	handler.DeleteUser(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, MsgUserDeleted, resp["message"])
}

func TestDeleteUser_NotFound(t *testing.T) {
	svc := &mockUserService{
		deleteUserFunc: func(ctx context.Context, email string) error {
			return models.ErrNotFound
		},
	}
	handler := NewUserHandler(svc)

	req := httptest.NewRequest(http.MethodDelete, "/users", strings.NewReader(`{"email":"a@x.com"}`))
	rec := httptest.NewRecorder()
	handler.DeleteUser(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, MsgUserDeleteFailed, resp["message"])
}
