package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mvillagran/securedocs/internal/models"
	pkghttp "github.com/mvillagran/securedocs/pkg/http"
)

// User-facing messages, kept verbatim from the original product
const (
	MsgUserNotFound      = "Usuario no encontrado"
	MsgUsersNotFound     = "Usuarios no encontrados"
	MsgUserUpdated       = "Usuario actualizado exitosamente"
	MsgUserDeleted       = "Usuario eliminado exitosamente"
	MsgUserDeleteFailed  = "No se pudo eliminar el usuario"
	MsgSomethingWrong    = "Algo salió mal"
)

// UserService defines the interface for account business logic
type UserService interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error)
	UpdateUser(ctx context.Context, email string, user *models.User) (*models.User, error)
	DeleteUser(ctx context.Context, email string) error
}

// UserHandler handles account HTTP requests
type UserHandler struct {
	service UserService
}

func NewUserHandler(service UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// Request/Response DTOs

// EmailRequest identifies an account by email in the request body
type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// UpdateUserRequest represents the request body for updating a user
type UpdateUserRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"omitempty,min=1"`
}

// UserResponse represents a user in the HTTP response. Credential fields
// are never part of it.
type UserResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Attempts   int    `json:"attempts"`
	FirstLogin bool   `json:"first_login"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

type userEnvelope struct {
	User *UserResponse `json:"user"`
}

type usersEnvelope struct {
	Users []*UserResponse `json:"users"`
}

type updateEnvelope struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	User    *UserResponse `json:"user"`
}

func userModelToResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		Name:       user.Name,
		Attempts:   user.Attempts,
		FirstLogin: user.FirstLogin,
		CreatedAt:  user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:  user.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// RegisterRoutes registers all user routes with the chi router
func (h *UserHandler) RegisterRoutes(router chi.Router) {
	router.Post("/users/search", h.GetUser)
	router.Get("/users", h.ListUsers)
	router.Put("/users", h.UpdateUser)
	router.Delete("/users", h.DeleteUser)
}

// GetUser retrieves a single account by the email in the request body
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	var req EmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.service.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteFailure(w, http.StatusBadRequest, MsgUserNotFound)
			return
		}
		pkghttp.WriteServerError(w, MsgSomethingWrong, err.Error())
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, userEnvelope{User: userModelToResponse(user)})
}

// ListUsers retrieves accounts with pagination
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit := 10
	offset := 0

	if l := r.URL.Query().Get("limit"); l != "" {
		if err := parseIntParam(l, &limit, 1, 100); err != nil {
			pkghttp.WriteFailure(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if err := parseIntParam(o, &offset, 0, 10000); err != nil {
			pkghttp.WriteFailure(w, http.StatusBadRequest, "Invalid offset parameter")
			return
		}
	}

	users, err := h.service.ListUsers(r.Context(), limit, offset)
	if err != nil {
		pkghttp.WriteServerError(w, MsgSomethingWrong, err.Error())
		return
	}

	if len(users) == 0 {
		pkghttp.WriteFailure(w, http.StatusBadRequest, MsgUsersNotFound)
		return
	}

	resp := usersEnvelope{Users: make([]*UserResponse, len(users))}
	for i, user := range users {
		resp.Users[i] = userModelToResponse(user)
	}

	pkghttp.WriteJSON(w, http.StatusOK, resp)
}

// UpdateUser updates the account identified by the email in the body
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.service.UpdateUser(r.Context(), req.Email, &models.User{Name: req.Name})
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteFailure(w, http.StatusBadRequest, MsgUserNotFound)
			return
		}
		pkghttp.WriteServerError(w, MsgSomethingWrong, err.Error())
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, updateEnvelope{
		Success: true,
		Message: MsgUserUpdated,
		User:    userModelToResponse(user),
	})
}

// DeleteUser removes the account identified by the email in the body
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	var req EmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.DeleteUser(r.Context(), req.Email); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteFailure(w, http.StatusBadRequest, MsgUserDeleteFailed)
			return
		}
		pkghttp.WriteServerError(w, MsgSomethingWrong, err.Error())
		return
	}

	pkghttp.WriteSuccess(w, MsgUserDeleted)
}
