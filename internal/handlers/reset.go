package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mvillagran/securedocs/internal/models"
	pkghttp "github.com/mvillagran/securedocs/pkg/http"
)

// Reset flow messages, kept verbatim from the original product
const (
	MsgNotRegistered = "El usuario no está registrado"
	MsgAccountLocked = "Tu cuenta ha sido bloqueada, contacta al administrador"
	MsgResetSuccess  = "Tu nueva contraseña va a ser enviada a tu correo electrónico"
)

// ResetServiceInterface defines the interface for the credential rotation flow
type ResetServiceInterface interface {
	ForgotPassword(ctx context.Context, email string) error
}

// ResetHandler handles the password-reset HTTP endpoint
type ResetHandler struct {
	service ResetServiceInterface
}

func NewResetHandler(service ResetServiceInterface) *ResetHandler {
	return &ResetHandler{
		service: service,
	}
}

// ForgotPassword rotates the account's password and reports success as soon
// as the rotation is persisted; delivery happens in the background and its
// outcome is not reflected in the response.
func (h *ResetHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req EmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.ForgotPassword(r.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, models.ErrNotRegistered):
			pkghttp.WriteFailure(w, http.StatusBadRequest, MsgNotRegistered)
		case errors.Is(err, models.ErrAccountLocked):
			pkghttp.WriteFailure(w, http.StatusBadRequest, MsgAccountLocked)
		default:
			pkghttp.WriteServerError(w, MsgSomethingWrong, err.Error())
		}
		return
	}

	pkghttp.WriteSuccess(w, MsgResetSuccess)
}
