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

const (
	MsgEntryNotFound = "Entrada no encontrada"
	MsgEntryDeleted  = "Entrada eliminada exitosamente"
)

// EntryService defines the interface for entry business logic
type EntryService interface {
	GetEntryByID(ctx context.Context, id string) (*models.Entry, error)
	ListEntries(ctx context.Context, limit, offset int) ([]*models.Entry, error)
	CreateEntry(ctx context.Context, entry *models.Entry) (*models.Entry, error)
	UpdateEntry(ctx context.Context, id string, entry *models.Entry) (*models.Entry, error)
	DeleteEntry(ctx context.Context, id string) error
}

// EntryHandler handles entry HTTP requests
type EntryHandler struct {
	service EntryService
}

func NewEntryHandler(service EntryService) *EntryHandler {
	return &EntryHandler{
		service: service,
	}
}

// CreateEntryRequest represents the request body for creating an entry
type CreateEntryRequest struct {
	Description string   `json:"description" validate:"required,min=1"`
	Status      string   `json:"status" validate:"omitempty"`
	Tags        []string `json:"tags" validate:"omitempty,dive,min=1"`
}

// UpdateEntryRequest represents the request body for updating an entry
type UpdateEntryRequest struct {
	Description string   `json:"description" validate:"omitempty,min=1"`
	Status      string   `json:"status" validate:"omitempty"`
	Tags        []string `json:"tags" validate:"omitempty,dive,min=1"`
}

// EntryResponse represents an entry in the HTTP response
type EntryResponse struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Tags        []string `json:"tags"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

type entryEnvelope struct {
	Entry *EntryResponse `json:"entry"`
}

type entriesEnvelope struct {
	Entries []*EntryResponse `json:"entries"`
}

func entryModelToResponse(entry *models.Entry) *EntryResponse {
	tags := entry.Tags
	if tags == nil {
		tags = []string{}
	}
	return &EntryResponse{
		ID:          entry.ID,
		Description: entry.Description,
		Status:      string(entry.Status),
		Tags:        tags,
		CreatedAt:   entry.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   entry.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// RegisterRoutes registers all entry routes with the chi router
func (h *EntryHandler) RegisterRoutes(router chi.Router) {
	router.Post("/entries", h.CreateEntry)
	router.Get("/entries", h.ListEntries)
	router.Get("/entries/{id}", h.GetEntry)
	router.Put("/entries/{id}", h.UpdateEntry)
	router.Delete("/entries/{id}", h.DeleteEntry)
}

func (h *EntryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.service.CreateEntry(r.Context(), &models.Entry{
		Description: req.Description,
		Status:      models.EntryStatus(req.Status),
		Tags:        req.Tags,
	})
	if err != nil {
		if errors.Is(err, models.ErrBadRequest) {
			pkghttp.WriteFailure(w, http.StatusBadRequest, err.Error())
			return
		}
		pkghttp.WriteServerError(w, MsgSomethingWrong, err.Error())
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, entryEnvelope{Entry: entryModelToResponse(entry)})
}

func (h *EntryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
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

	entries, err := h.service.ListEntries(r.Context(), limit, offset)
	if err != nil {
		pkghttp.WriteServerError(w, MsgSomethingWrong, err.Error())
		return
	}

	resp := entriesEnvelope{Entries: make([]*EntryResponse, len(entries))}
	for i, entry := range entries {
		resp.Entries[i] = entryModelToResponse(entry)
	}

	pkghttp.WriteJSON(w, http.StatusOK, resp)
}

func (h *EntryHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		pkghttp.WriteFailure(w, http.StatusBadRequest, "Entry ID is required")
		return
	}

	entry, err := h.service.GetEntryByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteFailure(w, http.StatusBadRequest, MsgEntryNotFound)
			return
		}
		pkghttp.WriteServerError(w, MsgSomethingWrong, err.Error())
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, entryEnvelope{Entry: entryModelToResponse(entry)})
}

func (h *EntryHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		pkghttp.WriteFailure(w, http.StatusBadRequest, "Entry ID is required")
		return
	}

	var req UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.service.UpdateEntry(r.Context(), id, &models.Entry{
		Description: req.Description,
		Status:      models.EntryStatus(req.Status),
		Tags:        req.Tags,
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteFailure(w, http.StatusBadRequest, MsgEntryNotFound)
		case errors.Is(err, models.ErrBadRequest):
			pkghttp.WriteFailure(w, http.StatusBadRequest, err.Error())
		default:
			pkghttp.WriteServerError(w, MsgSomethingWrong, err.Error())
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, entryEnvelope{Entry: entryModelToResponse(entry)})
}

func (h *EntryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		pkghttp.WriteFailure(w, http.StatusBadRequest, "Entry ID is required")
		return
	}

	if err := h.service.DeleteEntry(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteFailure(w, http.StatusBadRequest, MsgEntryNotFound)
			return
		}
		pkghttp.WriteServerError(w, MsgSomethingWrong, err.Error())
		return
	}

	pkghttp.WriteSuccess(w, MsgEntryDeleted)
}
