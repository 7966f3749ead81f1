package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mvillagran/securedocs/internal/models"
	"github.com/stretchr/testify/assert"
)

// mockEntryService implements EntryService
type mockEntryService struct {
	getEntryByIDFunc func(ctx context.Context, id string) (*models.Entry, error)
	listEntriesFunc  func(ctx context.Context, limit, offset int) ([]*models.Entry, error)
	createEntryFunc  func(ctx context.Context, entry *models.Entry) (*models.Entry, error)
	updateEntryFunc  func(ctx context.Context, id string, entry *models.Entry) (*models.Entry, error)
	deleteEntryFunc  func(ctx context.Context, id string) error
}

func (m *mockEntryService) GetEntryByID(ctx context.Context, id string) (*models.Entry, error) {
	if m.getEntryByIDFunc != nil {
		return m.getEntryByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *mockEntryService) ListEntries(ctx context.Context, limit, offset int) ([]*models.Entry, error) {
	if m.listEntriesFunc != nil {
		return m.listEntriesFunc(ctx, limit, offset)
	}
	return []*models.Entry{}, nil
}

func (m *mockEntryService) CreateEntry(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	if m.createEntryFunc != nil {
		return m.createEntryFunc(ctx, entry)
	}
	return nil, models.ErrInternalServer
}

func (m *mockEntryService) UpdateEntry(ctx context.Context, id string, entry *models.Entry) (*models.Entry, error) {
	if m.updateEntryFunc != nil {
		return m.updateEntryFunc(ctx, id, entry)
	}
	return nil, models.ErrInternalServer
}

func (m *mockEntryService) DeleteEntry(ctx context.Context, id string) error {
	if m.deleteEntryFunc != nil {
		return m.deleteEntryFunc(ctx, id)
	}
	return nil
}

func testEntry(id string) *models.Entry {
	now := time.Now()
	return &models.Entry{
		ID:          id,
		Description: "Revisar contrato",
		Status:      models.StatusPending,
		Tags:        []string{"legal"},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// withURLParam injects a chi route parameter into the request context
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestCreateEntry_Success(t *testing.T) {
	svc := &mockEntryService{
		createEntryFunc: func(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
			entry.ID = "entry123"
			if entry.Status == "" {
				entry.Status = models.StatusPending
			}
			return entry, nil
		},
	}
	handler := NewEntryHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/entries", strings.NewReader(`{"description":"Revisar contrato","tags":["legal"]}`))
	rec := httptest.NewRecorder()
	handler.CreateEntry(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp entryEnvelope
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "entry123", resp.Entry.ID)
	assert.Equal(t, "pending", resp.Entry.Status)
	assert.Equal(t, []string{"legal"}, resp.Entry.Tags)
}

func TestCreateEntry_InvalidStatus(t *testing.T) {
	svc := &mockEntryService{
		createEntryFunc: func(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
			return nil, models.ValidateEntryStatus(entry.Status)
		},
	}
	handler := NewEntryHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/entries", strings.NewReader(`{"description":"x","status":"archived"}`))
	rec := httptest.NewRecorder()
	handler.CreateEntry(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "archived no es un estado permitido", resp["message"])
}

func TestCreateEntry_MissingDescription(t *testing.T) {
	svc := &mockEntryService{}
	handler := NewEntryHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/entries", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler.CreateEntry(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetEntry_NotFound(t *testing.T) {
	svc := &mockEntryService{}
	handler := NewEntryHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/entries/nope", nil)
	req = withURLParam(req, "id", "nope")
	rec := httptest.NewRecorder()
	handler.GetEntry(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, MsgEntryNotFound, resp["message"])
}

func TestUpdateEntry_Success(t *testing.T) {
	svc := &mockEntryService{
		updateEntryFunc: func(ctx context.Context, id string, entry *models.Entry) (*models.Entry, error) {
			updated := testEntry(id)
			updated.Status = entry.Status
			return updated, nil
		},
	}
	handler := NewEntryHandler(svc)

	req := httptest.NewRequest(http.MethodPut, "/entries/entry123", strings.NewReader(`{"status":"finished"}`))
	req = withURLParam(req, "id", "entry123")
	rec := httptest.NewRecorder()
	handler.UpdateEntry(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp entryEnvelope
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "finished", resp.Entry.Status)
}

func TestDeleteEntry_Success(t *testing.T) {
	svc := &mockEntryService{}
	handler := NewEntryHandler(svc)

	req := httptest.NewRequest(http.MethodDelete, "/entries/entry123", nil)
	req = withURLParam(req, "id", "entry123")
	rec := httptest.NewRecorder()
	handler.DeleteEntry(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, MsgEntryDeleted, resp["message"])
}
