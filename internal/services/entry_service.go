package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mvillagran/securedocs/internal/models"
)

// EntryRepository defines the interface for entry data access
type EntryRepository interface {
	GetByID(ctx context.Context, id string) (*models.Entry, error)
	List(ctx context.Context, limit, offset int) ([]*models.Entry, error)
	Create(ctx context.Context, entry *models.Entry) (*models.Entry, error)
	Update(ctx context.Context, id string, entry *models.Entry) (*models.Entry, error)
	Delete(ctx context.Context, id string) error
}

// EntryService handles entry business logic
type EntryService struct {
	repo   EntryRepository
	logger *slog.Logger
}

func NewEntryService(repo EntryRepository, logger *slog.Logger) *EntryService {
	return &EntryService{
		repo:   repo,
		logger: logger,
	}
}

func (s *EntryService) GetEntryByID(ctx context.Context, id string) (*models.Entry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get entry", slog.String("entry_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return entry, nil
}

func (s *EntryService) ListEntries(ctx context.Context, limit, offset int) ([]*models.Entry, error) {
	entries, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error("failed to list entries", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return entries, nil
}

func (s *EntryService) CreateEntry(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	if entry.Status == "" {
		entry.Status = models.StatusPending
	}
	if err := models.ValidateEntryStatus(entry.Status); err != nil {
		return nil, err
	}

	createdEntry, err := s.repo.Create(ctx, entry)
	if err != nil {
		s.logger.Error("failed to create entry", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("entry created", slog.String("entry_id", createdEntry.ID))
	return createdEntry, nil
}

func (s *EntryService) UpdateEntry(ctx context.Context, id string, entry *models.Entry) (*models.Entry, error) {
	existingEntry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get entry", slog.String("entry_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if entry.Description != "" {
		existingEntry.Description = entry.Description
	}
	if entry.Status != "" {
		if err := models.ValidateEntryStatus(entry.Status); err != nil {
			return nil, err
		}
		existingEntry.Status = entry.Status
	}
	if entry.Tags != nil {
		existingEntry.Tags = entry.Tags
	}

	updatedEntry, err := s.repo.Update(ctx, id, existingEntry)
	if err != nil {
		s.logger.Error("failed to update entry", slog.String("entry_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("entry updated", slog.String("entry_id", id))
	return updatedEntry, nil
}

func (s *EntryService) DeleteEntry(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to delete entry", slog.String("entry_id", id), slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.logger.Info("entry deleted", slog.String("entry_id", id))
	return nil
}
