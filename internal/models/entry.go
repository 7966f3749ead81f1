package models

import (
	"fmt"
	"time"
)

// EntryStatus is the lifecycle state of a tracked entry.
type EntryStatus string

const (
	StatusPending    EntryStatus = "pending"
	StatusInProgress EntryStatus = "in-progress"
	StatusFinished   EntryStatus = "finished"
)

// Valid reports whether the status is one of the allowed values.
func (s EntryStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusFinished:
		return true
	}
	return false
}

// InvalidStatusError carries the user-facing message for a status outside
// the allowed set. It matches ErrBadRequest under errors.Is.
type InvalidStatusError struct {
	Status EntryStatus
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("%s no es un estado permitido", e.Status)
}

func (e *InvalidStatusError) Is(target error) bool {
	return target == ErrBadRequest
}

// ValidateEntryStatus returns an error when the status is outside the
// allowed set.
func ValidateEntryStatus(s EntryStatus) error {
	if !s.Valid() {
		return &InvalidStatusError{Status: s}
	}
	return nil
}

// Entry is a tracked unit of work.
type Entry struct {
	ID          string
	Description string
	Status      EntryStatus
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
