package models

import "errors"

// Sentinel errors for common failure conditions
var (
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource already exists")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")

	// Password reset failures
	ErrNotRegistered = errors.New("account is not registered")
	ErrAccountLocked = errors.New("account is locked")
)
