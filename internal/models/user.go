package models

import (
	"time"
)

// LockoutThreshold is the failed-attempt count at which password resets are
// refused. The reset flow only reads the counter; it is advanced by the login
// flow upstream of this service.
const LockoutThreshold = 3

type User struct {
	ID              string
	Email           string
	Name            string
	PasswordHash    string
	OldPasswordHash string // previous hash, kept when the password rotates
	Attempts        int    // failed login attempts
	FirstLogin      bool   // forces a password change on next login
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Locked reports whether password rotation is refused for this account.
// Strict equality mirrors the upstream product: the counter advances one
// step at a time and lands on the threshold exactly.
func (u *User) Locked() bool {
	return u.Attempts == LockoutThreshold
}
