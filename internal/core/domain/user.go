package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")

// User models a registered account in the portal.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal is the identity attached to a request after session restore.
// It carries only what the access gate and the views need.
type Principal struct {
	UserID string
	Email  string
	Role   Role
}

// NormalizeEmail applies the canonical form used for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidationError collects every violated registration rule so the form can
// surface them all at once rather than failing on the first.
type ValidationError struct {
	Causes []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Causes, "; ")
}
