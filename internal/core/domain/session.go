package domain

import (
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is the server-side record a cookie token refers to. The client only
// ever holds the opaque token; the record itself never leaves the store.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session has passed its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Flash message categories, matching the styling hooks in the templates.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashWarning = "warning"
)

// Flash is an ephemeral message queued against a session and consumed on the
// next render.
type Flash struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}
