package ports

import (
	"context"
	"time"

	"github.com/swiftpark/parking-portal/internal/core/domain"
)

// SessionStore persists server-side session records keyed by session ID.
// Implementations must survive process restarts. Get returns
// domain.ErrSessionNotFound for missing or expired-and-evicted records;
// Delete is idempotent.
type SessionStore interface {
	Create(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Refresh(ctx context.Context, id string, expiresAt time.Time) error
	Delete(ctx context.Context, id string) error
}
