package ports

import (
	"context"

	"github.com/swiftpark/parking-portal/internal/core/domain"
)

// FlashStore queues ephemeral messages against a session. Consume drains the
// queue: a message is returned exactly once.
type FlashStore interface {
	Push(ctx context.Context, sessionID string, f domain.Flash) error
	Consume(ctx context.Context, sessionID string) ([]domain.Flash, error)
}
