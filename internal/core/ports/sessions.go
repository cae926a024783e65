package ports

import (
	"context"

	"github.com/swiftpark/parking-portal/internal/core/domain"
)

// Sessions is the session manager contract: opaque cookie token in, principal
// out. Restore returns (nil, "", nil) for any token that does not resolve to
// a live session with an existing user — anonymous is a state, not an error.
type Sessions interface {
	Start(ctx context.Context, p *domain.Principal) (token string, err error)
	Restore(ctx context.Context, token string) (p *domain.Principal, sessionID string, err error)
	Invalidate(ctx context.Context, token string) error
}
