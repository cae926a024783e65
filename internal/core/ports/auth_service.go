package ports

import (
	"context"

	"github.com/swiftpark/parking-portal/internal/core/domain"
)

// AuthService verifies and creates credentials. Login must return the same
// domain.ErrInvalidCredentials for an unknown email and for a wrong password.
type AuthService interface {
	Register(ctx context.Context, email, password, password2 string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.Principal, error)
}
