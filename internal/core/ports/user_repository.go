package ports

import (
	"context"

	"github.com/swiftpark/parking-portal/internal/core/domain"
)

// UserRepository defines the interface for credential persistence. Email
// uniqueness is the store's responsibility: concurrent creates for the same
// email must surface as domain.ErrUserExists, never a double insert.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}
