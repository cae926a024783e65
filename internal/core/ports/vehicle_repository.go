package ports

import (
	"context"

	"github.com/swiftpark/parking-portal/internal/core/domain"
)

// VehicleRepository persists vehicle records, one collection per category.
type VehicleRepository interface {
	List(ctx context.Context, cat domain.Category) ([]domain.Vehicle, error)
	FindByID(ctx context.Context, cat domain.Category, id string) (*domain.Vehicle, error)
	Create(ctx context.Context, cat domain.Category, v *domain.Vehicle) (*domain.Vehicle, error)
	Update(ctx context.Context, cat domain.Category, v *domain.Vehicle) error
	Delete(ctx context.Context, cat domain.Category, id string) error
}
