package ports

import (
	"context"

	"github.com/swiftpark/parking-portal/internal/core/domain"
)

// VehicleInput carries the editable fields of a vehicle record.
type VehicleInput struct {
	Plate      string
	Model      string
	OwnerName  string
	OwnerPhone string
	Notes      string
}

// VehicleService exposes per-category CRUD over vehicle records.
type VehicleService interface {
	List(ctx context.Context, cat domain.Category) ([]domain.Vehicle, error)
	Get(ctx context.Context, cat domain.Category, id string) (*domain.Vehicle, error)
	Create(ctx context.Context, cat domain.Category, in VehicleInput) (*domain.Vehicle, error)
	Update(ctx context.Context, cat domain.Category, id string, in VehicleInput) error
	Delete(ctx context.Context, cat domain.Category, id string) error
}
