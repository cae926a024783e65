package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/swiftpark/parking-portal/internal/core/domain"
	"github.com/swiftpark/parking-portal/internal/core/ports"
)

// VehicleService implements per-category CRUD over vehicle records.
type VehicleService struct {
	repo   ports.VehicleRepository
	logger zerolog.Logger
}

func NewVehicleService(repo ports.VehicleRepository, logger zerolog.Logger) *VehicleService {
	return &VehicleService{repo: repo, logger: logger}
}

func (s *VehicleService) List(ctx context.Context, cat domain.Category) ([]domain.Vehicle, error) {
	return s.repo.List(ctx, cat)
}

func (s *VehicleService) Get(ctx context.Context, cat domain.Category, id string) (*domain.Vehicle, error) {
	return s.repo.FindByID(ctx, cat, id)
}

func (s *VehicleService) Create(ctx context.Context, cat domain.Category, in ports.VehicleInput) (*domain.Vehicle, error) {
	now := time.Now().UTC()
	v := &domain.Vehicle{
		Plate:      strings.ToUpper(strings.TrimSpace(in.Plate)),
		Model:      strings.TrimSpace(in.Model),
		OwnerName:  strings.TrimSpace(in.OwnerName),
		OwnerPhone: strings.TrimSpace(in.OwnerPhone),
		Notes:      strings.TrimSpace(in.Notes),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.repo.Create(ctx, cat, v)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("category", string(cat)).Str("plate", created.Plate).Msg("vehicle record created")
	return created, nil
}

func (s *VehicleService) Update(ctx context.Context, cat domain.Category, id string, in ports.VehicleInput) error {
	existing, err := s.repo.FindByID(ctx, cat, id)
	if err != nil {
		return err
	}

	existing.Plate = strings.ToUpper(strings.TrimSpace(in.Plate))
	existing.Model = strings.TrimSpace(in.Model)
	existing.OwnerName = strings.TrimSpace(in.OwnerName)
	existing.OwnerPhone = strings.TrimSpace(in.OwnerPhone)
	existing.Notes = strings.TrimSpace(in.Notes)
	existing.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, cat, existing)
}

func (s *VehicleService) Delete(ctx context.Context, cat domain.Category, id string) error {
	return s.repo.Delete(ctx, cat, id)
}
