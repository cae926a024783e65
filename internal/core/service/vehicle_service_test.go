package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/swiftpark/parking-portal/internal/core/domain"
	"github.com/swiftpark/parking-portal/internal/core/ports"
)

type stubVehicleRepo struct {
	byCategory map[domain.Category]map[string]*domain.Vehicle
	nextID     int
}

func newStubVehicleRepo() *stubVehicleRepo {
	return &stubVehicleRepo{byCategory: make(map[domain.Category]map[string]*domain.Vehicle)}
}

func (r *stubVehicleRepo) coll(cat domain.Category) map[string]*domain.Vehicle {
	if r.byCategory[cat] == nil {
		r.byCategory[cat] = make(map[string]*domain.Vehicle)
	}
	return r.byCategory[cat]
}

func (r *stubVehicleRepo) List(_ context.Context, cat domain.Category) ([]domain.Vehicle, error) {
	var out []domain.Vehicle
	for _, v := range r.coll(cat) {
		out = append(out, *v)
	}
	return out, nil
}

func (r *stubVehicleRepo) FindByID(_ context.Context, cat domain.Category, id string) (*domain.Vehicle, error) {
	v, ok := r.coll(cat)[id]
	if !ok {
		return nil, domain.ErrVehicleNotFound
	}
	clone := *v
	return &clone, nil
}

func (r *stubVehicleRepo) Create(_ context.Context, cat domain.Category, v *domain.Vehicle) (*domain.Vehicle, error) {
	r.nextID++
	clone := *v
	clone.ID = "v" + strconv.Itoa(r.nextID)
	r.coll(cat)[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubVehicleRepo) Update(_ context.Context, cat domain.Category, v *domain.Vehicle) error {
	if _, ok := r.coll(cat)[v.ID]; !ok {
		return domain.ErrVehicleNotFound
	}
	clone := *v
	r.coll(cat)[v.ID] = &clone
	return nil
}

func (r *stubVehicleRepo) Delete(_ context.Context, cat domain.Category, id string) error {
	if _, ok := r.coll(cat)[id]; !ok {
		return domain.ErrVehicleNotFound
	}
	delete(r.coll(cat), id)
	return nil
}

func TestVehicleService_CreateNormalizesInput(t *testing.T) {
	repo := newStubVehicleRepo()
	svc := NewVehicleService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), domain.CategoryTrucks, ports.VehicleInput{
		Plate:     " uax 123b ",
		Model:     " Isuzu FVR ",
		OwnerName: " Okello James ",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Plate != "UAX 123B" {
		t.Fatalf("plate not normalized: %q", created.Plate)
	}
	if created.Model != "Isuzu FVR" || created.OwnerName != "Okello James" {
		t.Fatalf("fields not trimmed: %+v", created)
	}
	if created.ID == "" {
		t.Fatal("created record missing id")
	}
}

func TestVehicleService_CategoriesAreIsolated(t *testing.T) {
	repo := newStubVehicleRepo()
	svc := NewVehicleService(repo, zerolog.Nop())

	if _, err := svc.Create(context.Background(), domain.CategoryTaxis, ports.VehicleInput{Plate: "UBB 001A", Model: "Hiace", OwnerName: "A"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	taxis, err := svc.List(context.Background(), domain.CategoryTaxis)
	if err != nil {
		t.Fatalf("list taxis: %v", err)
	}
	if len(taxis) != 1 {
		t.Fatalf("expected 1 taxi, got %d", len(taxis))
	}

	trucks, err := svc.List(context.Background(), domain.CategoryTrucks)
	if err != nil {
		t.Fatalf("list trucks: %v", err)
	}
	if len(trucks) != 0 {
		t.Fatalf("taxi leaked into trucks: %d records", len(trucks))
	}
}

func TestVehicleService_UpdateMissingRecord(t *testing.T) {
	repo := newStubVehicleRepo()
	svc := NewVehicleService(repo, zerolog.Nop())

	err := svc.Update(context.Background(), domain.CategoryCars, "missing", ports.VehicleInput{Plate: "X"})
	if !errors.Is(err, domain.ErrVehicleNotFound) {
		t.Fatalf("expected ErrVehicleNotFound, got %v", err)
	}
}

func TestVehicleService_DeleteThenGet(t *testing.T) {
	repo := newStubVehicleRepo()
	svc := NewVehicleService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), domain.CategoryBattery, ports.VehicleInput{Plate: "UAA 987C", Model: "Premio", OwnerName: "B"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(context.Background(), domain.CategoryBattery, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), domain.CategoryBattery, created.ID); !errors.Is(err, domain.ErrVehicleNotFound) {
		t.Fatalf("expected ErrVehicleNotFound after delete, got %v", err)
	}
}
