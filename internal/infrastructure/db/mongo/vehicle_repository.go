package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/swiftpark/parking-portal/internal/core/domain"
)

// VehicleRepository persists vehicle records, one collection per category.
type VehicleRepository struct {
	db *mongo.Database
}

func NewVehicleRepository(db *mongo.Database) *VehicleRepository {
	return &VehicleRepository{db: db}
}

type mongoVehicle struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Plate      string             `bson:"plate"`
	Model      string             `bson:"model"`
	OwnerName  string             `bson:"owner_name"`
	OwnerPhone string             `bson:"owner_phone"`
	Notes      string             `bson:"notes,omitempty"`
	CreatedAt  int64              `bson:"created_at"`
	UpdatedAt  int64              `bson:"updated_at"`
}

func (r *VehicleRepository) coll(cat domain.Category) *mongo.Collection {
	return r.db.Collection(string(cat))
}

func (r *VehicleRepository) List(ctx context.Context, cat domain.Category) ([]domain.Vehicle, error) {
	cur, err := r.coll(cat).Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", cat, err)
	}
	defer cur.Close(ctx)

	var vehicles []domain.Vehicle
	for cur.Next(ctx) {
		var mv mongoVehicle
		if err := cur.Decode(&mv); err != nil {
			return nil, fmt.Errorf("decode %s record: %w", cat, err)
		}
		vehicles = append(vehicles, *mv.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", cat, err)
	}
	return vehicles, nil
}

func (r *VehicleRepository) FindByID(ctx context.Context, cat domain.Category, id string) (*domain.Vehicle, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrVehicleNotFound
	}

	var mv mongoVehicle
	if err := r.coll(cat).FindOne(ctx, bson.M{"_id": oid}).Decode(&mv); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("find %s record: %w", cat, err)
	}
	return mv.toDomain(), nil
}

func (r *VehicleRepository) Create(ctx context.Context, cat domain.Category, v *domain.Vehicle) (*domain.Vehicle, error) {
	doc := mongoVehicle{
		Plate:      v.Plate,
		Model:      v.Model,
		OwnerName:  v.OwnerName,
		OwnerPhone: v.OwnerPhone,
		Notes:      v.Notes,
		CreatedAt:  v.CreatedAt.Unix(),
		UpdatedAt:  v.UpdatedAt.Unix(),
	}

	res, err := r.coll(cat).InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert %s record: %w", cat, err)
	}

	created := *v
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *VehicleRepository) Update(ctx context.Context, cat domain.Category, v *domain.Vehicle) error {
	oid, err := primitive.ObjectIDFromHex(v.ID)
	if err != nil {
		return domain.ErrVehicleNotFound
	}

	update := bson.M{"$set": bson.M{
		"plate":       v.Plate,
		"model":       v.Model,
		"owner_name":  v.OwnerName,
		"owner_phone": v.OwnerPhone,
		"notes":       v.Notes,
		"updated_at":  v.UpdatedAt.Unix(),
	}}

	res, err := r.coll(cat).UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update %s record: %w", cat, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrVehicleNotFound
	}
	return nil
}

func (r *VehicleRepository) Delete(ctx context.Context, cat domain.Category, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrVehicleNotFound
	}

	res, err := r.coll(cat).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete %s record: %w", cat, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrVehicleNotFound
	}
	return nil
}

func (mv *mongoVehicle) toDomain() *domain.Vehicle {
	return &domain.Vehicle{
		ID:         mv.ID.Hex(),
		Plate:      mv.Plate,
		Model:      mv.Model,
		OwnerName:  mv.OwnerName,
		OwnerPhone: mv.OwnerPhone,
		Notes:      mv.Notes,
		CreatedAt:  unixToTime(mv.CreatedAt),
		UpdatedAt:  unixToTime(mv.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
