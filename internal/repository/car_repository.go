package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"car-inventory-service/internal/model"
)

// CarRepository maps car CRUD onto a single Mongo collection. Every
// operation is atomic at document granularity; no multi-document
// transactions are used.
type CarRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewCarRepository(db *mongo.Database) *CarRepository {
	return &CarRepository{
		coll: db.Collection("cars"),
		now:  time.Now,
	}
}

// Create assigns the id and timestamps and inserts the document.
func (r *CarRepository) Create(ctx context.Context, car *model.Car) error {
	now := r.now().UTC()
	car.CreatedAt = now
	car.UpdatedAt = now
	if car.ID.IsZero() {
		car.ID = primitive.NewObjectID()
	}
	if car.Tags == nil {
		car.Tags = []string{}
	}
	if car.Images == nil {
		car.Images = []model.Image{}
	}

	if _, err := r.coll.InsertOne(ctx, car); err != nil {
		return fmt.Errorf("CarRepository.Create: %w", err)
	}
	return nil
}

// ListByOwner returns the cars created by ownerID, in store-default order.
func (r *CarRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Car, error) {
	oid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, fmt.Errorf("CarRepository.ListByOwner: %w", err)
	}

	cur, err := r.coll.Find(ctx, bson.M{"userId": oid})
	if err != nil {
		return nil, fmt.Errorf("CarRepository.ListByOwner: %w", err)
	}
	defer cur.Close(ctx)

	cars := []model.Car{}
	if err := cur.All(ctx, &cars); err != nil {
		return nil, fmt.Errorf("CarRepository.ListByOwner: %w", err)
	}
	return cars, nil
}

// GetByID returns the car irrespective of the caller's identity.
func (r *CarRepository) GetByID(ctx context.Context, id string) (*model.Car, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.ErrNotFound
	}

	var car model.Car
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&car)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("CarRepository.GetByID: %w", err)
	}
	return &car, nil
}

// Update merges only the supplied fields and returns the updated document.
func (r *CarRepository) Update(ctx context.Context, id string, upd CarUpdate) (*model.Car, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, model.ErrNotFound
	}

	res := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": upd.setDocument(r.now().UTC())},
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var car model.Car
	err = res.Decode(&car)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("CarRepository.Update: %w", err)
	}
	return &car, nil
}

// Delete removes the car by id.
func (r *CarRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.ErrNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("CarRepository.Delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}
