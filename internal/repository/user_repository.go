package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"car-inventory-service/internal/model"
)

// UserRepository persists credential records in the users collection.
type UserRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		coll: db.Collection("users"),
		now:  time.Now,
	}
}

// Create inserts the user after checking the email is not already taken.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	err := r.coll.FindOne(ctx, bson.M{"email": user.Email}).Err()
	if err == nil {
		return model.ErrEmailTaken
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("UserRepository.Create: %w", err)
	}

	user.ID = primitive.NewObjectID()
	user.CreatedAt = r.now().UTC()

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("UserRepository.Create: %w", err)
	}
	return nil
}

// GetByEmail looks a user up by email for login.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("UserRepository.GetByEmail: %w", err)
	}
	return &user, nil
}
