package repository

import (
	"context"

	"car-inventory-service/internal/model"
)

// CarStore is the persistence boundary for car listings. Handlers depend on
// this interface so the gateway can be exercised without a live database.
type CarStore interface {
	Create(ctx context.Context, car *model.Car) error
	ListByOwner(ctx context.Context, ownerID string) ([]model.Car, error)
	GetByID(ctx context.Context, id string) (*model.Car, error)
	Update(ctx context.Context, id string, upd CarUpdate) (*model.Car, error)
	Delete(ctx context.Context, id string) error
}

// UserStore persists credential records.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}
