package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Image is a single uploaded image stored inline on the car document.
// Data holds the base64-encoded bytes, ContentType the declared MIME type.
type Image struct {
	Data        string `bson:"data,omitempty" json:"data,omitempty"`
	ContentType string `bson:"contentType,omitempty" json:"contentType,omitempty"`
}

// Car is a single inventory listing. UserID references the user that created
// it and never changes afterwards.
type Car struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	CarType     string             `bson:"carType" json:"carType"`
	Company     string             `bson:"company" json:"company"`
	Dealer      string             `bson:"dealer" json:"dealer"`
	Tags        []string           `bson:"tags" json:"tags"`
	Images      []Image            `bson:"images" json:"images"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
