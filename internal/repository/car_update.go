package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"car-inventory-service/internal/model"
)

// CarUpdate carries a partial update. A nil field is absent and leaves the
// stored value untouched; a non-nil field is applied even when it points at
// a zero value, so an empty string is a real overwrite, not a no-op.
type CarUpdate struct {
	Title       *string
	Description *string
	CarType     *string
	Company     *string
	Dealer      *string
	Tags        *[]string

	// Images replaces the whole stored sequence when non-empty. Empty or
	// nil keeps the stored images as they are.
	Images []model.Image
}

// setDocument builds the $set document for the update.
func (u CarUpdate) setDocument(now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.CarType != nil {
		set["carType"] = *u.CarType
	}
	if u.Company != nil {
		set["company"] = *u.Company
	}
	if u.Dealer != nil {
		set["dealer"] = *u.Dealer
	}
	if u.Tags != nil {
		set["tags"] = *u.Tags
	}
	if len(u.Images) > 0 {
		set["images"] = u.Images
	}
	return set
}
