package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"car-inventory-service/internal/model"
)

func strPtr(s string) *string { return &s }

func TestSetDocument_AbsentFieldsUntouched(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	set := CarUpdate{}.setDocument(now)

	assert.Equal(t, 1, len(set))
	assert.Equal(t, now, set["updatedAt"])
}

func TestSetDocument_PresentEmptyStringApplied(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// An empty string is a deliberate overwrite, not an absent field.
	set := CarUpdate{Description: strPtr("")}.setDocument(now)

	assert.Equal(t, "", set["description"])
}

func TestSetDocument_AllFields(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tags := []string{"fast", "red"}
	upd := CarUpdate{
		Title:       strPtr("Model X"),
		Description: strPtr("desc"),
		CarType:     strPtr("SUV"),
		Company:     strPtr("Acme"),
		Dealer:      strPtr("Acme Motors"),
		Tags:        &tags,
		Images:      []model.Image{{Data: "AAAA", ContentType: "image/png"}},
	}

	set := upd.setDocument(now)

	assert.Equal(t, "Model X", set["title"])
	assert.Equal(t, "desc", set["description"])
	assert.Equal(t, "SUV", set["carType"])
	assert.Equal(t, "Acme", set["company"])
	assert.Equal(t, "Acme Motors", set["dealer"])
	assert.Equal(t, tags, set["tags"])
	assert.Equal(t, upd.Images, set["images"])
}

func TestSetDocument_EmptyImagesKeepStored(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for _, images := range [][]model.Image{nil, {}} {
		set := CarUpdate{Images: images}.setDocument(now)
		_, present := set["images"]
		assert.False(t, present)
	}
}

func TestSetDocument_EmptyTagSlicePresentReplaces(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tags := []string{}

	set := CarUpdate{Tags: &tags}.setDocument(now)

	assert.Equal(t, tags, set["tags"])
}
