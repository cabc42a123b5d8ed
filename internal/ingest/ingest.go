// Package ingest validates and normalizes uploaded image data into the
// representation stored on car documents.
package ingest

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"car-inventory-service/internal/model"
)

const (
	// MaxAssets caps how many images a single request may attach. Extra
	// entries are silently dropped, preserving upload order.
	MaxAssets = 10

	// MaxAssetSize is the per-image byte ceiling.
	MaxAssetSize = 5 << 20
)

// Reason classifies why an individual upload was not ingested.
type Reason int

const (
	ReasonUnsupportedType Reason = iota
	ReasonTooLarge
	ReasonUnreadable
)

func (r Reason) String() string {
	switch r {
	case ReasonUnsupportedType:
		return "unsupported type"
	case ReasonTooLarge:
		return "too large"
	default:
		return "unreadable"
	}
}

// Rejection records a single dropped upload. Rejections never abort the
// surrounding request; the gateway logs them and keeps the accepted subset.
type Rejection struct {
	Filename string
	Reason   Reason
	Err      error
}

var allowedTypes = map[string]bool{
	"jpeg": true,
	"jpg":  true,
	"png":  true,
	"gif":  true,
}

// FromMultipart validates and encodes uploaded file parts, preserving upload
// order. The accepted assets come back alongside a record of every dropped
// part.
func FromMultipart(files []*multipart.FileHeader) ([]model.Image, []Rejection) {
	if len(files) > MaxAssets {
		files = files[:MaxAssets]
	}

	assets := make([]model.Image, 0, len(files))
	var rejected []Rejection

	for _, fh := range files {
		contentType := fh.Header.Get("Content-Type")
		if !typeAllowed(contentType) || !extensionAllowed(fh.Filename) {
			rejected = append(rejected, Rejection{
				Filename: fh.Filename,
				Reason:   ReasonUnsupportedType,
				Err:      fmt.Errorf("only images are allowed (jpeg, jpg, png, gif): %s", fh.Filename),
			})
			continue
		}
		if fh.Size > MaxAssetSize {
			rejected = append(rejected, Rejection{
				Filename: fh.Filename,
				Reason:   ReasonTooLarge,
				Err:      fmt.Errorf("image exceeds %d bytes: %s", MaxAssetSize, fh.Filename),
			})
			continue
		}

		data, err := readAll(fh)
		if err != nil {
			rejected = append(rejected, Rejection{
				Filename: fh.Filename,
				Reason:   ReasonUnreadable,
				Err:      fmt.Errorf("reading upload %s: %w", fh.Filename, err),
			})
			continue
		}
		if int64(len(data)) > MaxAssetSize {
			rejected = append(rejected, Rejection{
				Filename: fh.Filename,
				Reason:   ReasonTooLarge,
				Err:      fmt.Errorf("image exceeds %d bytes: %s", MaxAssetSize, fh.Filename),
			})
			continue
		}

		assets = append(assets, model.Image{
			Data:        base64.StdEncoding.EncodeToString(data),
			ContentType: contentType,
		})
	}

	return assets, rejected
}

// Payload is a pre-encoded image as sent in a JSON body.
type Payload struct {
	Data        string `json:"data"`
	ContentType string `json:"contentType"`
}

// FromJSON converts pre-encoded payloads as-is, truncating past MaxAssets.
// The decoded bytes are not re-inspected; clients sending JSON are already
// past the upload boundary.
func FromJSON(payloads []Payload) []model.Image {
	if len(payloads) > MaxAssets {
		payloads = payloads[:MaxAssets]
	}
	assets := make([]model.Image, 0, len(payloads))
	for _, p := range payloads {
		assets = append(assets, model.Image{Data: p.Data, ContentType: p.ContentType})
	}
	return assets
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// The declared Size is re-checked after reading; the limit guards
	// against a lying Content-Length.
	return io.ReadAll(io.LimitReader(f, MaxAssetSize+1))
}

func typeAllowed(contentType string) bool {
	sub := strings.ToLower(contentType)
	if !strings.HasPrefix(sub, "image/") {
		return false
	}
	return allowedTypes[strings.TrimPrefix(sub, "image/")]
}

func extensionAllowed(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	return allowedTypes[ext]
}
