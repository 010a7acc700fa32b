package application

import (
	"context"
	"io"

	"github.com/oksasatya/placebook/internal/domain/entity"
)

// PlaceIndexer mirrors places into a search backend.
type PlaceIndexer interface {
	IndexPlace(ctx context.Context, p *entity.Place) error
	DeletePlace(ctx context.Context, id string) error
	SearchPlaces(ctx context.Context, q string, size int) ([]*entity.Place, error)
}

// ImageStore saves uploaded images and returns their public URL.
type ImageStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// JobPublisher enqueues background jobs.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}
