package driving

import (
	"context"

	"github.com/custodia-labs/travelog/internal/core/domain"
)

// MediaService reads stored parse results.
type MediaService interface {
	// Get retrieves a parsed media document by id.
	Get(ctx context.Context, id string) (*domain.ParsedMedia, error)

	// List returns documents matching filter, most recently updated first.
	List(ctx context.Context, filter domain.MediaFilter, limit int) ([]domain.ParsedMedia, error)

	// Delete soft-deletes a document.
	Delete(ctx context.Context, id string) error
}
