package driven

import (
	"context"

	"github.com/custodia-labs/travelog/internal/core/domain"
)

// MediaStore persists parsed media documents.
// Backed by SQLite for durable storage.
type MediaStore interface {
	// Insert stores a document in a collection. Provenance fields are
	// stamped when absent and a correlation id is assigned when doc.ID is
	// empty. Returns the document id.
	Insert(ctx context.Context, collection string, doc *domain.ParsedMedia, actor string) (string, error)

	// FindOne retrieves a document by id.
	// Returns domain.ErrNotFound if it does not exist or is soft-deleted.
	FindOne(ctx context.Context, collection, id string) (*domain.ParsedMedia, error)

	// Query returns documents matching filter, most recently updated first.
	// A limit of zero or less returns every match.
	Query(ctx context.Context, collection string, filter domain.MediaFilter, limit int) ([]domain.ParsedMedia, error)

	// SoftDelete flags a document as deleted without removing it.
	// Returns domain.ErrNotFound if no live document has the id.
	SoftDelete(ctx context.Context, collection, id, actor string) error
}
