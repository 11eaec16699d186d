package services

import (
	"context"
	"strings"

	"github.com/custodia-labs/travelog/internal/core/domain"
	"github.com/custodia-labs/travelog/internal/core/ports/driven"
	"github.com/custodia-labs/travelog/internal/core/ports/driving"
)

// Ensure MediaService implements the interface.
var _ driving.MediaService = (*MediaService)(nil)

// MediaService reads and deletes stored parse results.
type MediaService struct {
	store driven.MediaStore
	actor string
}

// NewMediaService creates a new media service. Deletions are stamped with actor.
func NewMediaService(store driven.MediaStore, actor string) *MediaService {
	return &MediaService{store: store, actor: actor}
}

// Get retrieves a parsed media document by id.
func (s *MediaService) Get(ctx context.Context, id string) (*domain.ParsedMedia, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.store.FindOne(ctx, domain.CollectionParsedMedia, id)
}

// List returns documents matching filter, most recently updated first.
func (s *MediaService) List(ctx context.Context, filter domain.MediaFilter, limit int) ([]domain.ParsedMedia, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.Query(ctx, domain.CollectionParsedMedia, filter, limit)
}

// Delete soft-deletes a document.
func (s *MediaService) Delete(ctx context.Context, id string) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ErrInvalidInput
	}
	return s.store.SoftDelete(ctx, domain.CollectionParsedMedia, id, s.actor)
}
