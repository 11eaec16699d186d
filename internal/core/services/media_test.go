package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/travelog/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/travelog/internal/core/domain"
)

func TestMediaService(t *testing.T) {
	store := memory.NewMediaStore()
	service := NewMediaService(store, "admin")
	ctx := context.Background()

	id, err := store.Insert(ctx, domain.CollectionParsedMedia, &domain.ParsedMedia{
		Path:   "rides/a.fit",
		Format: domain.FormatFIT,
	}, "importer")
	require.NoError(t, err)

	doc, err := service.Get(ctx, " "+id+" ")
	require.NoError(t, err)
	assert.Equal(t, "rides/a.fit", doc.Path)

	docs, err := service.List(ctx, domain.MediaFilter{Format: domain.FormatFIT}, 10)
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	require.NoError(t, service.Delete(ctx, id))
	_, err = service.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	docs, err = service.List(ctx, domain.MediaFilter{IncludeDeleted: true}, 0)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "admin", docs[0].Provenance.UpdatedBy)
}

func TestMediaService_InvalidID(t *testing.T) {
	service := NewMediaService(memory.NewMediaStore(), "admin")

	_, err := service.Get(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Delete(context.Background(), ""), domain.ErrInvalidInput)
}

func TestMediaService_NoStore(t *testing.T) {
	service := NewMediaService(nil, "")

	_, err := service.Get(context.Background(), "id")
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	_, err = service.List(context.Background(), domain.MediaFilter{}, 0)
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	assert.ErrorIs(t, service.Delete(context.Background(), "id"), domain.ErrNotImplemented)
}
