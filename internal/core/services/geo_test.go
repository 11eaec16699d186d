package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/travelog/internal/core/domain"
)

type fakeReference struct {
	lastKey string
}

func (f *fakeReference) Provinces(_ context.Context) ([]domain.Province, error) {
	return []domain.Province{{Key: "54", Name: "西藏自治区"}}, nil
}

func (f *fakeReference) Cities(_ context.Context, key string) ([]domain.City, error) {
	f.lastKey = key
	if key != "54" {
		return []domain.City{}, nil
	}
	return []domain.City{{Key: "5401", Name: "拉萨市"}}, nil
}

func TestGeoService(t *testing.T) {
	ref := &fakeReference{}
	service := NewGeoService(ref)
	ctx := context.Background()

	provinces, err := service.Provinces(ctx)
	require.NoError(t, err)
	assert.Len(t, provinces, 1)

	cities, err := service.Cities(ctx, " 54 ")
	require.NoError(t, err)
	assert.Equal(t, "54", ref.lastKey)
	assert.Equal(t, "拉萨市", cities[0].Name)

	cities, err = service.Cities(ctx, "99")
	require.NoError(t, err)
	assert.Empty(t, cities)
}

func TestGeoService_NoReference(t *testing.T) {
	service := NewGeoService(nil)

	_, err := service.Provinces(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = service.Cities(context.Background(), "54")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
