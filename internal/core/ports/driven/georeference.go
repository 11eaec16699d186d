package driven

import (
	"context"

	"github.com/custodia-labs/travelog/internal/core/domain"
)

// GeoReference serves static geographic reference data, read-only.
type GeoReference interface {
	// Provinces returns every province.
	Provinces(ctx context.Context) ([]domain.Province, error)

	// Cities returns the cities of a province.
	// An unknown province yields an empty list.
	Cities(ctx context.Context, provinceKey string) ([]domain.City, error)
}
