package driving

import (
	"context"

	"github.com/custodia-labs/travelog/internal/core/domain"
)

// GeoService serves the static geographic reference data.
type GeoService interface {
	// Provinces returns every province.
	Provinces(ctx context.Context) ([]domain.Province, error)

	// Cities returns the cities of a province.
	Cities(ctx context.Context, provinceKey string) ([]domain.City, error)
}
