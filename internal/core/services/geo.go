package services

import (
	"context"
	"strings"

	"github.com/custodia-labs/travelog/internal/core/domain"
	"github.com/custodia-labs/travelog/internal/core/ports/driven"
	"github.com/custodia-labs/travelog/internal/core/ports/driving"
)

// Ensure GeoService implements the interface.
var _ driving.GeoService = (*GeoService)(nil)

// GeoService serves static geographic reference data.
type GeoService struct {
	reference driven.GeoReference
}

// NewGeoService creates a new geo service. reference may be nil.
func NewGeoService(reference driven.GeoReference) *GeoService {
	return &GeoService{reference: reference}
}

// Provinces returns every province.
func (s *GeoService) Provinces(ctx context.Context) ([]domain.Province, error) {
	if s.reference == nil {
		return nil, domain.ErrNotFound
	}
	return s.reference.Provinces(ctx)
}

// Cities returns the cities of a province.
func (s *GeoService) Cities(ctx context.Context, provinceKey string) ([]domain.City, error) {
	if s.reference == nil {
		return nil, domain.ErrNotFound
	}
	return s.reference.Cities(ctx, strings.TrimSpace(provinceKey))
}
