package mcp

import (
	"context"

	"github.com/custodia-labs/travelog/internal/core/domain"
	"github.com/custodia-labs/travelog/internal/core/ports/driving"
)

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	result    *domain.ParseResult
	id        string
	err       error
	lastPath  string
	lastExtra map[string]any
}

func (m *mockIngestService) Ingest(_ context.Context, path string, extra map[string]any) (string, error) {
	m.lastPath = path
	m.lastExtra = extra
	return m.id, m.err
}

func (m *mockIngestService) IngestMany(_ context.Context, paths []string, _ map[string]any) []driving.IngestOutcome {
	outcomes := make([]driving.IngestOutcome, len(paths))
	for i, p := range paths {
		outcomes[i] = driving.IngestOutcome{Path: p, ID: m.id, Err: m.err}
	}
	return outcomes
}

func (m *mockIngestService) Parse(_ context.Context, path string) (*domain.ParseResult, error) {
	m.lastPath = path
	return m.result, m.err
}

func (m *mockIngestService) Supports(_ string) bool {
	return true
}

func (m *mockIngestService) History(_ context.Context, _ int) ([]domain.IngestEntry, error) {
	return nil, m.err
}

// mockMediaService is a mock implementation of driving.MediaService.
type mockMediaService struct {
	docs       []domain.ParsedMedia
	doc        *domain.ParsedMedia
	err        error
	lastFilter domain.MediaFilter
	lastLimit  int
}

func (m *mockMediaService) Get(_ context.Context, _ string) (*domain.ParsedMedia, error) {
	return m.doc, m.err
}

func (m *mockMediaService) List(_ context.Context, filter domain.MediaFilter, limit int) ([]domain.ParsedMedia, error) {
	m.lastFilter = filter
	m.lastLimit = limit
	return m.docs, m.err
}

func (m *mockMediaService) Delete(_ context.Context, _ string) error {
	return m.err
}

// mockGeoService is a mock implementation of driving.GeoService.
type mockGeoService struct {
	provinces []domain.Province
	cities    map[string][]domain.City
	err       error
}

func (m *mockGeoService) Provinces(_ context.Context) ([]domain.Province, error) {
	return m.provinces, m.err
}

func (m *mockGeoService) Cities(_ context.Context, key string) ([]domain.City, error) {
	if m.err != nil {
		return nil, m.err
	}
	cities := m.cities[key]
	if cities == nil {
		cities = []domain.City{}
	}
	return cities, nil
}
