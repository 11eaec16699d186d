// Package geodata serves province and city reference data from static
// JSON files.
//
// The static directory holds two UTF-8 files:
//
//	province.json  [{"key": "11", "name": "北京市"}, ...]
//	city.json      {"11": [{"key": "1101", "name": "市辖区"}], ...}
//
// Files are read on every call so edits show up without a restart.
package geodata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/travelog/internal/core/domain"
	"github.com/custodia-labs/travelog/internal/core/ports/driven"
)

// File names inside the static directory.
const (
	ProvinceFile = "province.json"
	CityFile     = "city.json"
)

// Ensure Reference implements the interface.
var _ driven.GeoReference = (*Reference)(nil)

// Reference reads geographic reference data from a directory.
type Reference struct {
	dir string
}

// New creates a reference reader over dir.
func New(dir string) (*Reference, error) {
	if dir == "" {
		return nil, fmt.Errorf("geo static directory is required: %w", domain.ErrInvalidInput)
	}
	return &Reference{dir: dir}, nil
}

// Dir returns the static directory.
func (r *Reference) Dir() string {
	return r.dir
}

// Provinces returns every province in file order.
func (r *Reference) Provinces(ctx context.Context) ([]domain.Province, error) {
	var provinces []domain.Province
	if err := r.load(ctx, ProvinceFile, &provinces); err != nil {
		return nil, err
	}
	if provinces == nil {
		provinces = []domain.Province{}
	}
	return provinces, nil
}

// Cities returns the cities of a province. Unknown keys yield an empty list.
func (r *Reference) Cities(ctx context.Context, provinceKey string) ([]domain.City, error) {
	var byProvince map[string][]domain.City
	if err := r.load(ctx, CityFile, &byProvince); err != nil {
		return nil, err
	}

	cities, ok := byProvince[provinceKey]
	if !ok || cities == nil {
		return []domain.City{}, nil
	}
	return cities, nil
}

// load decodes one static file into v.
func (r *Reference) load(ctx context.Context, name string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(r.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", path, domain.ErrNotFound)
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w: %w", path, domain.ErrInvalidInput, err)
	}
	return nil
}
