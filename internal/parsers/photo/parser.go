// Package photo classifies embedded photo metadata into category buckets.
package photo

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/custodia-labs/travelog/internal/core/domain"
	"github.com/custodia-labs/travelog/internal/core/ports/driven"
	"github.com/custodia-labs/travelog/internal/parsers"
)

// Ensure Parser implements the interface.
var _ driven.Parser = (*Parser)(nil)

// routeOrder is the order in which configured category sets are consulted.
// BucketOther is the fallback.
var routeOrder = []domain.Bucket{
	domain.BucketExif,
	domain.BucketGPS,
	domain.BucketImage,
	domain.BucketThumbnail,
	domain.BucketMaker,
}

// Base64Key is the key of the encoded thumbnail in the thumbnail bucket.
const Base64Key = "base64"

// Config configures a Parser.
type Config struct {
	// Settings controls classification.
	Settings domain.ParseSettings

	// MediaRoot is stripped from paths in results.
	MediaRoot string
}

// Parser handles photos with embedded EXIF metadata.
type Parser struct {
	reader    driven.TagReader
	mediaRoot string
	routes    map[string]domain.Bucket
}

// New creates a photo parser reading tags through reader.
func New(reader driven.TagReader, cfg Config) (*Parser, error) {
	if reader == nil {
		return nil, fmt.Errorf("tag reader is required: %w", domain.ErrInvalidInput)
	}

	routes := make(map[string]domain.Bucket)
	for _, b := range routeOrder {
		for _, c := range cfg.Settings.PhotoCategories[b] {
			c = strings.ToLower(strings.TrimSpace(c))
			if _, taken := routes[c]; !taken {
				routes[c] = b
			}
		}
	}

	return &Parser{reader: reader, mediaRoot: cfg.MediaRoot, routes: routes}, nil
}

// Format returns the format this parser produces.
func (p *Parser) Format() domain.Format {
	return domain.FormatPhoto
}

// Extensions returns the file extensions this parser handles.
func (p *Parser) Extensions() []string {
	return []string{".jpg", ".jpeg", ".tif", ".tiff"}
}

// Priority returns the selection priority.
func (p *Parser) Priority() int {
	return 50
}

// Parse reads the photo's tags and buckets them by category.
func (p *Parser) Parse(_ context.Context, path string) (*domain.ParseResult, error) {
	base, err := parsers.NewBase(path)
	if err != nil {
		return nil, err
	}
	if _, err := base.CheckFile(false); err != nil {
		return nil, err
	}

	f, err := os.Open(base.Path())
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", path, domain.ErrFileParsing, err)
	}
	defer f.Close()

	tags, err := p.reader.ReadTags(f)
	if err != nil {
		if !errors.Is(err, domain.ErrFileParsing) {
			err = fmt.Errorf("read tags %s: %w: %w", path, domain.ErrFileParsing, err)
		}
		return nil, err
	}

	return p.Classify(parsers.StorageRelativePath(path, p.mediaRoot), tags), nil
}

// Classify buckets tags by their category token.
//
// "GPS GPSLatitude" lands in the gps bucket as "GPSLatitude"; further
// tokens are joined with underscores. Tags with no configured category
// land in the other bucket under their full name. A []byte thumbnail
// payload is stored base64 encoded in the thumbnail bucket.
func (p *Parser) Classify(path string, tags domain.Tags) *domain.ParseResult {
	result := &domain.ParseResult{
		Path:       path,
		Format:     domain.FormatPhoto,
		Categories: make(map[domain.Bucket]map[string]any, len(domain.PhotoBuckets())),
	}
	for _, b := range domain.PhotoBuckets() {
		result.Categories[b] = map[string]any{}
	}

	for tag, value := range tags {
		if strings.EqualFold(tag, domain.ThumbnailTag) {
			if payload, ok := value.([]byte); ok {
				result.Categories[domain.BucketThumbnail][Base64Key] = base64.StdEncoding.EncodeToString(payload)
				continue
			}
		}

		tokens := strings.Fields(tag)
		if len(tokens) == 0 {
			continue
		}
		category := strings.ToLower(tokens[0])

		bucket, ok := p.routes[category]
		if !ok {
			result.Categories[domain.BucketOther][tag] = value
			continue
		}

		key := category
		if len(tokens) > 1 {
			key = strings.Join(tokens[1:], "_")
		}
		result.Categories[bucket][key] = value
	}

	return result
}
