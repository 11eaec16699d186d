package driven

import (
	"context"

	"github.com/custodia-labs/travelog/internal/core/domain"
)

// Parser turns one media file into a ParseResult.
// Each handles a set of file extensions (e.g., ".fit", ".jpg").
// State is scoped to a single Parse call, so one Parser may serve
// concurrent calls for different files.
type Parser interface {
	// Format returns the format this parser produces.
	Format() domain.Format

	// Extensions returns the lower-cased file extensions handled, with the dot.
	Extensions() []string

	// Priority returns the selection priority (higher = preferred).
	// Format parsers should return 50-89.
	// Fallback parsers should return 1-9.
	Priority() int

	// Parse reads the file at path.
	// Structural failures return wrapped domain errors; data-quality
	// failures are reported in ParseResult.Rejected.
	Parse(ctx context.Context, path string) (*domain.ParseResult, error)
}
