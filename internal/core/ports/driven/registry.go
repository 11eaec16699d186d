package driven

import (
	"context"

	"github.com/custodia-labs/travelog/internal/core/domain"
)

// ParserRegistry selects the appropriate parser for a file.
// It maintains a priority-ordered list of parsers and dispatches
// based on file extension.
type ParserRegistry interface {
	// Parse reads a file using the best matching parser.
	Parse(ctx context.Context, path string) (*domain.ParseResult, error)

	// Register adds a parser to the registry.
	Register(parser Parser)

	// SupportedExtensions returns all extensions that can be parsed.
	SupportedExtensions() []string

	// Supports reports whether a parser is registered for the path's extension.
	Supports(path string) bool
}
