// Package video registers video files with the parser registry.
// Video metadata is not extracted; results are always empty.
package video

import (
	"context"

	"github.com/custodia-labs/travelog/internal/core/domain"
	"github.com/custodia-labs/travelog/internal/core/ports/driven"
	"github.com/custodia-labs/travelog/internal/parsers"
)

// Ensure Parser implements the interface.
var _ driven.Parser = (*Parser)(nil)

// Parser handles video files.
type Parser struct {
	mediaRoot string
}

// New creates a video parser.
func New(mediaRoot string) *Parser {
	return &Parser{mediaRoot: mediaRoot}
}

// Format returns the format this parser produces.
func (p *Parser) Format() domain.Format {
	return domain.FormatVideo
}

// Extensions returns the file extensions this parser handles.
func (p *Parser) Extensions() []string {
	return []string{".mp4", ".mov", ".avi"}
}

// Priority returns the selection priority.
func (p *Parser) Priority() int {
	return 5 // Fallback parser
}

// Parse returns an empty result for any readable video file.
func (p *Parser) Parse(_ context.Context, path string) (*domain.ParseResult, error) {
	base, err := parsers.NewBase(path)
	if err != nil {
		return nil, err
	}
	if _, err := base.CheckFile(false); err != nil {
		return nil, err
	}
	return &domain.ParseResult{
		Path:   parsers.StorageRelativePath(path, p.mediaRoot),
		Format: domain.FormatVideo,
	}, nil
}
