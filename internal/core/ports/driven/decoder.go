package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/travelog/internal/core/domain"
)

// ActivityDecoder decodes a binary activity file.
type ActivityDecoder interface {
	// Decode returns the file's messages in file order.
	// Failures wrap domain.ErrFileParsing.
	Decode(ctx context.Context, path string) ([]domain.RawMessage, error)
}

// TagReader reads embedded metadata from a photo.
type TagReader interface {
	// ReadTags returns category-prefixed tag names mapped to their values.
	// A thumbnail payload, if present, is returned as []byte under
	// domain.ThumbnailTag. The caller owns r and closes it.
	ReadTags(r io.Reader) (domain.Tags, error)
}
