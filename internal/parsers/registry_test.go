package parsers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/travelog/internal/core/domain"
)

type stubParser struct {
	format   domain.Format
	exts     []string
	priority int
}

func (s *stubParser) Format() domain.Format { return s.format }
func (s *stubParser) Extensions() []string  { return s.exts }
func (s *stubParser) Priority() int         { return s.priority }

func (s *stubParser) Parse(_ context.Context, path string) (*domain.ParseResult, error) {
	return &domain.ParseResult{Path: path, Format: s.format}, nil
}

func TestRegistry_SelectsByExtension(t *testing.T) {
	r := NewRegistry(
		&stubParser{format: domain.FormatFIT, exts: []string{".fit"}, priority: 50},
		&stubParser{format: domain.FormatPhoto, exts: []string{".jpg", ".jpeg"}, priority: 50},
	)

	p, err := r.For("/media/IMG_0001.JPG")
	require.NoError(t, err)
	assert.Equal(t, domain.FormatPhoto, p.Format())

	result, err := r.Parse(context.Background(), "/media/ride.fit")
	require.NoError(t, err)
	assert.Equal(t, domain.FormatFIT, result.Format)
}

func TestRegistry_HighestPriorityWins(t *testing.T) {
	r := NewRegistry(
		&stubParser{format: domain.FormatVideo, exts: []string{".mp4"}, priority: 5},
		&stubParser{format: domain.FormatPhoto, exts: []string{".mp4"}, priority: 60},
	)

	p, err := r.For("clip.mp4")
	require.NoError(t, err)
	assert.Equal(t, domain.FormatPhoto, p.Format())
}

func TestRegistry_Unsupported(t *testing.T) {
	r := NewRegistry()
	r.Register(nil)

	_, err := r.For("notes.txt")
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	assert.False(t, r.Supports("notes.txt"))

	_, err = r.Parse(context.Background(), "notes.txt")
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestRegistry_SupportedExtensions(t *testing.T) {
	r := NewRegistry(
		&stubParser{exts: []string{".jpg", ".jpeg"}},
		&stubParser{exts: []string{".fit", ".jpg"}},
	)

	assert.Equal(t, []string{".fit", ".jpeg", ".jpg"}, r.SupportedExtensions())
}
