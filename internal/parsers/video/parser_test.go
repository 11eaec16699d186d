package video

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/travelog/internal/core/domain"
)

func TestParse_Empty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mp4")
	require.NoError(t, os.WriteFile(path, []byte("moov"), 0o600))

	p := New(dir)
	result, err := p.Parse(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "/clip.mp4", result.Path)
	assert.Equal(t, domain.FormatVideo, result.Format)
	assert.True(t, result.Empty())
}

func TestParse_MissingFile(t *testing.T) {
	_, err := New("").Parse(context.Background(), filepath.Join(t.TempDir(), "clip.mp4"))
	assert.ErrorIs(t, err, domain.ErrFileParsing)
}

func TestMetadata(t *testing.T) {
	p := New("")
	assert.Equal(t, domain.FormatVideo, p.Format())
	assert.Contains(t, p.Extensions(), ".mp4")
	assert.Equal(t, 5, p.Priority())
}
