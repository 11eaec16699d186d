package cli

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/travelog/internal/core/domain"
)

func storedMedia() []domain.ParsedMedia {
	return []domain.ParsedMedia{
		{
			ID:     "m1",
			Path:   "/2019/ride.fit",
			Format: domain.FormatFIT,
			Result: domain.ParseResult{
				Records: map[domain.Bucket][]map[string]any{
					domain.BucketActivityRecord: {{}, {}},
				},
			},
		},
		{
			ID:         "m2",
			Path:       "/2019/拉萨.jpg",
			Format:     domain.FormatPhoto,
			Provenance: domain.Provenance{Deleted: true},
		},
	}
}

func TestMediaListCmd(t *testing.T) {
	t.Run("lists documents", func(t *testing.T) {
		media := &mockMediaService{docs: storedMedia()}
		withServices(t, Services{Media: media})

		out, err := execute(t, "media", "list")

		require.NoError(t, err)
		assert.Contains(t, out, "m1  fit   /2019/ride.fit  2 entries, 0 rejected")
		assert.Contains(t, out, "/2019/拉萨.jpg")
		assert.Contains(t, out, "(deleted)")
		assert.Equal(t, 50, media.lastLimit)
		assert.Equal(t, domain.MediaFilter{}, media.lastFilter)
	})

	t.Run("passes filter flags", func(t *testing.T) {
		media := &mockMediaService{}
		withServices(t, Services{Media: media})

		out, err := execute(t, "media", "list",
			"--format", "photo", "--prefix", "/2019", "--owner", "alice", "--deleted", "-n", "5")

		require.NoError(t, err)
		assert.Contains(t, out, "No media found.")
		assert.Equal(t, domain.MediaFilter{
			Format:         domain.FormatPhoto,
			PathPrefix:     "/2019",
			Owner:          "alice",
			IncludeDeleted: true,
		}, media.lastFilter)
		assert.Equal(t, 5, media.lastLimit)
	})

	t.Run("service error", func(t *testing.T) {
		withServices(t, Services{Media: &mockMediaService{err: errors.New("database error")}})

		_, err := execute(t, "media", "list")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list media")
	})

	t.Run("service not configured", func(t *testing.T) {
		withServices(t, Services{})

		_, err := execute(t, "media", "list")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "media service not configured")
	})
}

func TestMediaGetCmd(t *testing.T) {
	withServices(t, Services{Media: &mockMediaService{docs: storedMedia()}})

	t.Run("prints json", func(t *testing.T) {
		out, err := execute(t, "media", "get", "m2")

		require.NoError(t, err)
		var doc domain.ParsedMedia
		require.NoError(t, json.Unmarshal([]byte(out), &doc))
		assert.Equal(t, "/2019/拉萨.jpg", doc.Path)
		assert.Contains(t, out, "拉萨", "non-ASCII is not escaped")
	})

	t.Run("not found", func(t *testing.T) {
		_, err := execute(t, "media", "get", "missing")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "media missing not found")
	})
}

func TestMediaDeleteCmd(t *testing.T) {
	media := &mockMediaService{docs: storedMedia()}
	withServices(t, Services{Media: media})

	t.Run("deletes", func(t *testing.T) {
		out, err := execute(t, "media", "delete", "m1")

		require.NoError(t, err)
		assert.Contains(t, out, "Deleted media m1.")
		assert.Equal(t, []string{"m1"}, media.deleted)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := execute(t, "media", "delete", "missing")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}
