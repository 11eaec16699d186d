package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil ingest service returns error", func(t *testing.T) {
		ports := &Ports{}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingIngestService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports := &Ports{
			Ingest: &mockIngestService{},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
	})

	t.Run("all ports creates server", func(t *testing.T) {
		ports := &Ports{
			Ingest: &mockIngestService{},
			Media:  &mockMediaService{},
			Geo:    &mockGeoService{},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil ingest service returns error", func(t *testing.T) {
		ports := &Ports{Media: &mockMediaService{}}
		err := ports.Validate()
		assert.ErrorIs(t, err, ErrMissingIngestService)
	})

	t.Run("ingest only is valid", func(t *testing.T) {
		ports := &Ports{
			Ingest: &mockIngestService{},
		}
		err := ports.Validate()
		assert.NoError(t, err)
	})
}

func TestServer_Tools(t *testing.T) {
	t.Run("ingest only offers parse and ingest", func(t *testing.T) {
		server, err := NewServer(&Ports{Ingest: &mockIngestService{}})
		require.NoError(t, err)
		assert.Equal(t, []string{"parse_file", "ingest_file"}, server.Tools())
	})

	t.Run("media port adds lookup tools", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Ingest: &mockIngestService{},
			Media:  &mockMediaService{},
		})
		require.NoError(t, err)
		assert.Equal(t,
			[]string{"parse_file", "ingest_file", "get_parsed_media", "list_media"},
			server.Tools())
	})
}

func TestInstructions(t *testing.T) {
	t.Run("ingest only", func(t *testing.T) {
		text := instructions(&Ports{Ingest: &mockIngestService{}})
		assert.Contains(t, text, "parse_file")
		assert.Contains(t, text, "ingest_file")
		assert.NotContains(t, text, "list_media")
		assert.NotContains(t, text, "travelog://provinces")
	})

	t.Run("all ports", func(t *testing.T) {
		text := instructions(&Ports{
			Ingest: &mockIngestService{},
			Media:  &mockMediaService{},
			Geo:    &mockGeoService{},
		})
		assert.Contains(t, text, "list_media")
		assert.Contains(t, text, "travelog://media/{mediaId}")
		assert.Contains(t, text, "travelog://provinces/{provinceKey}/cities")
	})
}
