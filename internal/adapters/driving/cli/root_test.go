package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/travelog/internal/logger"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "travelog", rootCmd.Use)
}

func TestRootCmd_RegistersCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"parse", "ingest", "watch", "media", "geo", "config", "mcp", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestRootCmd_VerboseFlag(t *testing.T) {
	_, err := execute(t, "--verbose", "version")

	require.NoError(t, err)
	assert.True(t, logger.IsVerbose())
}

func TestSetServices(t *testing.T) {
	ingest := &mockIngestService{}
	media := &mockMediaService{}
	withServices(t, Services{Ingest: ingest, Media: media})

	assert.Same(t, ingest, ingestService)
	assert.Same(t, media, mediaService)
	assert.Nil(t, geoService)
	assert.Nil(t, settingsService)
}
