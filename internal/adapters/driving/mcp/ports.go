package mcp

import (
	"github.com/custodia-labs/travelog/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Ingest parses and stores media files.
	Ingest driving.IngestService

	// Media reads stored parse results.
	Media driving.MediaService

	// Geo serves the province and city reference data.
	Geo driving.GeoService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Ingest == nil {
		return ErrMissingIngestService
	}
	// Media and Geo are optional.
	return nil
}
