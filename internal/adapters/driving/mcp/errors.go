// Package mcp provides an MCP (Model Context Protocol) server adapter for travelog.
// It lets AI assistants parse media files and read stored parse results.
package mcp

import "errors"

// ErrMissingIngestService is returned when the ingest service is not provided.
var ErrMissingIngestService = errors.New("mcp: ingest service is required")
