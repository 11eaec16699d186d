package domain

import "time"

// IngestEntry records the outcome of ingesting one file.
type IngestEntry struct {
	// Path is the path the file was ingested from.
	Path string `json:"path"`

	// MediaID is the stored document id. Empty when ingestion failed.
	MediaID string `json:"media_id,omitempty"`

	// Format is the detected format. Empty when no parser matched.
	Format Format `json:"format,omitempty"`

	// Accepted is the number of accepted entries.
	Accepted int `json:"accepted"`

	// Rejected is the number of inputs dropped by validation.
	Rejected int `json:"rejected"`

	// Error is the failure message, if any.
	Error string `json:"error,omitempty"`

	// StartedAt is when processing of the file began.
	StartedAt time.Time `json:"started_at"`

	// EndedAt is when processing of the file finished.
	EndedAt time.Time `json:"ended_at"`
}

// Succeeded reports whether the file was stored.
func (e IngestEntry) Succeeded() bool {
	return e.Error == "" && e.MediaID != ""
}

// Duration returns the processing time.
func (e IngestEntry) Duration() time.Duration {
	return e.EndedAt.Sub(e.StartedAt)
}
