package driving

import (
	"context"
	"errors"

	"github.com/custodia-labs/travelog/internal/core/domain"
)

// IngestService parses media files and hands the results to persistence.
type IngestService interface {
	// Ingest parses one file and stores the result.
	// Returns the correlation id of the stored document.
	Ingest(ctx context.Context, path string, extra map[string]any) (string, error)

	// IngestMany ingests files in parallel. A failure on one file does not
	// stop the others; every path gets an outcome, in input order.
	IngestMany(ctx context.Context, paths []string, extra map[string]any) []IngestOutcome

	// Parse parses one file without storing it.
	Parse(ctx context.Context, path string) (*domain.ParseResult, error)

	// Supports reports whether the file's format can be parsed.
	Supports(path string) bool

	// History returns recent ingestion outcomes, newest first.
	History(ctx context.Context, limit int) ([]domain.IngestEntry, error)
}

// IngestOutcome is the result of ingesting one file.
type IngestOutcome struct {
	// Path is the file as given by the caller.
	Path string

	// ID is the stored document id. Empty on failure.
	ID string

	// Accepted is the number of accepted entries.
	Accepted int

	// Rejected is the number of inputs dropped by validation.
	Rejected int

	// Err is the structural failure, if any.
	Err error
}

// FailedOutcomes returns the outcomes that carry an error.
func FailedOutcomes(outcomes []IngestOutcome) []IngestOutcome {
	var failed []IngestOutcome
	for _, o := range outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}

// JoinOutcomeErrors combines per-file failures into one error, or nil.
func JoinOutcomeErrors(outcomes []IngestOutcome) error {
	var errs []error
	for _, o := range FailedOutcomes(outcomes) {
		errs = append(errs, o.Err)
	}
	return errors.Join(errs...)
}
