package driven

import (
	"context"

	"github.com/custodia-labs/travelog/internal/core/domain"
)

// IngestJournal keeps a history of ingestion outcomes.
type IngestJournal interface {
	// Record appends an entry.
	Record(ctx context.Context, entry domain.IngestEntry) error

	// Recent returns the newest entries first.
	// A limit of zero or less returns every entry.
	Recent(ctx context.Context, limit int) ([]domain.IngestEntry, error)
}
