package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/travelog/internal/core/domain"
	"github.com/custodia-labs/travelog/internal/core/ports/driven"
)

// Ensure IngestJournal implements the interface.
var _ driven.IngestJournal = (*IngestJournal)(nil)

// IngestJournal is an in-memory implementation of driven.IngestJournal.
type IngestJournal struct {
	mu      sync.RWMutex
	entries []domain.IngestEntry
}

// NewIngestJournal creates a new in-memory ingest journal.
func NewIngestJournal() *IngestJournal {
	return &IngestJournal{}
}

// Record appends an entry.
func (j *IngestJournal) Record(_ context.Context, entry domain.IngestEntry) error {
	if entry.Path == "" {
		return domain.ErrInvalidInput
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, entry)
	return nil
}

// Recent returns the most recently recorded entries first.
func (j *IngestJournal) Recent(_ context.Context, limit int) ([]domain.IngestEntry, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	n := len(j.entries)
	if limit > 0 && limit < n {
		n = limit
	}

	result := make([]domain.IngestEntry, 0, n)
	for i := len(j.entries) - 1; i >= 0 && len(result) < n; i-- {
		result = append(result, j.entries[i])
	}
	return result, nil
}
