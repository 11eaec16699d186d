package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/custodia-labs/travelog/internal/core/domain"
	"github.com/custodia-labs/travelog/internal/core/ports/driven"
)

// ingestJournal implements driven.IngestJournal.
type ingestJournal struct {
	store *Store
}

var _ driven.IngestJournal = (*ingestJournal)(nil)

// Record appends an ingestion outcome.
func (j *ingestJournal) Record(ctx context.Context, entry domain.IngestEntry) error {
	if entry.Path == "" {
		return domain.ErrInvalidInput
	}

	_, err := j.store.db.ExecContext(ctx, `
		INSERT INTO ingest_journal (path, media_id, format, accepted, rejected, error, started_at, ended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.Path, nullString(entry.MediaID), nullString(string(entry.Format)),
		entry.Accepted, entry.Rejected, nullString(entry.Error),
		formatTime(entry.StartedAt), formatTime(entry.EndedAt))

	if err != nil {
		return fmt.Errorf("recording ingest entry: %w", err)
	}
	return nil
}

// Recent returns the newest entries first.
func (j *ingestJournal) Recent(ctx context.Context, limit int) ([]domain.IngestEntry, error) {
	query := `
		SELECT path, media_id, format, accepted, rejected, error, started_at, ended_at
		FROM ingest_journal ORDER BY started_at DESC, id DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := j.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying ingest journal: %w", err)
	}
	defer rows.Close()

	var entries []domain.IngestEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		var e domain.IngestEntry
		var mediaID, format, errMsg sql.NullString
		var startedAt, endedAt string
		if err := rows.Scan(&e.Path, &mediaID, &format, &e.Accepted, &e.Rejected,
			&errMsg, &startedAt, &endedAt); err != nil {
			return nil, fmt.Errorf("scanning ingest entry: %w", err)
		}

		e.MediaID = mediaID.String
		e.Format = domain.Format(format.String)
		e.Error = errMsg.String
		e.StartedAt = parseTime(startedAt)
		e.EndedAt = parseTime(endedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ingest journal: %w", err)
	}

	return entries, nil
}
