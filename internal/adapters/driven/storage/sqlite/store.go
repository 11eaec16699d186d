package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/travelog/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/travelog/internal/core/domain"
	"github.com/custodia-labs/travelog/internal/core/ports/driven"
)

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store is a unified SQLite-based storage that provides access to
// the media store and ingest journal.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.travelog/data/metadata.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".travelog", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "metadata.db")

	// WAL lets the watcher and CLI queries share the file.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// MediaStore returns a MediaStore interface backed by this store.
func (s *Store) MediaStore() driven.MediaStore {
	return &mediaStore{store: s}
}

// IngestJournal returns an IngestJournal interface backed by this store.
func (s *Store) IngestJournal() driven.IngestJournal {
	return &ingestJournal{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_parsed_media.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Media Store ====================

// mediaStore implements driven.MediaStore.
type mediaStore struct {
	store *Store
}

var _ driven.MediaStore = (*mediaStore)(nil)

const mediaColumns = `id, collection, path, format, data, extra,
	created_at, created_by, updated_at, updated_by, deleted, owner`

// Insert stores a document, stamping provenance and assigning an id
// when absent. Re-inserting an existing id replaces its content and
// keeps the original creation stamps.
func (s *mediaStore) Insert(ctx context.Context, collection string, doc *domain.ParsedMedia, actor string) (string, error) {
	if doc == nil || collection == "" {
		return "", domain.ErrInvalidInput
	}

	stamp(doc, collection, actor, time.Now().UTC())

	dataJSON, err := json.Marshal(doc.Result)
	if err != nil {
		return "", fmt.Errorf("marshalling result: %w", err)
	}
	var extraJSON any
	if len(doc.Extra) > 0 {
		b, err := json.Marshal(doc.Extra)
		if err != nil {
			return "", fmt.Errorf("marshalling extra: %w", err)
		}
		extraJSON = string(b)
	}

	p := doc.Provenance
	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO parsed_media (`+mediaColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			collection = excluded.collection,
			path = excluded.path,
			format = excluded.format,
			data = excluded.data,
			extra = excluded.extra,
			updated_at = excluded.updated_at,
			updated_by = excluded.updated_by,
			deleted = excluded.deleted
	`, doc.ID, collection, doc.Path, string(doc.Format), string(dataJSON), extraJSON,
		formatTime(p.CreatedAt), nullString(p.CreatedBy),
		formatTime(p.UpdatedAt), nullString(p.UpdatedBy),
		boolToInt(p.Deleted), nullString(p.Owner))

	if err != nil {
		return "", fmt.Errorf("inserting media: %w", err)
	}
	return doc.ID, nil
}

// FindOne retrieves a live document by id.
func (s *mediaStore) FindOne(ctx context.Context, collection, id string) (*domain.ParsedMedia, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT `+mediaColumns+`
		FROM parsed_media WHERE collection = ? AND id = ? AND deleted = 0
	`, collection, id)

	doc, err := scanMedia(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Query returns matching documents, most recently updated first.
func (s *mediaStore) Query(
	ctx context.Context,
	collection string,
	filter domain.MediaFilter,
	limit int,
) ([]domain.ParsedMedia, error) {
	where := []string{"collection = ?"}
	args := []any{collection}

	if filter.Format != "" {
		where = append(where, "format = ?")
		args = append(args, string(filter.Format))
	}
	if filter.PathPrefix != "" {
		where = append(where, `path LIKE ? ESCAPE '\'`)
		args = append(args, escapeLike(filter.PathPrefix)+"%")
	}
	if filter.Owner != "" {
		where = append(where, "owner = ?")
		args = append(args, filter.Owner)
	}
	if !filter.IncludeDeleted {
		where = append(where, "deleted = 0")
	}

	query := "SELECT " + mediaColumns + " FROM parsed_media WHERE " +
		strings.Join(where, " AND ") + " ORDER BY updated_at DESC, rowid DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying media: %w", err)
	}
	defer rows.Close()

	var docs []domain.ParsedMedia //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating media: %w", err)
	}

	return docs, nil
}

// SoftDelete flags a document as deleted and stamps the update.
func (s *mediaStore) SoftDelete(ctx context.Context, collection, id, actor string) error {
	res, err := s.store.db.ExecContext(ctx, `
		UPDATE parsed_media SET deleted = 1, updated_at = ?, updated_by = ?
		WHERE collection = ? AND id = ? AND deleted = 0
	`, formatTime(time.Now().UTC()), nullString(actor), collection, id)
	if err != nil {
		return fmt.Errorf("deleting media: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting media: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ==================== Helper Functions ====================

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// stamp fills absent provenance fields and the id.
func stamp(doc *domain.ParsedMedia, collection, actor string, now time.Time) {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	doc.Collection = collection

	p := &doc.Provenance
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.CreatedBy == "" {
		p.CreatedBy = actor
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}
	if p.UpdatedBy == "" {
		p.UpdatedBy = actor
	}
	if p.Owner == "" {
		p.Owner = actor
	}
}

// scanMedia scans one parsed_media row. sql.ErrNoRows is returned unwrapped.
func scanMedia(row rowScanner) (*domain.ParsedMedia, error) {
	var doc domain.ParsedMedia
	var format, dataJSON, createdAt, updatedAt string
	var extraJSON, createdBy, updatedBy, owner sql.NullString
	var deleted int

	if err := row.Scan(&doc.ID, &doc.Collection, &doc.Path, &format, &dataJSON, &extraJSON,
		&createdAt, &createdBy, &updatedAt, &updatedBy, &deleted, &owner); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning media: %w", err)
	}

	doc.Format = domain.Format(format)
	if err := json.Unmarshal([]byte(dataJSON), &doc.Result); err != nil {
		return nil, fmt.Errorf("unmarshaling result: %w", err)
	}
	if extraJSON.Valid && extraJSON.String != "" {
		if err := json.Unmarshal([]byte(extraJSON.String), &doc.Extra); err != nil {
			return nil, fmt.Errorf("unmarshaling extra: %w", err)
		}
	}

	doc.Provenance = domain.Provenance{
		CreatedAt: parseTime(createdAt),
		CreatedBy: createdBy.String,
		UpdatedAt: parseTime(updatedAt),
		UpdatedBy: updatedBy.String,
		Deleted:   deleted != 0,
		Owner:     owner.String,
	}
	return &doc, nil
}

// escapeLike escapes LIKE wildcards so a prefix matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// formatTime formats a time for storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime parses a stored time. Returns zero time on error.
func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// nullString returns nil for empty strings, otherwise the string.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// boolToInt converts a bool to 1 (true) or 0 (false).
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
