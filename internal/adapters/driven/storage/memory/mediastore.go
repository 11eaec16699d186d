package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/travelog/internal/core/domain"
	"github.com/custodia-labs/travelog/internal/core/ports/driven"
)

// Ensure MediaStore implements the interface.
var _ driven.MediaStore = (*MediaStore)(nil)

type storedMedia struct {
	doc domain.ParsedMedia
	seq int
}

// MediaStore is an in-memory implementation of driven.MediaStore.
// Used for dry runs and tests.
type MediaStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]*storedMedia
	seq         int
	now         func() time.Time
}

// NewMediaStore creates a new in-memory media store.
func NewMediaStore() *MediaStore {
	return &MediaStore{
		collections: make(map[string]map[string]*storedMedia),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Insert stores a document, stamping provenance and assigning an id when absent.
func (s *MediaStore) Insert(ctx context.Context, collection string, doc *domain.ParsedMedia, actor string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if doc == nil || collection == "" {
		return "", domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
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

	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string]*storedMedia)
		s.collections[collection] = docs
	}

	stored := copyMedia(*doc)
	if prev, ok := docs[doc.ID]; ok {
		// Replacing keeps the original creation stamps.
		stored.Provenance.CreatedAt = prev.doc.Provenance.CreatedAt
		stored.Provenance.CreatedBy = prev.doc.Provenance.CreatedBy
		stored.Provenance.Owner = prev.doc.Provenance.Owner
		prev.doc = stored
		return doc.ID, nil
	}

	s.seq++
	docs[doc.ID] = &storedMedia{doc: stored, seq: s.seq}
	return doc.ID, nil
}

// FindOne retrieves a live document by id.
func (s *MediaStore) FindOne(_ context.Context, collection, id string) (*domain.ParsedMedia, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.collections[collection][id]
	if !ok || stored.doc.Provenance.Deleted {
		return nil, domain.ErrNotFound
	}
	doc := copyMedia(stored.doc)
	return &doc, nil
}

// Query returns matching documents, most recently updated first.
func (s *MediaStore) Query(
	_ context.Context,
	collection string,
	filter domain.MediaFilter,
	limit int,
) ([]domain.ParsedMedia, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]*storedMedia, 0, len(s.collections[collection]))
	for _, stored := range s.collections[collection] {
		if filter.Matches(&stored.doc) {
			matches = append(matches, stored)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i].doc.Provenance.UpdatedAt, matches[j].doc.Provenance.UpdatedAt
		if !a.Equal(b) {
			return a.After(b)
		}
		return matches[i].seq > matches[j].seq
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	docs := make([]domain.ParsedMedia, 0, len(matches))
	for _, stored := range matches {
		docs = append(docs, copyMedia(stored.doc))
	}
	return docs, nil
}

// SoftDelete flags a document as deleted.
func (s *MediaStore) SoftDelete(_ context.Context, collection, id, actor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.collections[collection][id]
	if !ok || stored.doc.Provenance.Deleted {
		return domain.ErrNotFound
	}
	stored.doc.Provenance.Deleted = true
	stored.doc.Provenance.UpdatedAt = s.now()
	stored.doc.Provenance.UpdatedBy = actor
	return nil
}

// Len returns the number of documents in a collection, deleted included.
func (s *MediaStore) Len(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[collection])
}

// copyMedia copies the document and its Extra map. Result is shared;
// parse results are not modified after construction.
func copyMedia(doc domain.ParsedMedia) domain.ParsedMedia {
	if doc.Extra != nil {
		extra := make(map[string]any, len(doc.Extra))
		for k, v := range doc.Extra {
			extra[k] = v
		}
		doc.Extra = extra
	}
	return doc
}
