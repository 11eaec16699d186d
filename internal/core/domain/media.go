package domain

import "time"

// CollectionParsedMedia is the collection holding parse results.
const CollectionParsedMedia = "media_parsed_data"

// CollectionAnalysis is the collection reserved for downstream analytics output.
const CollectionAnalysis = "media_analysis_data"

// Provenance holds the bookkeeping fields stamped by persistence.
type Provenance struct {
	// CreatedAt is when the document was first stored.
	CreatedAt time.Time `json:"created_at"`

	// CreatedBy is the actor that stored the document.
	CreatedBy string `json:"created_by,omitempty"`

	// UpdatedAt is when the document was last written.
	UpdatedAt time.Time `json:"updated_at"`

	// UpdatedBy is the actor of the last write.
	UpdatedBy string `json:"updated_by,omitempty"`

	// Deleted is the soft-delete flag.
	Deleted bool `json:"deleted"`

	// Owner is the actor owning the document.
	Owner string `json:"owner,omitempty"`
}

// ParsedMedia is a ParseResult as handed to persistence.
type ParsedMedia struct {
	// ID is the correlation id, assigned by the store when empty.
	ID string `json:"id"`

	// Collection is the store collection the document lives in.
	Collection string `json:"collection"`

	// Path is the storage-relative path of the source file.
	Path string `json:"path"`

	// Format is the format of the source file.
	Format Format `json:"format"`

	// Result is the parse output.
	Result ParseResult `json:"data"`

	// Extra holds caller-supplied metadata stored alongside the result.
	Extra map[string]any `json:"extra,omitempty"`

	// Provenance is stamped by the store on insert.
	Provenance Provenance `json:"provenance"`
}

// MediaFilter narrows a media query. Zero fields match everything.
type MediaFilter struct {
	// Format restricts results to one format.
	Format Format

	// PathPrefix restricts results to paths with this prefix.
	PathPrefix string

	// Owner restricts results to one owner.
	Owner string

	// IncludeDeleted includes soft-deleted documents.
	IncludeDeleted bool
}

// Matches reports whether a document satisfies the filter.
func (f MediaFilter) Matches(m *ParsedMedia) bool {
	if f.Format != "" && m.Format != f.Format {
		return false
	}
	if f.PathPrefix != "" && (len(m.Path) < len(f.PathPrefix) || m.Path[:len(f.PathPrefix)] != f.PathPrefix) {
		return false
	}
	if f.Owner != "" && m.Provenance.Owner != f.Owner {
		return false
	}
	if !f.IncludeDeleted && m.Provenance.Deleted {
		return false
	}
	return true
}

// Province is an entry in the static geographic reference data.
type Province struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// City is an entry in the static geographic reference data.
type City struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}
