package parsers

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/travelog/internal/core/domain"
	"github.com/custodia-labs/travelog/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ParserRegistry = (*Registry)(nil)

// Registry maps file extensions to parsers.
// When several parsers claim an extension the highest priority wins.
type Registry struct {
	mu      sync.RWMutex
	parsers []driven.Parser
}

// NewRegistry creates a registry holding the given parsers.
func NewRegistry(parsers ...driven.Parser) *Registry {
	r := &Registry{}
	for _, p := range parsers {
		r.Register(p)
	}
	return r
}

// Register adds a parser to the registry.
func (r *Registry) Register(parser driven.Parser) {
	if parser == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.parsers = append(r.parsers, parser)
	sort.SliceStable(r.parsers, func(i, j int) bool {
		return r.parsers[i].Priority() > r.parsers[j].Priority()
	})
}

// For returns the parser for a path, selected by extension.
// Returns domain.ErrUnsupportedType if no parser handles it.
func (r *Registry) For(path string) (driven.Parser, error) {
	ext := strings.ToLower(filepath.Ext(path))

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.parsers {
		for _, e := range p.Extensions() {
			if e == ext {
				return p, nil
			}
		}
	}
	return nil, fmt.Errorf("no parser for %q: %w", ext, domain.ErrUnsupportedType)
}

// Supports reports whether a parser handles the path's extension.
func (r *Registry) Supports(path string) bool {
	_, err := r.For(path)
	return err == nil
}

// Parse reads a file with the best matching parser.
func (r *Registry) Parse(ctx context.Context, path string) (*domain.ParseResult, error) {
	p, err := r.For(path)
	if err != nil {
		return nil, err
	}
	return p.Parse(ctx, path)
}

// SupportedExtensions returns all extensions that can be parsed, sorted.
func (r *Registry) SupportedExtensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, p := range r.parsers {
		for _, e := range p.Extensions() {
			seen[e] = struct{}{}
		}
	}

	exts := make([]string, 0, len(seen))
	for e := range seen {
		exts = append(exts, e)
	}
	sort.Strings(exts)
	return exts
}
