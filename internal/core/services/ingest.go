package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/travelog/internal/core/domain"
	"github.com/custodia-labs/travelog/internal/core/ports/driven"
	"github.com/custodia-labs/travelog/internal/core/ports/driving"
	"github.com/custodia-labs/travelog/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService parses media files and stores the results.
type IngestService struct {
	registry driven.ParserRegistry
	store    driven.MediaStore
	journal  driven.IngestJournal
	settings domain.IngestSettings
	limiter  *rate.Limiter
	now      func() time.Time
}

// NewIngestService creates a new ingest service.
// The journal is optional; if nil, outcomes are only logged.
func NewIngestService(
	registry driven.ParserRegistry,
	store driven.MediaStore,
	journal driven.IngestJournal,
	settings domain.IngestSettings,
) *IngestService {
	if settings.Workers < 1 {
		settings.Workers = 1
	}
	if settings.Burst < 1 {
		settings.Burst = 1
	}

	var limiter *rate.Limiter
	if settings.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(settings.Rate), settings.Burst)
	}

	return &IngestService{
		registry: registry,
		store:    store,
		journal:  journal,
		settings: settings,
		limiter:  limiter,
		now:      time.Now,
	}
}

// Ingest parses one file and stores the result.
func (s *IngestService) Ingest(ctx context.Context, path string, extra map[string]any) (string, error) {
	outcome := s.ingest(ctx, path, extra)
	return outcome.ID, outcome.Err
}

// IngestMany ingests files in parallel, bounded by the worker count and
// throttled by the configured rate. Every path gets an outcome.
func (s *IngestService) IngestMany(ctx context.Context, paths []string, extra map[string]any) []driving.IngestOutcome {
	outcomes := make([]driving.IngestOutcome, len(paths))

	var g errgroup.Group
	g.SetLimit(s.settings.Workers)

	for i, path := range paths {
		if err := s.wait(ctx); err != nil {
			outcomes[i] = driving.IngestOutcome{Path: path, Err: err}
			continue
		}
		g.Go(func() error {
			outcomes[i] = s.ingest(ctx, path, extra)
			return nil
		})
	}
	_ = g.Wait()

	stored, failed := 0, 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		} else {
			stored++
		}
	}
	logger.Info("Ingested %d of %d files (%d failed)", stored, len(paths), failed)

	return outcomes
}

// Parse parses one file without storing it.
func (s *IngestService) Parse(ctx context.Context, path string) (*domain.ParseResult, error) {
	if s.registry == nil {
		return nil, domain.ErrNotImplemented
	}
	result, err := s.registry.Parse(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return result, nil
}

// Supports reports whether the file's format can be parsed.
func (s *IngestService) Supports(path string) bool {
	return s.registry != nil && s.registry.Supports(path)
}

// History returns recent ingestion outcomes, newest first.
func (s *IngestService) History(ctx context.Context, limit int) ([]domain.IngestEntry, error) {
	if s.journal == nil {
		return []domain.IngestEntry{}, nil
	}
	return s.journal.Recent(ctx, limit)
}

// ingest runs the parse-and-store pipeline for one file.
func (s *IngestService) ingest(ctx context.Context, path string, extra map[string]any) driving.IngestOutcome {
	outcome := driving.IngestOutcome{Path: path}
	entry := domain.IngestEntry{Path: path, StartedAt: s.now()}

	defer func() {
		entry.EndedAt = s.now()
		if outcome.Err != nil {
			entry.Error = outcome.Err.Error()
		}
		s.record(ctx, entry)
	}()

	if err := ctx.Err(); err != nil {
		outcome.Err = err
		return outcome
	}
	if s.store == nil {
		outcome.Err = domain.ErrNotImplemented
		return outcome
	}

	result, err := s.Parse(ctx, path)
	if err != nil {
		outcome.Err = err
		logger.Warn("Skipping %s: %v", path, err)
		return outcome
	}

	outcome.Accepted = result.Total()
	outcome.Rejected = len(result.Rejected)
	entry.Format = result.Format
	entry.Accepted = outcome.Accepted
	entry.Rejected = outcome.Rejected

	doc := &domain.ParsedMedia{
		Path:   result.Path,
		Format: result.Format,
		Result: *result,
		Extra:  extra,
	}
	id, err := s.store.Insert(ctx, domain.CollectionParsedMedia, doc, s.settings.Actor)
	if err != nil {
		outcome.Err = fmt.Errorf("store %s: %w", path, err)
		logger.Warn("Failed to store %s: %v", path, err)
		return outcome
	}

	outcome.ID = id
	entry.MediaID = id

	logger.With(zerolog.InfoLevel).
		Str("path", result.Path).
		Str("format", string(result.Format)).
		Str("id", id).
		Int("accepted", outcome.Accepted).
		Int("rejected", outcome.Rejected).
		Msg("ingested")

	return outcome
}

// wait blocks until the limiter admits another file.
func (s *IngestService) wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.limiter == nil {
		return nil
	}
	return s.limiter.Wait(ctx)
}

// record appends to the journal, if any. Journal failures are logged.
func (s *IngestService) record(ctx context.Context, entry domain.IngestEntry) {
	if s.journal == nil {
		return
	}
	// Record even when ctx is cancelled.
	if err := s.journal.Record(context.WithoutCancel(ctx), entry); err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("Failed to record ingest of %s: %v", entry.Path, err)
	}
}
