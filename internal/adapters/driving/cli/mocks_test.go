package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/travelog/internal/core/domain"
	"github.com/custodia-labs/travelog/internal/core/ports/driving"
	"github.com/custodia-labs/travelog/internal/logger"
)

// mockIngestService implements driving.IngestService for testing.
// Paths containing "bad" fail with ErrFileParsing.
type mockIngestService struct {
	mu        sync.Mutex
	result    *domain.ParseResult
	history   []domain.IngestEntry
	err       error
	ingested  []string
	lastExtra map[string]any
}

func (m *mockIngestService) Ingest(_ context.Context, path string, extra map[string]any) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ingested = append(m.ingested, path)
	m.lastExtra = extra
	if strings.Contains(path, "bad") {
		return "", domain.ErrFileParsing
	}
	return "id-" + filepath.Base(path), m.err
}

func (m *mockIngestService) IngestMany(ctx context.Context, paths []string, extra map[string]any) []driving.IngestOutcome {
	outcomes := make([]driving.IngestOutcome, len(paths))
	for i, p := range paths {
		id, err := m.Ingest(ctx, p, extra)
		outcomes[i] = driving.IngestOutcome{Path: p, ID: id, Accepted: 2, Rejected: 1, Err: err}
	}
	return outcomes
}

func (m *mockIngestService) Parse(_ context.Context, _ string) (*domain.ParseResult, error) {
	return m.result, m.err
}

func (m *mockIngestService) Supports(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".fit" || ext == ".jpg"
}

func (m *mockIngestService) History(_ context.Context, limit int) ([]domain.IngestEntry, error) {
	if limit > 0 && len(m.history) > limit {
		return m.history[:limit], m.err
	}
	return m.history, m.err
}

func (m *mockIngestService) paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.ingested...)
}

// mockMediaService implements driving.MediaService for testing.
type mockMediaService struct {
	docs       []domain.ParsedMedia
	err        error
	deleted    []string
	lastFilter domain.MediaFilter
	lastLimit  int
}

func (m *mockMediaService) Get(_ context.Context, id string) (*domain.ParsedMedia, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.docs {
		if m.docs[i].ID == id {
			return &m.docs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockMediaService) List(_ context.Context, filter domain.MediaFilter, limit int) ([]domain.ParsedMedia, error) {
	m.lastFilter = filter
	m.lastLimit = limit
	return m.docs, m.err
}

func (m *mockMediaService) Delete(ctx context.Context, id string) error {
	if _, err := m.Get(ctx, id); err != nil {
		return err
	}
	m.deleted = append(m.deleted, id)
	return nil
}

// mockGeoService implements driving.GeoService for testing.
type mockGeoService struct {
	provinces []domain.Province
	cities    map[string][]domain.City
	err       error
}

func (m *mockGeoService) Provinces(_ context.Context) ([]domain.Province, error) {
	return m.provinces, m.err
}

func (m *mockGeoService) Cities(_ context.Context, key string) ([]domain.City, error) {
	return m.cities[key], m.err
}

// mockSettingsService implements driving.SettingsService for testing.
type mockSettingsService struct {
	settings    domain.Settings
	validateErr error
	set         map[string]string
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(settings *domain.Settings) error {
	m.settings = *settings
	return nil
}

func (m *mockSettingsService) SetSemicircleMode(mode string) error {
	m.settings.Parse.SemicircleMode = mode
	return nil
}

func (m *mockSettingsService) SetMediaRoot(root string) error {
	m.settings.MediaRoot = root
	return nil
}

func (m *mockSettingsService) Validate() error {
	return m.validateErr
}

func (m *mockSettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

func (m *mockSettingsService) SetValue(key, value string) error {
	if key == "unknown" {
		return domain.ErrInvalidInput
	}
	if m.set == nil {
		m.set = make(map[string]string)
	}
	m.set[key] = value
	return nil
}

func (m *mockSettingsService) Keys() []string {
	return []string{"ingest.workers", "media.root"}
}

// withServices installs s for the duration of the test.
func withServices(t *testing.T, s Services) {
	t.Helper()
	old := Services{
		Ingest:   ingestService,
		Media:    mediaService,
		Geo:      geoService,
		Settings: settingsService,
	}
	SetServices(s)
	t.Cleanup(func() { SetServices(old) })
}

// execute runs the root command with args and returns everything it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeContext(t, context.Background(), args...)
}

// executeContext is execute with a caller-supplied context.
func executeContext(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		resetCommands(rootCmd)
		logger.SetVerbose(false)
	})

	err := rootCmd.ExecuteContext(ctx)
	return buf.String(), err
}

// resetCommands restores every flag in the tree to its default value and
// clears the context cobra hands down from the previous execution.
func resetCommands(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if !f.Changed {
			return
		}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			sv.Replace(nil) //nolint:errcheck
		} else {
			f.Value.Set(f.DefValue) //nolint:errcheck
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	cmd.SetContext(nil) //nolint:staticcheck
	for _, c := range cmd.Commands() {
		resetCommands(c)
	}
}
