package services

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/travelog/internal/core/domain"
	"github.com/custodia-labs/travelog/internal/core/ports/driven"
	"github.com/custodia-labs/travelog/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyMediaRoot      = "media.root"
	keyDataDir        = "storage.data_dir"
	keyGeoStaticDir   = "geo.static_dir"
	keyDropUnknown    = "parse.drop_unknown"
	keySemicircleMode = "parse.semicircle_mode"
	keyFITPrefix      = "parse.fit."
	keyPhotoPrefix    = "parse.photo."
	keyWorkers        = "ingest.workers"
	keyRate           = "ingest.rate"
	keyBurst          = "ingest.burst"
	keyActor          = "ingest.actor"
)

// fitKeyBuckets are the activity buckets configurable by message name.
// BucketUnclassified is the fallback and has no key.
var fitKeyBuckets = []domain.Bucket{
	domain.BucketActivityRecord,
	domain.BucketGear,
	domain.BucketActivity,
	domain.BucketTraveller,
}

// photoKeyBuckets are the photo buckets configurable by tag category.
var photoKeyBuckets = []domain.Bucket{
	domain.BucketExif,
	domain.BucketGPS,
	domain.BucketImage,
	domain.BucketThumbnail,
	domain.BucketMaker,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Absent or invalid values fall back to defaults.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		MediaRoot:    s.getString(keyMediaRoot, defaults.MediaRoot),
		DataDir:      s.getString(keyDataDir, defaults.DataDir),
		GeoStaticDir: s.getString(keyGeoStaticDir, defaults.GeoStaticDir),
		Parse: domain.ParseSettings{
			DropUnknown:     s.getBool(keyDropUnknown, defaults.Parse.DropUnknown),
			SemicircleMode:  s.getSemicircleMode(defaults.Parse.SemicircleMode),
			FITMessages:     s.getBuckets(keyFITPrefix, fitKeyBuckets, defaults.Parse.FITMessages),
			PhotoCategories: s.getBuckets(keyPhotoPrefix, photoKeyBuckets, defaults.Parse.PhotoCategories),
		},
		Ingest: domain.IngestSettings{
			Workers: s.getInt(keyWorkers, defaults.Ingest.Workers),
			Rate:    s.getFloat(keyRate, defaults.Ingest.Rate),
			Burst:   s.getInt(keyBurst, defaults.Ingest.Burst),
			Actor:   s.getString(keyActor, defaults.Ingest.Actor),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}

	type setting struct {
		key   string
		value any
	}
	values := []setting{
		{keyMediaRoot, settings.MediaRoot},
		{keyDataDir, settings.DataDir},
		{keyGeoStaticDir, settings.GeoStaticDir},
		{keyDropUnknown, settings.Parse.DropUnknown},
		{keySemicircleMode, settings.Parse.SemicircleMode},
		{keyWorkers, settings.Ingest.Workers},
		{keyRate, settings.Ingest.Rate},
		{keyBurst, settings.Ingest.Burst},
		{keyActor, settings.Ingest.Actor},
	}
	for _, b := range fitKeyBuckets {
		if names, ok := settings.Parse.FITMessages[b]; ok {
			values = append(values, setting{keyFITPrefix + string(b), names})
		}
	}
	for _, b := range photoKeyBuckets {
		if categories, ok := settings.Parse.PhotoCategories[b]; ok {
			values = append(values, setting{keyPhotoPrefix + string(b), categories})
		}
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// SetSemicircleMode updates the semicircle conversion mode.
func (s *SettingsService) SetSemicircleMode(mode string) error {
	if !domain.IsValidSemicircleMode(mode) {
		return fmt.Errorf("invalid semicircle mode %q: %w", mode, domain.ErrInvalidInput)
	}
	return s.configStore.Set(keySemicircleMode, mode)
}

// SetMediaRoot updates the prefix stripped from stored paths.
func (s *SettingsService) SetMediaRoot(root string) error {
	root = strings.TrimSpace(root)
	if root != "" {
		root = filepath.Clean(root)
	}
	return s.configStore.Set(keyMediaRoot, root)
}

// Validate checks the current settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !domain.IsValidSemicircleMode(s.configStore.GetString(keySemicircleMode)) {
		if _, set := s.configStore.Get(keySemicircleMode); set {
			return fmt.Errorf("%s must be %q or %q: %w",
				keySemicircleMode, domain.SemicircleLinear, domain.SemicircleLegacySquared, domain.ErrInvalidInput)
		}
	}
	if settings.Ingest.Workers < 1 {
		return fmt.Errorf("%s must be at least 1: %w", keyWorkers, domain.ErrInvalidInput)
	}
	if settings.Ingest.Rate < 0 {
		return fmt.Errorf("%s must not be negative: %w", keyRate, domain.ErrInvalidInput)
	}
	if settings.Ingest.Burst < 1 {
		return fmt.Errorf("%s must be at least 1: %w", keyBurst, domain.ErrInvalidInput)
	}

	// A name routed to two buckets would only ever reach the first.
	seen := make(map[string]domain.Bucket)
	for _, b := range fitKeyBuckets {
		for _, name := range settings.Parse.FITMessages[b] {
			name = strings.ToLower(name)
			if prev, dup := seen[name]; dup {
				return fmt.Errorf("message %q routed to both %s and %s: %w", name, prev, b, domain.ErrInvalidInput)
			}
			seen[name] = b
		}
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// Keys returns every recognised config key, sorted.
func (s *SettingsService) Keys() []string {
	keys := []string{
		keyMediaRoot, keyDataDir, keyGeoStaticDir,
		keyDropUnknown, keySemicircleMode,
		keyWorkers, keyRate, keyBurst, keyActor,
	}
	for _, b := range fitKeyBuckets {
		keys = append(keys, keyFITPrefix+string(b))
	}
	for _, b := range photoKeyBuckets {
		keys = append(keys, keyPhotoPrefix+string(b))
	}
	sort.Strings(keys)
	return keys
}

// SetValue parses value for key and stores it.
// Lists are comma separated.
func (s *SettingsService) SetValue(key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case keyMediaRoot:
		return s.SetMediaRoot(value)

	case keyDataDir, keyGeoStaticDir, keyActor:
		return s.configStore.Set(key, value)

	case keySemicircleMode:
		return s.SetSemicircleMode(value)

	case keyDropUnknown:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %q is not a boolean: %w", key, value, domain.ErrInvalidInput)
		}
		return s.configStore.Set(key, b)

	case keyWorkers, keyBurst:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("%s: %q is not a positive integer: %w", key, value, domain.ErrInvalidInput)
		}
		return s.configStore.Set(key, n)

	case keyRate:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%s: %q is not a non-negative number: %w", key, value, domain.ErrInvalidInput)
		}
		return s.configStore.Set(key, f)
	}

	if s.isListKey(key) {
		return s.configStore.Set(key, splitList(value))
	}
	return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
}

func (s *SettingsService) isListKey(key string) bool {
	for _, b := range fitKeyBuckets {
		if key == keyFITPrefix+string(b) {
			return true
		}
	}
	for _, b := range photoKeyBuckets {
		if key == keyPhotoPrefix+string(b) {
			return true
		}
	}
	return false
}

// splitList splits a comma separated list, dropping blanks.
func splitList(value string) []string {
	items := make([]string, 0)
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getSemicircleMode(defaultVal string) string {
	val := s.configStore.GetString(keySemicircleMode)
	if !domain.IsValidSemicircleMode(val) {
		return defaultVal
	}
	return val
}

// getBuckets reads one name list per bucket. A bucket whose key is set
// replaces its default, even with an empty list.
func (s *SettingsService) getBuckets(
	prefix string,
	buckets []domain.Bucket,
	defaults map[domain.Bucket][]string,
) map[domain.Bucket][]string {
	result := make(map[domain.Bucket][]string, len(buckets))
	for _, b := range buckets {
		key := prefix + string(b)
		if _, exists := s.configStore.Get(key); exists {
			result[b] = s.configStore.GetStringSlice(key)
			continue
		}
		if names, ok := defaults[b]; ok {
			result[b] = names
		}
	}
	return result
}
