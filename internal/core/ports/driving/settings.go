package driving

import "github.com/custodia-labs/travelog/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.Settings, error)

	// Save persists application settings.
	Save(settings *domain.Settings) error

	// SetSemicircleMode updates the semicircle conversion mode.
	SetSemicircleMode(mode string) error

	// SetMediaRoot updates the prefix stripped from stored paths.
	SetMediaRoot(root string) error

	// Validate checks the current settings.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings

	// SetValue parses and stores one setting by config key.
	// Returns domain.ErrInvalidInput for unknown keys or malformed values.
	SetValue(key, value string) error

	// Keys returns every recognised config key, sorted.
	Keys() []string
}
