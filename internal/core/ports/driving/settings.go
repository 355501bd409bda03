package driving

import "github.com/custodia-labs/docverify/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, defaults applied.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set validates and stores a single key from its string form.
	Set(key, value string) error

	// Keys returns the recognised configuration keys.
	Keys() []string

	// ConfigPath returns the configuration file location.
	ConfigPath() string
}
