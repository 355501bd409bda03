package services

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/docverify/internal/core/domain"
	"github.com/custodia-labs/docverify/internal/core/ports/driven"
	"github.com/custodia-labs/docverify/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyAPIBaseURL   = "api.base_url"
	KeyAPITimeout   = "api.timeout_seconds"
	KeyAPIRateLimit = "api.rate_limit"
	KeyPollAttempts = "poll.max_attempts"
	KeyPollDelay    = "poll.delay_ms"
	KeyExportFormat = "export.format"
	KeyLogLevel     = "log.level"
)

const (
	allowedLogLevels  = "debug, info, warn, error"
	allowedURLSchemes = "http, https"
)

var settingsKeys = []string{
	KeyAPIBaseURL,
	KeyAPITimeout,
	KeyAPIRateLimit,
	KeyPollAttempts,
	KeyPollDelay,
	KeyExportFormat,
	KeyLogLevel,
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
// Missing or invalid values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		API: domain.APISettings{
			BaseURL:   s.getString(KeyAPIBaseURL, defaults.API.BaseURL),
			Timeout:   time.Duration(s.getInt(KeyAPITimeout, int(defaults.API.Timeout/time.Second))) * time.Second,
			RateLimit: s.getFloat(KeyAPIRateLimit, defaults.API.RateLimit),
		},
		Poll: domain.PollSettings{
			MaxAttempts: s.getInt(KeyPollAttempts, defaults.Poll.MaxAttempts),
			Delay:       s.getDelay(defaults.Poll.Delay),
		},
		ExportFormat: s.getExportFormat(defaults.ExportFormat),
		LogLevel:     s.getLogLevel(defaults.LogLevel),
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{KeyAPIBaseURL, settings.API.BaseURL},
		{KeyAPITimeout, int64(settings.API.Timeout / time.Second)},
		{KeyAPIRateLimit, settings.API.RateLimit},
		{KeyPollAttempts, int64(settings.Poll.MaxAttempts)},
		{KeyPollDelay, settings.Poll.Delay.Milliseconds()},
		{KeyExportFormat, settings.ExportFormat.String()},
		{KeyLogLevel, settings.LogLevel},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set validates value for key and stores it.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	parsed, err := parseSetting(key, value)
	if err != nil {
		return err
	}
	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns the recognised configuration keys.
func (s *SettingsService) Keys() []string {
	return append([]string(nil), settingsKeys...)
}

// ConfigPath returns the configuration file location.
func (s *SettingsService) ConfigPath() string {
	return s.configStore.Path()
}

func parseSetting(key, value string) (any, error) {
	switch key {
	case KeyAPIBaseURL:
		u, err := url.Parse(value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("%w: %s must be an absolute URL (%s)", domain.ErrInvalidInput, key, allowedURLSchemes)
		}
		return strings.TrimRight(value, "/"), nil
	case KeyAPITimeout, KeyPollAttempts:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		return n, nil
	case KeyPollDelay:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		return n, nil
	case KeyAPIRateLimit:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return nil, fmt.Errorf("%w: %s must be a non-negative number", domain.ErrInvalidInput, key)
		}
		return f, nil
	case KeyExportFormat:
		format := domain.ExportFormat(strings.ToLower(value))
		if !format.IsValid() {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, value)
		}
		return format.String(), nil
	case KeyLogLevel:
		level := strings.ToLower(value)
		if !validLogLevel(level) {
			return nil, fmt.Errorf("%w: %s must be one of %s", domain.ErrInvalidInput, key, allowedLogLevels)
		}
		return level, nil
	default:
		return nil, fmt.Errorf("%w: unknown key %q", domain.ErrInvalidInput, key)
	}
}

func validLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
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
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	val := s.configStore.GetFloat(key)
	if val < 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getDelay(defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(KeyPollDelay); !exists {
		return defaultVal
	}
	ms := s.configStore.GetInt(KeyPollDelay)
	if ms < 0 {
		return defaultVal
	}
	return time.Duration(ms) * time.Millisecond
}

func (s *SettingsService) getExportFormat(defaultVal domain.ExportFormat) domain.ExportFormat {
	format := domain.ExportFormat(s.configStore.GetString(KeyExportFormat))
	if !format.IsValid() {
		return defaultVal
	}
	return format
}

func (s *SettingsService) getLogLevel(defaultVal string) string {
	level := s.configStore.GetString(KeyLogLevel)
	if !validLogLevel(level) {
		return defaultVal
	}
	return level
}
