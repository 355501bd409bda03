package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docverify/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docverify/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NotNil(t, service)
	assert.Equal(t, ":memory:", service.ConfigPath())
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("api.base_url", "https://extract.example.com")
	_ = store.Set("api.timeout_seconds", int64(10))
	_ = store.Set("api.rate_limit", 2.5)
	_ = store.Set("poll.max_attempts", int64(5))
	_ = store.Set("poll.delay_ms", int64(250))
	_ = store.Set("export.format", "xlsx")
	_ = store.Set("log.level", "debug")

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, "https://extract.example.com", settings.API.BaseURL)
	assert.Equal(t, 10*time.Second, settings.API.Timeout)
	assert.InDelta(t, 2.5, settings.API.RateLimit, 0.001)
	assert.Equal(t, 5, settings.Poll.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, settings.Poll.Delay)
	assert.Equal(t, domain.ExportXLSX, settings.ExportFormat)
	assert.Equal(t, "debug", settings.LogLevel)
}

func TestSettingsService_Get_ZeroDelayIsKept(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("poll.delay_ms", int64(0))

	settings, err := NewSettingsService(store).Get()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), settings.Poll.Delay)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("export.format", "pdf")
	_ = store.Set("log.level", "loud")
	_ = store.Set("poll.max_attempts", int64(-1))
	_ = store.Set("api.rate_limit", -3.0)

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.ExportFormat, settings.ExportFormat)
	assert.Equal(t, defaults.LogLevel, settings.LogLevel)
	assert.Equal(t, defaults.Poll.MaxAttempts, settings.Poll.MaxAttempts)
	assert.Zero(t, settings.API.RateLimit)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := domain.DefaultAppSettings()
	settings.API.BaseURL = "https://api.example.com"
	settings.Poll.MaxAttempts = 12
	settings.Poll.Delay = 500 * time.Millisecond
	settings.ExportFormat = domain.ExportJSON

	require.NoError(t, service.Save(&settings))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, *got)
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		key   string
		value string
		want  any
	}{
		{"api.base_url", "https://api.example.com/", "https://api.example.com"},
		{"api.timeout_seconds", "45", int64(45)},
		{"api.rate_limit", "0.5", 0.5},
		{"poll.max_attempts", "10", int64(10)},
		{"poll.delay_ms", "0", int64(0)},
		{"export.format", "JSON", "json"},
		{"log.level", "WARN", "warn"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			store := memory.NewConfigStore()
			require.NoError(t, NewSettingsService(store).Set(tt.key, tt.value))

			got, ok := store.Get(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSettingsService_Set_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
		want  error
	}{
		{"api.base_url", "localhost:8000", domain.ErrInvalidInput},
		{"api.base_url", "ftp://example.com", domain.ErrInvalidInput},
		{"api.timeout_seconds", "0", domain.ErrInvalidInput},
		{"api.rate_limit", "-1", domain.ErrInvalidInput},
		{"poll.max_attempts", "many", domain.ErrInvalidInput},
		{"poll.delay_ms", "-5", domain.ErrInvalidInput},
		{"export.format", "pdf", domain.ErrUnsupportedFormat},
		{"log.level", "trace", domain.ErrInvalidInput},
		{"ui.theme", "dark", domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			store := memory.NewConfigStore()
			err := NewSettingsService(store).Set(tt.key, tt.value)
			assert.ErrorIs(t, err, tt.want)
			_, ok := store.Get(tt.key)
			assert.False(t, ok)
		})
	}
}

func TestSettingsService_Keys(t *testing.T) {
	keys := NewSettingsService(memory.NewConfigStore()).Keys()
	assert.Len(t, keys, 7)
	assert.Contains(t, keys, "poll.delay_ms")
}
