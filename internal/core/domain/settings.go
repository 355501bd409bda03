package domain

import "time"

const unknownDescription = "Unknown"

// ExportFormat identifies an output format for a verified record.
type ExportFormat string

// Available export formats.
const (
	// ExportCSV writes a Field,Value table.
	ExportCSV ExportFormat = "csv"

	// ExportJSON writes the pretty-printed verified record.
	ExportJSON ExportFormat = "json"

	// ExportXLSX writes a single-sheet workbook.
	ExportXLSX ExportFormat = "xlsx"
)

// IsValid returns true if the format is recognised.
func (f ExportFormat) IsValid() bool {
	switch f {
	case ExportCSV, ExportJSON, ExportXLSX:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f ExportFormat) String() string {
	return string(f)
}

// Extension returns the file extension including the dot.
func (f ExportFormat) Extension() string {
	if !f.IsValid() {
		return ""
	}
	return "." + string(f)
}

// Description returns a human-readable description of the format.
func (f ExportFormat) Description() string {
	switch f {
	case ExportCSV:
		return "CSV (Field,Value)"
	case ExportJSON:
		return "JSON (verified record)"
	case ExportXLSX:
		return "Excel workbook"
	default:
		return unknownDescription
	}
}

// AllExportFormats returns all available export formats.
func AllExportFormats() []ExportFormat {
	return []ExportFormat{ExportCSV, ExportJSON, ExportXLSX}
}

// APISettings holds extraction API connection configuration.
type APISettings struct {
	// BaseURL is the API root, e.g. http://localhost:8000.
	BaseURL string

	// Timeout bounds a single HTTP request.
	Timeout time.Duration

	// RateLimit caps gateway requests per second. Zero disables throttling.
	RateLimit float64
}

// PollSettings holds the poll-until-ready budget.
type PollSettings struct {
	// MaxAttempts is the total number of status requests.
	MaxAttempts int

	// Delay is the fixed wait after each unsuccessful attempt.
	Delay time.Duration
}

// Budget returns the nominal upper bound on time spent waiting.
func (p PollSettings) Budget() time.Duration {
	return time.Duration(p.MaxAttempts) * p.Delay
}

// AppSettings holds all application settings.
type AppSettings struct {
	// API holds connection settings.
	API APISettings

	// Poll holds polling settings.
	Poll PollSettings

	// ExportFormat is the default export format.
	ExportFormat ExportFormat

	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string
}

// Default values.
const (
	DefaultBaseURL      = "http://localhost:8000"
	DefaultTimeout      = 30 * time.Second
	DefaultMaxAttempts  = 30
	DefaultPollDelay    = 2 * time.Second
	DefaultLogLevel     = "info"
	DefaultExportFormat = ExportCSV
)

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		API: APISettings{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultTimeout,
		},
		Poll: PollSettings{
			MaxAttempts: DefaultMaxAttempts,
			Delay:       DefaultPollDelay,
		},
		ExportFormat: DefaultExportFormat,
		LogLevel:     DefaultLogLevel,
	}
}
