// Package tui provides the interactive terminal interface for docverify:
// sign in, upload, verify extracted fields, export and history.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/docverify/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Auth signs the user in and out.
	Auth driving.AuthService

	// Documents submits, polls and saves documents.
	Documents driving.DocumentService

	// Export renders the verified record.
	Export driving.ExportService

	// Settings supplies the default export format.
	Settings driving.SettingsService

	// History lists recorded workflow events. Optional.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Auth == nil {
		return ErrMissingAuthService
	}
	if p.Documents == nil {
		return ErrMissingDocumentService
	}
	if p.Export == nil {
		return ErrMissingExportService
	}
	return nil
}
