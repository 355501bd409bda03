package mcp

import (
	"github.com/custodia-labs/docverify/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Auth exposes the session credential. Optional.
	Auth driving.AuthService

	// Documents runs the submit, poll and verify workflow.
	Documents driving.DocumentService

	// Export renders the verified record.
	Export driving.ExportService

	// History lists recorded workflow events. Optional.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Documents == nil {
		return ErrMissingDocumentService
	}
	if p.Export == nil {
		return ErrMissingExportService
	}
	return nil
}
