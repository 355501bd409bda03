package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/docverify/internal/core/domain"
)

// ExportService renders the session's verified record.
type ExportService interface {
	// Export writes the last verified record to w in format.
	Export(ctx context.Context, format domain.ExportFormat, w io.Writer) error

	// ExportRecord writes record to w in format.
	ExportRecord(record *domain.VerifiedRecord, format domain.ExportFormat, w io.Writer) error

	// Formats returns the formats with a registered exporter.
	Formats() []domain.ExportFormat
}
