package driven

import (
	"io"

	"github.com/custodia-labs/docverify/internal/core/domain"
)

// Exporter renders a verified record in one output format.
type Exporter interface {
	// Format returns the format this exporter produces.
	Format() domain.ExportFormat

	// Export writes the record to w.
	Export(w io.Writer, record *domain.VerifiedRecord) error
}
