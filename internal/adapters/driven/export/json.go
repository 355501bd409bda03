package export

import (
	"io"

	"github.com/custodia-labs/docverify/internal/core/domain"
	"github.com/custodia-labs/docverify/internal/core/ports/driven"
)

// Ensure JSONExporter implements the interface.
var _ driven.Exporter = (*JSONExporter)(nil)

// JSONExporter writes the full verified record, passthrough fields included.
type JSONExporter struct{}

// NewJSONExporter creates a JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Format returns domain.ExportJSON.
func (e *JSONExporter) Format() domain.ExportFormat {
	return domain.ExportJSON
}

// Export writes the record with two-space indentation.
func (e *JSONExporter) Export(w io.Writer, record *domain.VerifiedRecord) error {
	data, err := record.MarshalIndent()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
