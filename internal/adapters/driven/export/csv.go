package export

import (
	"bufio"
	"io"
	"strings"

	"github.com/custodia-labs/docverify/internal/core/domain"
	"github.com/custodia-labs/docverify/internal/core/ports/driven"
)

// csvHeader is written unquoted, rows are always quoted.
const csvHeader = "Field,Value\n"

// Ensure CSVExporter implements the interface.
var _ driven.Exporter = (*CSVExporter)(nil)

// CSVExporter writes one "key","value" row per extracted field.
type CSVExporter struct{}

// NewCSVExporter creates a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Format returns domain.ExportCSV.
func (e *CSVExporter) Format() domain.ExportFormat {
	return domain.ExportCSV
}

// Export writes the record's extracted data in natural key order.
// Absent values are written as "".
func (e *CSVExporter) Export(w io.Writer, record *domain.VerifiedRecord) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(csvHeader); err != nil {
		return err
	}
	for _, key := range record.ExtractedData.SortedKeys() {
		field := record.ExtractedData[key]
		if _, err := bw.WriteString(quote(key) + "," + quote(field.ValueOrEmpty()) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// quote wraps s in double quotes, doubling any it contains.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
