package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/docverify/internal/core/domain"
	"github.com/custodia-labs/docverify/internal/core/ports/driven"
)

// SheetName is the name of the single worksheet in exported workbooks.
const SheetName = "Verified"

// defaultSheet is the sheet excelize creates with a new file.
const defaultSheet = "Sheet1"

// Ensure XLSXExporter implements the interface.
var _ driven.Exporter = (*XLSXExporter)(nil)

// XLSXExporter writes a workbook with Field, Value and Confidence columns.
type XLSXExporter struct{}

// NewXLSXExporter creates an XLSX exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Format returns domain.ExportXLSX.
func (e *XLSXExporter) Format() domain.ExportFormat {
	return domain.ExportXLSX
}

// Export writes the workbook to w.
func (e *XLSXExporter) Export(w io.Writer, record *domain.VerifiedRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &[]any{"Field", "Value", "Confidence"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "C1", bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, key := range record.ExtractedData.SortedKeys() {
		field := record.ExtractedData[key]
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{key, field.ValueOrEmpty(), field.ConfidenceOrEmpty()}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "B", 32); err != nil {
		return err
	}
	return f.Write(w)
}
