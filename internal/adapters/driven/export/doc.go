// Package export renders verified records as CSV, JSON and XLSX.
// Each format is a driven.Exporter registered with the export service.
package export
