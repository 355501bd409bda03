package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docverify/internal/core/domain"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the verified record to a file",
	Long: `Export the last verified record of this session.

Formats:
  csv   - Field,Value rows in natural field order
  json  - the verified record as returned by the server
  xlsx  - a single-sheet workbook with confidence scores

The default format comes from the export.format setting. Use --output -
to write to stdout.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

// Flags for export.
var (
	exportFormat string
	exportOutput string
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "csv, json or xlsx (default from settings)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output path (default verified.<format>)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	if exportService == nil {
		return errors.New("export service not configured")
	}

	format, err := resolveFormat(exportFormat)
	if err != nil {
		return err
	}

	path := exportOutput
	if path == "" {
		path = "verified" + format.Extension()
	}

	if path == "-" {
		return exportService.Export(cmd.Context(), format, cmd.OutOrStdout())
	}

	if err := writeExport(cmd, format, path); err != nil {
		return err
	}
	cmd.Printf("Exported %s to %s\n", format, path)
	return nil
}

// resolveFormat validates name, falling back to the configured default.
func resolveFormat(name string) (domain.ExportFormat, error) {
	if name == "" {
		if settingsService != nil {
			if settings, err := settingsService.Get(); err == nil {
				return settings.ExportFormat, nil
			}
		}
		return domain.DefaultExportFormat, nil
	}

	format := domain.ExportFormat(name)
	if !format.IsValid() {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, name)
	}
	return format, nil
}

// writeExport creates path and removes it again if the export fails.
func writeExport(cmd *cobra.Command, format domain.ExportFormat, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	return exportService.Export(cmd.Context(), format, f)
}
