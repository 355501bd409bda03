package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docverify/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for docverify.

The TUI walks through sign in, upload, field verification and export.

Controls:
  ↑/k, ↓/j   - Navigate
  Enter      - Select / Submit
  Tab        - Next field
  Ctrl+S     - Save verified data
  Esc        - Back to menu
  ?          - Help
  Ctrl+C     - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	return launchTUI(cmd, "")
}

// launchTUI starts the TUI, opening the verify view when documentID is set.
func launchTUI(cmd *cobra.Command, documentID string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = errors.New("TUI crashed")
		}
	}()

	ports := &tui.Ports{
		Auth:      authService,
		Documents: documentService,
		Export:    exportService,
		Settings:  settingsService,
		History:   historyService,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())
	if documentID != "" {
		app.WithDocument(documentID)
	}

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
