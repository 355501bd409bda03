package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docverify/internal/core/domain"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent document activity",
	Long: `List submissions, extractions, verifications and exports recorded on
this machine, newest first. Use --document to follow a single document
from submission to export.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

// Flags for history.
var (
	historyLimit    int
	historyDocument string
)

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of entries")
	historyCmd.Flags().StringVarP(&historyDocument, "document", "d", "", "show entries for one document id")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	var (
		entries []domain.HistoryEntry
		err     error
	)
	if historyDocument != "" {
		entries, err = historyService.Document(cmd.Context(), historyDocument)
	} else {
		entries, err = historyService.List(cmd.Context(), historyLimit)
	}
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(entries) == 0 {
		cmd.Println("No history yet.")
		return nil
	}

	for i := range entries {
		cmd.Println(formatEntry(&entries[i]))
	}
	return nil
}

func formatEntry(e *domain.HistoryEntry) string {
	name := e.FileName
	if name == "" {
		name = e.DocumentID
	}
	line := fmt.Sprintf("%s  %-9s  %s", e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Event, name)
	if e.Detail != "" {
		line += fmt.Sprintf(" (%s)", e.Detail)
	}
	return line
}
