package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docverify/internal/core/domain"
	"github.com/custodia-labs/docverify/internal/core/ports/driving"
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Submit documents as they appear in a directory",
	Long: `Watch a directory tree and submit every new PDF or image for extraction.

Files are processed one at a time and each result is printed when
extraction finishes. Verification stays manual: run 'docverify verify <id>'
for any document listed. Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchService == nil {
		return errors.New("watch service not configured")
	}
	if err := requireSignedIn(); err != nil {
		return err
	}

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", args[0])

	err := watchService.Run(cmd.Context(), args[0], func(r driving.WatchResult) {
		printWatchResult(cmd, r)
	})
	return checkSignedOut(cmd, err)
}

func printWatchResult(cmd *cobra.Command, r driving.WatchResult) {
	if r.Err != nil {
		cmd.Printf("  %s: %s\n", r.Path, domain.UserMessage(r.Err))
		return
	}

	fields := 0
	if r.Job != nil {
		fields = len(r.Job.ExtractedData)
	}
	cmd.Printf("  %s: %s ready (%d fields)\n", r.Path, r.DocumentID, fields)
}
