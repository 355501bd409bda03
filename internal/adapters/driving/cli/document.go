package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/docverify/internal/core/domain"
	"github.com/custodia-labs/docverify/internal/logger"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Submit a document for extraction",
	Long: `Upload a PDF or image to the extraction API.

The returned document id becomes the session's current document, so
'docverify verify' picks it up without arguments. Use --wait to block
until extraction finishes.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

var verifyCmd = &cobra.Command{
	Use:   "verify [document-id]",
	Short: "Review and save extracted fields",
	Long: `Wait for extraction to finish, then review the extracted fields.

In a terminal the interactive editor opens. With --no-tui each field is
prompted for on its own line: press enter to keep the value, or type a
replacement. Multi-line values are shown and typed with \n between lines;
every \n typed at a prompt becomes a line break, so a literal backslash
followed by n cannot be entered this way (use the interactive editor).
--accept saves the extracted values unchanged.

Without a document id the session's current document is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVerify,
}

// Flags for upload and verify.
var (
	uploadWait   bool
	verifyAccept bool
	verifyNoTUI  bool
)

func init() {
	uploadCmd.Flags().BoolVarP(&uploadWait, "wait", "w", false, "wait for extraction and print the fields")
	verifyCmd.Flags().BoolVar(&verifyAccept, "accept", false, "save the extracted values without editing")
	verifyCmd.Flags().BoolVar(&verifyNoTUI, "no-tui", false, "prompt for each field on stdin (\\n in answers is a line break)")

	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(verifyCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	if err := requireSignedIn(); err != nil {
		return err
	}

	path := args[0]
	logger.Section("Upload")

	result, err := documentService.UploadFile(cmd.Context(), path)
	if err != nil {
		return checkSignedOut(cmd, err)
	}
	cmd.Printf("Uploaded %s\n", filepath.Base(path))
	cmd.Printf("Document ID: %s\n", result.DocumentID)

	if !uploadWait {
		return nil
	}

	job, err := await(cmd, result.DocumentID)
	if err != nil {
		return err
	}
	printFields(cmd, job)
	return nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	if err := requireSignedIn(); err != nil {
		return err
	}

	var id string
	if len(args) == 1 {
		id = args[0]
	} else {
		current, err := documentService.CurrentDocumentID(cmd.Context())
		if err != nil {
			return err
		}
		id = current
	}

	interactive := !verifyAccept && !verifyNoTUI && isTerminal(cmd)
	if interactive {
		return launchTUI(cmd, id)
	}

	job, err := await(cmd, id)
	if err != nil {
		return err
	}
	data, err := job.Fields()
	if err != nil {
		return err
	}

	if !verifyAccept {
		data = promptFields(cmd, data)
	}

	logger.Section("Save")
	if _, err := documentService.Save(cmd.Context(), id, data); err != nil {
		return checkSignedOut(cmd, err)
	}
	cmd.Printf("Verified data saved for %s\n", id)
	return nil
}

// await polls for id, reporting progress while it waits.
func await(cmd *cobra.Command, id string) (*domain.DocumentJob, error) {
	logger.Section("Extract")
	cmd.Printf("Waiting for extraction of %s...\n", id)

	job, err := documentService.Await(cmd.Context(), id)
	if err != nil {
		return nil, checkSignedOut(cmd, err)
	}
	return job, nil
}

func printFields(cmd *cobra.Command, job *domain.DocumentJob) {
	cmd.Printf("File: %s\n", job.DisplayFileName())
	if job.DocumentType != "" {
		cmd.Printf("Type: %s\n", job.DocumentType)
	}

	data, err := job.Fields()
	if err != nil {
		cmd.Println("No extracted data.")
		return
	}

	cmd.Println()
	for _, key := range data.SortedKeys() {
		field := data[key]
		line := fmt.Sprintf("  %s: %s", key, strings.ReplaceAll(field.ValueOrEmpty(), "\n", " / "))
		if c := field.ConfidenceOrEmpty(); c != "" {
			line += fmt.Sprintf(" (%s)", c)
		}
		cmd.Println(line)
	}
}

// promptFields asks for each field in display order.
// An empty answer keeps the current value.
func promptFields(cmd *cobra.Command, data domain.ExtractedData) domain.ExtractedData {
	edited := data.Clone()
	reader := bufio.NewReader(cmd.InOrStdin())

	for _, key := range edited.SortedKeys() {
		field := edited[key]
		prompt := fmt.Sprintf("%s [%s]", key, strings.ReplaceAll(field.ValueOrEmpty(), "\n", `\n`))
		if c := field.ConfidenceOrEmpty(); c != "" {
			prompt += fmt.Sprintf(" (%s)", c)
		}
		cmd.Print(prompt + ": ")

		answer := readLine(reader)
		if answer == "" {
			continue
		}
		edited.SetValue(key, strings.ReplaceAll(answer, `\n`, "\n"))
	}
	return edited
}

// isTerminal reports whether the command reads from an interactive terminal.
func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
