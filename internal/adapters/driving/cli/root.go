// Package cli provides the docverify command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docverify/internal/core/domain"
	"github.com/custodia-labs/docverify/internal/core/ports/driving"
	"github.com/custodia-labs/docverify/internal/logger"
)

// version is set at build time.
var version = "dev"

// Global flags.
var (
	verbose   bool
	apiURL    string
	homeDir   string
	ephemeral bool
)

// Services wired into the commands.
var (
	authService     driving.AuthService
	documentService driving.DocumentService
	exportService   driving.ExportService
	settingsService driving.SettingsService
	historyService  driving.HistoryService
	watchService    driving.WatchService
)

// Services holds the driving ports the commands use.
// History and Watch are optional.
type Services struct {
	Auth      driving.AuthService
	Documents driving.DocumentService
	Export    driving.ExportService
	Settings  driving.SettingsService
	History   driving.HistoryService
	Watch     driving.WatchService
}

// Options carries the global flags to the service factory.
type Options struct {
	// APIURL overrides the configured base URL when set.
	APIURL string

	// HomeDir overrides the data directory when set.
	HomeDir string

	// Ephemeral keeps session and history in memory only.
	Ephemeral bool
}

// Factory builds the services once flags are parsed.
// The returned function releases their resources.
type Factory func(ctx context.Context, opts Options) (*Services, func() error, error)

var (
	factory Factory
	closer  func() error
)

var rootCmd = &cobra.Command{
	Use:   "docverify",
	Short: "Submit documents for extraction and verify the results",
	Long: `docverify uploads scanned documents to an extraction API, waits for the
extracted fields, lets you correct them and exports the verified record.

Run without arguments to start the interactive terminal UI.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runTUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "extraction API base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "data directory (default ~/.docverify)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep session and history in memory only")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetFactory installs the service factory used on first command run.
func SetFactory(f Factory) {
	factory = f
}

// SetServices installs services directly, bypassing the factory.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	authService = s.Auth
	documentService = s.Documents
	exportService = s.Export
	settingsService = s.Settings
	historyService = s.History
	watchService = s.Watch
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if factory == nil || authService != nil {
		return nil
	}

	services, release, err := factory(cmd.Context(), Options{
		APIURL:    apiURL,
		HomeDir:   homeDir,
		Ephemeral: ephemeral,
	})
	if err != nil {
		return fmt.Errorf("initialise: %w", err)
	}
	SetServices(services)
	closer = release
	return nil
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context) int {
	err := rootCmd.ExecuteContext(ctx)

	if closer != nil {
		if cerr := closer(); cerr != nil {
			logger.Warn("shutdown: %v", cerr)
		}
		closer = nil
	}

	if err == nil {
		return 0
	}
	if errors.Is(err, domain.ErrCancelled) || errors.Is(err, context.Canceled) {
		printError(rootCmd.ErrOrStderr(), domain.MsgCancelled)
		return 130
	}
	logger.Debug("command failed: %v", err)
	printError(rootCmd.ErrOrStderr(), domain.UserMessage(err))
	return 1
}

func printError(w io.Writer, msg string) {
	fmt.Fprintf(w, "Error: %s\n", msg)
}

// checkSignedOut clears the session when the server rejected the credential,
// so the next command asks the user to sign in again.
func checkSignedOut(cmd *cobra.Command, err error) error {
	if err == nil || !errors.Is(err, domain.ErrUnauthenticated) || authService == nil {
		return err
	}
	if serr := authService.SignOut(context.WithoutCancel(cmd.Context())); serr != nil {
		logger.Warn("Failed to clear session: %v", serr)
	}
	return err
}

// requireSignedIn fails fast before any request is made without a credential.
func requireSignedIn() error {
	if authService == nil {
		return errors.New("auth service not configured")
	}
	if !authService.Credentials().IsAuthenticated() {
		return errors.New("not signed in, run 'docverify signin' first")
	}
	return nil
}
