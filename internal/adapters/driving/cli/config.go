package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/docverify/internal/core/domain"
)

// Keys understood by config get and set.
const (
	keyAPIBaseURL   = "api.base_url"
	keyAPITimeout   = "api.timeout_seconds"
	keyAPIRateLimit = "api.rate_limit"
	keyPollAttempts = "poll.max_attempts"
	keyPollDelay    = "poll.delay_ms"
	keyExportFormat = "export.format"
	keyLogLevel     = "log.level"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application settings",
	Long: `View and change the API connection, polling and export settings.

Settings are stored in a TOML file; 'docverify config path' prints its location.`,
	RunE: runConfigList,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file location",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure the API and export settings step by step.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigWizard,
}

func init() {
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configWizardCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()
	for _, key := range settingsService.Keys() {
		cmd.Printf("  %-20s %s\n", key, settingValue(settings, key))
	}
	cmd.Println()
	cmd.Printf("Poll budget: %s\n", settings.Poll.Budget())
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	value := settingValue(settings, args[0])
	if value == "" {
		return fmt.Errorf("%w: unknown key %q", domain.ErrInvalidInput, args[0])
	}
	cmd.Println(value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("Set %s\n", args[0])
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	cmd.Println(settingsService.ConfigPath())
	return nil
}

func runConfigWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("docverify Settings Wizard")
	cmd.Println("=========================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: API
	cmd.Println("Step 1: Extraction API")
	cmd.Println("----------------------")
	cmd.Printf("Enter base URL [%s]: ", settings.API.BaseURL)
	if url := readLine(reader); url != "" {
		if err := settingsService.Set(keyAPIBaseURL, url); err != nil {
			return fmt.Errorf("failed to set base URL: %w", err)
		}
	}
	cmd.Println()

	// Step 2: Export format
	cmd.Println("Step 2: Default Export Format")
	cmd.Println("-----------------------------")
	formats := domain.AllExportFormats()
	current := 1
	for i, f := range formats {
		cmd.Printf("  %d. %s\n", i+1, f.Description())
		if f == settings.ExportFormat {
			current = i + 1
		}
	}
	cmd.Printf("\nEnter choice [%d]: ", current)
	choice := parseChoice(readLine(reader), len(formats), current)
	selected := formats[choice-1]
	if err := settingsService.Set(keyExportFormat, selected.String()); err != nil {
		return fmt.Errorf("failed to set export format: %w", err)
	}
	cmd.Printf("Set export format to: %s\n\n", selected.Description())

	cmd.Println("Configuration Complete!")
	cmd.Printf("Saved to %s\n", settingsService.ConfigPath())
	return nil
}

// settingValue renders the value of key, or "" for unknown keys.
func settingValue(s *domain.AppSettings, key string) string {
	switch key {
	case keyAPIBaseURL:
		return s.API.BaseURL
	case keyAPITimeout:
		return strconv.Itoa(int(s.API.Timeout.Seconds()))
	case keyAPIRateLimit:
		return strconv.FormatFloat(s.API.RateLimit, 'f', -1, 64)
	case keyPollAttempts:
		return strconv.Itoa(s.Poll.MaxAttempts)
	case keyPollDelay:
		return strconv.FormatInt(s.Poll.Delay.Milliseconds(), 10)
	case keyExportFormat:
		return s.ExportFormat.String()
	case keyLogLevel:
		return s.LogLevel
	default:
		return ""
	}
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo from a terminal, otherwise a line from reader.
func readPassword(cmd *cobra.Command, reader *bufio.Reader) string {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return string(password)
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
