package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docverify/internal/core/domain"
)

var signInCmd = &cobra.Command{
	Use:   "signin",
	Short: "Sign in to the extraction API",
	Long: `Exchange a username and password for an access token.

The token is kept in the session store until you sign out or the server
rejects it. Without flags you are prompted for both values.`,
	Args: cobra.NoArgs,
	RunE: runSignIn,
}

var signOutCmd = &cobra.Command{
	Use:   "signout",
	Short: "Sign out and clear the session",
	Args:  cobra.NoArgs,
	RunE:  runSignOut,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sign-in and session state",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

// Flags for signin.
var (
	signInUsername      string
	signInPasswordStdin bool
)

func init() {
	signInCmd.Flags().StringVarP(&signInUsername, "username", "u", "", "account username")
	signInCmd.Flags().BoolVar(&signInPasswordStdin, "password-stdin", false, "read the password from stdin")

	rootCmd.AddCommand(signInCmd)
	rootCmd.AddCommand(signOutCmd)
	rootCmd.AddCommand(statusCmd)
}

func runSignIn(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	username := signInUsername
	if username == "" {
		cmd.Print("Username: ")
		username = readLine(reader)
	}

	var password string
	if signInPasswordStdin {
		data, err := io.ReadAll(reader)
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimRight(string(data), "\r\n")
	} else {
		cmd.Print("Password: ")
		password = readPassword(cmd, reader)
		cmd.Println()
	}

	if err := authService.SignIn(cmd.Context(), username, password); err != nil {
		return err
	}

	cmd.Printf("Signed in as %s\n", username)
	return nil
}

func runSignOut(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}
	if err := authService.SignOut(cmd.Context()); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	cmd.Println("Signed out.")
	return nil
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	cmd.Println("Session")
	cmd.Println("=======")

	creds := authService.Credentials()
	if !creds.IsAuthenticated() {
		cmd.Println("  Signed in: no")
	} else {
		cmd.Println("  Signed in: yes")
		if creds.Username != "" {
			cmd.Printf("  Username: %s\n", creds.Username)
		}
		cmd.Printf("  Token: %s\n", maskAPIKey(creds.AccessToken))
	}

	if documentService != nil {
		id, err := documentService.CurrentDocumentID(cmd.Context())
		switch {
		case errors.Is(err, domain.ErrNoDocument):
			cmd.Println("  Document: (none)")
		case err != nil:
			return fmt.Errorf("read session: %w", err)
		default:
			cmd.Printf("  Document: %s\n", id)
		}

		_, err = documentService.VerifiedRecord(cmd.Context())
		switch {
		case errors.Is(err, domain.ErrNoVerifiedData):
			cmd.Println("  Verified: no")
		case err != nil:
			return fmt.Errorf("read session: %w", err)
		default:
			cmd.Println("  Verified: yes")
		}
	}

	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			cmd.Printf("  API: %s\n", settings.API.BaseURL)
		}
	}
	return nil
}
