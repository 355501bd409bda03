// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/docverify/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSignIn is the username and password form.
	ViewSignIn
	// ViewUpload asks for a file to submit.
	ViewUpload
	// ViewVerify polls for extraction and edits the result.
	ViewVerify
	// ViewExport writes the verified record to a file.
	ViewExport
	// ViewHistory lists recorded workflow events.
	ViewHistory
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSignIn:
		return "sign_in"
	case ViewUpload:
		return "upload"
	case ViewVerify:
		return "verify"
	case ViewExport:
		return "export"
	case ViewHistory:
		return "history"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// SignedIn carries the outcome of a sign-in attempt.
type SignedIn struct {
	Err error
}

// SignedOut signals the credential and session were cleared.
// Expired is true when the server rejected the credential.
type SignedOut struct {
	Expired bool
}

// Uploaded carries the outcome of a document submission.
type Uploaded struct {
	FileName string
	Result   *domain.SubmitResult
	Err      error
}

// DocumentReady carries the outcome of polling a document.
// Seq identifies the poll that produced it so stale results can be dropped.
type DocumentReady struct {
	Seq        int
	DocumentID string
	Job        *domain.DocumentJob
	Err        error
}

// Saved carries the outcome of saving verified data.
type Saved struct {
	Record *domain.VerifiedRecord
	Err    error
}

// Exported carries the outcome of writing an export file.
type Exported struct {
	Path   string
	Format domain.ExportFormat
	Err    error
}

// HistoryLoaded carries recorded workflow events.
type HistoryLoaded struct {
	Entries []domain.HistoryEntry
	Err     error
}

// SignOutRequested asks the app to clear the credential.
type SignOutRequested struct{}
