package domain

import "errors"

// Operations that produce failures.
const (
	OpSubmit = "submit"
	OpPoll   = "poll"
	OpUpdate = "update"
)

// User-facing messages shown for failures.
const (
	MsgSignedOut      = "You are no longer signed in! Please sign in again."
	MsgUploadFailed   = "File failed to upload!"
	MsgExtractFailed  = "Extraction failed, please try again."
	MsgSaveFailed     = "An error occurred while saving."
	MsgCancelled      = "Cancelled."
	MsgUsernameNeeded = "Please enter your username"
	MsgPasswordNeeded = "Please enter your password"
)

// UserMessage returns the message to show for err.
// Errors that are not failures render as their own text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	for _, login := range []error{ErrInvalidLogin, ErrTooManySignIns} {
		if errors.Is(err, login) {
			return login.Error()
		}
	}

	var f *Failure
	if !errors.As(err, &f) {
		return err.Error()
	}

	switch f.Kind {
	case FailureUnauthenticated:
		return MsgSignedOut
	case FailureCancelled:
		return MsgCancelled
	}

	switch f.Op {
	case OpSubmit:
		return MsgUploadFailed
	case OpUpdate:
		return MsgSaveFailed
	default:
		return MsgExtractFailed
	}
}
