package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedFormat indicates an unknown export format.
	ErrUnsupportedFormat = errors.New("unsupported export format")

	// Failure kinds. A *Failure matches exactly one of these with errors.Is.

	// ErrUnauthenticated indicates the server rejected the credential (401/403).
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrOther indicates any other failure of a single-attempt operation.
	ErrOther = errors.New("request failed")

	// ErrTimeout indicates the poll budget was exhausted before completion.
	ErrTimeout = errors.New("extraction timed out")

	// ErrCancelled indicates the caller abandoned the operation.
	ErrCancelled = errors.New("cancelled")

	// Session errors.

	// ErrNotSignedIn indicates no credential is held.
	ErrNotSignedIn = errors.New("not signed in")

	// ErrInvalidLogin indicates the token endpoint rejected the username or password.
	ErrInvalidLogin = errors.New("The email or password you've entered is wrong.") //nolint:staticcheck // user-facing text

	// ErrTooManySignIns indicates the token endpoint is throttling sign-in attempts (429).
	ErrTooManySignIns = errors.New("Too many sign-in attempts, please wait and try again.") //nolint:staticcheck // user-facing text

	// ErrNoDocument indicates no document has been submitted in this session.
	ErrNoDocument = errors.New("no document submitted")

	// ErrNoVerifiedData indicates no verified record has been saved in this session.
	ErrNoVerifiedData = errors.New("no verified data available")

	// Response errors.

	// ErrNoExtractedData indicates a completed job carried no extracted_data.
	ErrNoExtractedData = errors.New("completed document has no extracted data")

	// ErrMalformedResponse indicates a response body did not match the expected shape.
	ErrMalformedResponse = errors.New("malformed response")
)

// FieldError reports one invalid form field. It matches ErrInvalidInput.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// Is matches ErrInvalidInput.
func (e *FieldError) Is(target error) bool {
	return target == ErrInvalidInput
}
