package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/docverify/internal/core/domain"
)

// DocumentService drives the submit, poll and verify workflow.
//
// Failures of remote operations are *domain.Failure values. Callers
// decide what to do about domain.ErrUnauthenticated; the service never
// clears the credential itself.
type DocumentService interface {
	// UploadFile reads a local file and submits it.
	UploadFile(ctx context.Context, path string) (*domain.SubmitResult, error)

	// Upload submits content under fileName and remembers the returned id.
	Upload(ctx context.Context, fileName string, content io.Reader) (*domain.SubmitResult, error)

	// Await polls until the document is complete, the credential is
	// rejected, the attempt budget runs out, or ctx is cancelled.
	// An empty documentID uses the last submitted document.
	Await(ctx context.Context, documentID string) (*domain.DocumentJob, error)

	// Save submits verified field values and remembers the returned record.
	Save(ctx context.Context, documentID string, data domain.ExtractedData) (*domain.VerifiedRecord, error)

	// CurrentDocumentID returns the last submitted document id.
	// Returns domain.ErrNoDocument if nothing was submitted in this session.
	CurrentDocumentID(ctx context.Context) (string, error)

	// VerifiedRecord returns the last saved record.
	// Returns domain.ErrNoVerifiedData if nothing was saved in this session.
	VerifiedRecord(ctx context.Context) (*domain.VerifiedRecord, error)
}
