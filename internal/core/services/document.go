package services

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docverify/internal/core/domain"
	"github.com/custodia-labs/docverify/internal/core/ports/driven"
	"github.com/custodia-labs/docverify/internal/core/ports/driving"
	"github.com/custodia-labs/docverify/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService runs the submit, poll and verify workflow and keeps
// the session's document id and verified record.
type DocumentService struct {
	submitter *Submitter
	poller    *Poller
	updater   *Updater
	session   sessionState
	history   driven.HistoryStore
}

// NewDocumentService creates a new document service.
// history may be nil, in which case no history is kept.
func NewDocumentService(
	submitter *Submitter,
	poller *Poller,
	updater *Updater,
	session driven.SessionStore,
	history driven.HistoryStore,
) *DocumentService {
	return &DocumentService{
		submitter: submitter,
		poller:    poller,
		updater:   updater,
		session:   sessionState{store: session},
		history:   history,
	}
}

// UploadFile reads a local file and submits it.
func (s *DocumentService) UploadFile(ctx context.Context, path string) (*domain.SubmitResult, error) {
	f, err := os.Open(path)
	if err != nil {
		failure := domain.NewFailure(domain.OpSubmit, domain.FailureOther, err)
		s.record(ctx, "", filepath.Base(path), domain.EventFailed, failure.Kind.String())
		return nil, failure
	}
	defer f.Close()
	return s.Upload(ctx, filepath.Base(path), f)
}

// Upload submits content and remembers the returned document id.
func (s *DocumentService) Upload(ctx context.Context, fileName string, content io.Reader) (*domain.SubmitResult, error) {
	result, err := s.submitter.Submit(ctx, fileName, content)
	if err != nil {
		s.record(ctx, "", fileName, domain.EventFailed, domain.KindOf(err).String())
		return nil, err
	}

	if err := s.session.setDocumentID(ctx, result.DocumentID); err != nil {
		return nil, err
	}
	s.record(ctx, result.DocumentID, fileName, domain.EventSubmitted, "")
	return result, nil
}

// Await polls until the document is complete.
// An empty documentID uses the last submitted document.
func (s *DocumentService) Await(ctx context.Context, documentID string) (*domain.DocumentJob, error) {
	if documentID == "" {
		id, err := s.session.documentID(ctx)
		if err != nil {
			return nil, err
		}
		documentID = id
	}

	job, err := s.poller.Poll(ctx, documentID)
	if err != nil {
		s.record(ctx, documentID, "", domain.EventFailed, domain.KindOf(err).String())
		return nil, err
	}

	s.record(ctx, documentID, job.DisplayFileName(), domain.EventCompleted, job.DocumentType)
	return job, nil
}

// Save submits verified values and remembers the returned record.
// An empty documentID uses the last submitted document.
func (s *DocumentService) Save(
	ctx context.Context, documentID string, data domain.ExtractedData,
) (*domain.VerifiedRecord, error) {
	if documentID == "" {
		id, err := s.session.documentID(ctx)
		if err != nil {
			return nil, err
		}
		documentID = id
	}

	record, err := s.updater.Update(ctx, documentID, data)
	if err != nil {
		s.record(ctx, documentID, "", domain.EventFailed, domain.KindOf(err).String())
		return nil, err
	}

	if err := s.session.setVerifiedRecord(ctx, record); err != nil {
		return nil, err
	}
	s.record(ctx, documentID, "", domain.EventVerified, "")
	return record, nil
}

// CurrentDocumentID returns the last submitted document id.
func (s *DocumentService) CurrentDocumentID(ctx context.Context) (string, error) {
	return s.session.documentID(ctx)
}

// VerifiedRecord returns the last saved record.
func (s *DocumentService) VerifiedRecord(ctx context.Context) (*domain.VerifiedRecord, error) {
	return s.session.verifiedRecord(ctx)
}

// record appends a history entry. History is best effort.
func (s *DocumentService) record(ctx context.Context, documentID, fileName string, event domain.HistoryEvent, detail string) {
	appendHistory(ctx, s.history, domain.HistoryEntry{
		DocumentID: documentID,
		FileName:   fileName,
		Event:      event,
		Detail:     detail,
	})
}

// appendHistory assigns an id and timestamp and appends entry to store.
func appendHistory(ctx context.Context, store driven.HistoryStore, entry domain.HistoryEntry) {
	if store == nil {
		return
	}
	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now()
	if ctx.Err() != nil {
		ctx = context.WithoutCancel(ctx)
	}
	if err := store.Append(ctx, entry); err != nil {
		logger.Warn("record history for %s: %v", entry.DocumentID, err)
	}
}
