package mcp

import (
	"context"
	"io"

	"github.com/custodia-labs/docverify/internal/core/domain"
)

// mockAuthService is a mock implementation of driving.AuthService.
type mockAuthService struct {
	creds    *domain.Credentials
	signOuts int
}

func (m *mockAuthService) SignIn(_ context.Context, _, _ string) error { return nil }

func (m *mockAuthService) SignOut(_ context.Context) error {
	m.creds = nil
	m.signOuts++
	return nil
}

func (m *mockAuthService) Credentials() *domain.Credentials { return m.creds }

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	submit    *domain.SubmitResult
	job       *domain.DocumentJob
	record    *domain.VerifiedRecord
	currentID string
	err       error

	uploaded string
	awaited  string
	saved    domain.ExtractedData
}

func (m *mockDocumentService) UploadFile(_ context.Context, path string) (*domain.SubmitResult, error) {
	m.uploaded = path
	return m.submit, m.err
}

func (m *mockDocumentService) Upload(_ context.Context, _ string, _ io.Reader) (*domain.SubmitResult, error) {
	return m.submit, m.err
}

func (m *mockDocumentService) Await(_ context.Context, id string) (*domain.DocumentJob, error) {
	m.awaited = id
	return m.job, m.err
}

func (m *mockDocumentService) Save(
	_ context.Context, _ string, data domain.ExtractedData,
) (*domain.VerifiedRecord, error) {
	m.saved = data
	if m.err != nil {
		return nil, m.err
	}
	return &domain.VerifiedRecord{ExtractedData: data}, nil
}

func (m *mockDocumentService) CurrentDocumentID(_ context.Context) (string, error) {
	if m.currentID == "" {
		return "", domain.ErrNoDocument
	}
	return m.currentID, nil
}

func (m *mockDocumentService) VerifiedRecord(_ context.Context) (*domain.VerifiedRecord, error) {
	if m.record == nil {
		return nil, domain.ErrNoVerifiedData
	}
	return m.record, nil
}

// mockExportService is a mock implementation of driving.ExportService.
type mockExportService struct {
	content string
	err     error
	format  domain.ExportFormat
}

func (m *mockExportService) Export(_ context.Context, format domain.ExportFormat, w io.Writer) error {
	m.format = format
	if m.err != nil {
		return m.err
	}
	_, err := io.WriteString(w, m.content)
	return err
}

func (m *mockExportService) ExportRecord(_ *domain.VerifiedRecord, _ domain.ExportFormat, _ io.Writer) error {
	return m.err
}

func (m *mockExportService) Formats() []domain.ExportFormat {
	return domain.AllExportFormats()
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	entries []domain.HistoryEntry
	err     error
}

func (m *mockHistoryService) List(_ context.Context, _ int) ([]domain.HistoryEntry, error) {
	return m.entries, m.err
}

func (m *mockHistoryService) Document(_ context.Context, _ string) ([]domain.HistoryEntry, error) {
	return m.entries, m.err
}
