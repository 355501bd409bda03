package tui

import (
	"context"
	"io"
	"sync"

	"github.com/custodia-labs/docverify/internal/core/domain"
)

type mockAuth struct {
	mu       sync.Mutex
	creds    *domain.Credentials
	signOuts int
}

func (m *mockAuth) SignIn(_ context.Context, username, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = &domain.Credentials{AccessToken: "tok", Username: username}
	return nil
}

func (m *mockAuth) SignOut(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = nil
	m.signOuts++
	return nil
}

func (m *mockAuth) Credentials() *domain.Credentials {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creds
}

type mockDocs struct {
	uploadErr error
	awaitErr  error
	job       *domain.DocumentJob
	awaited   []string
}

func (m *mockDocs) UploadFile(context.Context, string) (*domain.SubmitResult, error) {
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	return &domain.SubmitResult{DocumentID: "abc"}, nil
}

func (m *mockDocs) Upload(context.Context, string, io.Reader) (*domain.SubmitResult, error) {
	return nil, nil
}

func (m *mockDocs) Await(_ context.Context, id string) (*domain.DocumentJob, error) {
	m.awaited = append(m.awaited, id)
	if m.awaitErr != nil {
		return nil, m.awaitErr
	}
	return m.job, nil
}

func (m *mockDocs) Save(_ context.Context, _ string, data domain.ExtractedData) (*domain.VerifiedRecord, error) {
	return &domain.VerifiedRecord{ExtractedData: data}, nil
}

func (m *mockDocs) CurrentDocumentID(context.Context) (string, error) { return "abc", nil }

func (m *mockDocs) VerifiedRecord(context.Context) (*domain.VerifiedRecord, error) { return nil, nil }

type mockExport struct{}

func (mockExport) Export(context.Context, domain.ExportFormat, io.Writer) error { return nil }

func (mockExport) ExportRecord(*domain.VerifiedRecord, domain.ExportFormat, io.Writer) error {
	return nil
}

func (mockExport) Formats() []domain.ExportFormat {
	return []domain.ExportFormat{domain.ExportCSV, domain.ExportJSON}
}

type mockSettings struct{}

func (mockSettings) Get() (*domain.AppSettings, error) {
	s := domain.DefaultAppSettings()
	s.ExportFormat = domain.ExportJSON
	return &s, nil
}

func (mockSettings) Save(*domain.AppSettings) error { return nil }
func (mockSettings) Set(string, string) error       { return nil }
func (mockSettings) Keys() []string                 { return nil }
func (mockSettings) ConfigPath() string             { return "" }
