package cli

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/custodia-labs/docverify/internal/core/domain"
	"github.com/custodia-labs/docverify/internal/core/ports/driving"
)

// fakeAuth is an in-memory driving.AuthService.
type fakeAuth struct {
	creds     *domain.Credentials
	signInErr error
	signOuts  int
	password  string
}

func (f *fakeAuth) SignIn(_ context.Context, username, password string) error {
	if f.signInErr != nil {
		return f.signInErr
	}
	f.password = password
	f.creds = &domain.Credentials{AccessToken: "token-1234567890", Username: username}
	return nil
}

func (f *fakeAuth) SignOut(context.Context) error {
	f.creds = nil
	f.signOuts++
	return nil
}

func (f *fakeAuth) Credentials() *domain.Credentials { return f.creds }

// fakeDocuments is an in-memory driving.DocumentService.
type fakeDocuments struct {
	job       *domain.DocumentJob
	currentID string
	record    *domain.VerifiedRecord
	awaitErr  error
	uploadErr error
	saveErr   error

	saved domain.ExtractedData
}

func (f *fakeDocuments) UploadFile(_ context.Context, _ string) (*domain.SubmitResult, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	f.currentID = "doc-1"
	return &domain.SubmitResult{DocumentID: "doc-1", Message: "File uploaded"}, nil
}

func (f *fakeDocuments) Upload(ctx context.Context, name string, _ io.Reader) (*domain.SubmitResult, error) {
	return f.UploadFile(ctx, name)
}

func (f *fakeDocuments) Await(context.Context, string) (*domain.DocumentJob, error) {
	if f.awaitErr != nil {
		return nil, f.awaitErr
	}
	return f.job, nil
}

func (f *fakeDocuments) Save(_ context.Context, _ string, data domain.ExtractedData) (*domain.VerifiedRecord, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.saved = data
	f.record = &domain.VerifiedRecord{ExtractedData: data}
	return f.record, nil
}

func (f *fakeDocuments) CurrentDocumentID(context.Context) (string, error) {
	if f.currentID == "" {
		return "", domain.ErrNoDocument
	}
	return f.currentID, nil
}

func (f *fakeDocuments) VerifiedRecord(context.Context) (*domain.VerifiedRecord, error) {
	if f.record == nil {
		return nil, domain.ErrNoVerifiedData
	}
	return f.record, nil
}

// fakeExport writes the format name.
type fakeExport struct {
	err error
}

func (f *fakeExport) Export(_ context.Context, format domain.ExportFormat, w io.Writer) error {
	if f.err != nil {
		return f.err
	}
	_, err := io.WriteString(w, "exported "+format.String()+"\n")
	return err
}

func (f *fakeExport) ExportRecord(_ *domain.VerifiedRecord, format domain.ExportFormat, w io.Writer) error {
	return f.Export(context.Background(), format, w)
}

func (f *fakeExport) Formats() []domain.ExportFormat { return domain.AllExportFormats() }

// fakeSettings keeps values in a map.
type fakeSettings struct {
	values map[string]string
}

func (f *fakeSettings) Get() (*domain.AppSettings, error) {
	s := domain.DefaultAppSettings()
	if v, ok := f.values[keyAPIBaseURL]; ok {
		s.API.BaseURL = v
	}
	if v, ok := f.values[keyExportFormat]; ok {
		s.ExportFormat = domain.ExportFormat(v)
	}
	return &s, nil
}

func (f *fakeSettings) Save(*domain.AppSettings) error { return nil }

func (f *fakeSettings) Set(key, value string) error {
	if !strings.Contains(key, ".") {
		return domain.ErrInvalidInput
	}
	f.values[key] = value
	return nil
}

func (f *fakeSettings) Keys() []string {
	return []string{keyAPIBaseURL, keyExportFormat}
}

func (f *fakeSettings) ConfigPath() string { return "/home/test/.docverify/config.toml" }

// fakeHistory returns fixed entries.
type fakeHistory struct {
	entries  []domain.HistoryEntry
	document string
}

func (f *fakeHistory) List(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	if limit < len(f.entries) {
		return f.entries[:limit], nil
	}
	return f.entries, nil
}

func (f *fakeHistory) Document(_ context.Context, id string) ([]domain.HistoryEntry, error) {
	f.document = id
	return f.entries, nil
}

// fakeWatch reports fixed results.
type fakeWatch struct {
	results []driving.WatchResult
	root    string
}

func (f *fakeWatch) Run(_ context.Context, root string, report func(driving.WatchResult)) error {
	f.root = root
	for _, r := range f.results {
		report(r)
		if r.Err != nil && strings.Contains(r.Err.Error(), domain.ErrUnauthenticated.Error()) {
			return r.Err
		}
	}
	return nil
}

// testServices is the set installed by setupTestServices.
type testServices struct {
	auth     *fakeAuth
	docs     *fakeDocuments
	export   *fakeExport
	settings *fakeSettings
	history  *fakeHistory
	watch    *fakeWatch
}

func sampleJob() *domain.DocumentJob {
	conf := "97"
	name := "Jane"
	return &domain.DocumentJob{
		DocumentID:   "doc-1",
		Status:       domain.StatusComplete,
		DocumentKey:  "input/scan.pdf",
		DocumentType: "DD214",
		ExtractedData: domain.ExtractedData{
			"name":   {Value: &name, Confidence: &conf},
			"branch": domain.NewFieldData("Navy"),
		},
	}
}

// setupTestServices installs signed-in fakes and returns a cleanup
// function that restores the globals and flag values.
func setupTestServices() (*testServices, func()) {
	ts := &testServices{
		auth:     &fakeAuth{creds: &domain.Credentials{AccessToken: "token-1234567890", Username: "kim"}},
		docs:     &fakeDocuments{job: sampleJob()},
		export:   &fakeExport{},
		settings: &fakeSettings{values: map[string]string{}},
		history: &fakeHistory{entries: []domain.HistoryEntry{{
			DocumentID: "doc-1",
			FileName:   "scan.pdf",
			Event:      domain.EventSubmitted,
			CreatedAt:  time.Date(2026, 3, 4, 5, 6, 7, 0, time.Local),
		}}},
		watch: &fakeWatch{},
	}

	SetServices(&Services{
		Auth:      ts.auth,
		Documents: ts.docs,
		Export:    ts.export,
		Settings:  ts.settings,
		History:   ts.history,
		Watch:     ts.watch,
	})

	return ts, func() {
		SetServices(nil)
		resetFlags()
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	}
}

func resetFlags() {
	signInUsername = ""
	signInPasswordStdin = false
	uploadWait = false
	verifyAccept = false
	verifyNoTUI = false
	exportFormat = ""
	exportOutput = ""
	historyLimit = 20
	historyDocument = ""
}
