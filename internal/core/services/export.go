package services

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/custodia-labs/docverify/internal/core/domain"
	"github.com/custodia-labs/docverify/internal/core/ports/driven"
	"github.com/custodia-labs/docverify/internal/core/ports/driving"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// ExportService renders verified records through registered exporters.
type ExportService struct {
	exporters map[domain.ExportFormat]driven.Exporter
	session   sessionState
	history   driven.HistoryStore
}

// NewExportService creates a new export service.
// Later exporters replace earlier ones for the same format.
func NewExportService(session driven.SessionStore, history driven.HistoryStore, exporters ...driven.Exporter) *ExportService {
	s := &ExportService{
		exporters: make(map[domain.ExportFormat]driven.Exporter, len(exporters)),
		session:   sessionState{store: session},
		history:   history,
	}
	for _, e := range exporters {
		s.exporters[e.Format()] = e
	}
	return s
}

// Export writes the session's verified record to w.
func (s *ExportService) Export(ctx context.Context, format domain.ExportFormat, w io.Writer) error {
	record, err := s.session.verifiedRecord(ctx)
	if err != nil {
		return err
	}
	if err := s.ExportRecord(record, format, w); err != nil {
		return err
	}

	appendHistory(ctx, s.history, domain.HistoryEntry{
		DocumentID: record.DocumentID(),
		Event:      domain.EventExported,
		Detail:     format.String(),
	})
	return nil
}

// ExportRecord writes record to w.
func (s *ExportService) ExportRecord(record *domain.VerifiedRecord, format domain.ExportFormat, w io.Writer) error {
	exporter, ok := s.exporters[format]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, format)
	}
	if record == nil {
		return domain.ErrNoVerifiedData
	}
	if err := exporter.Export(w, record); err != nil {
		return fmt.Errorf("export %s: %w", format, err)
	}
	return nil
}

// Formats returns the registered formats in a stable order.
func (s *ExportService) Formats() []domain.ExportFormat {
	formats := make([]domain.ExportFormat, 0, len(s.exporters))
	for f := range s.exporters {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}
