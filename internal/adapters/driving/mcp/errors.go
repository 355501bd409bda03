// Package mcp provides an MCP (Model Context Protocol) server adapter for docverify.
// It lets AI assistants submit documents, read the extracted fields and save corrections.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/docverify/internal/core/domain"
	"github.com/custodia-labs/docverify/internal/logger"
)

// Port errors.
var (
	ErrMissingDocumentService = errors.New("mcp: document service is required")
	ErrMissingExportService   = errors.New("mcp: export service is required")
)

// toolError turns a service error into the message returned to the client.
// A rejected credential also clears the session.
func (s *Server) toolError(ctx context.Context, err error) error {
	if errors.Is(err, domain.ErrUnauthenticated) && s.ports.Auth != nil {
		if serr := s.ports.Auth.SignOut(context.WithoutCancel(ctx)); serr != nil {
			logger.Warn("Failed to clear session: %v", serr)
		}
	}
	return fmt.Errorf("%s: %w", domain.UserMessage(err), err)
}
