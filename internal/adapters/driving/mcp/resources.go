package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docverify/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for docverify resources.
	uriScheme = "docverify://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "session",
		Name:        "session",
		Description: "Sign-in state and the current document of this session",
		MIMEType:    "application/json",
	}, s.handleSessionResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "verified",
		Name:        "verified-record",
		Description: "The last verified record saved in this session",
		MIMEType:    "application/json",
	}, s.handleVerifiedResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "history/{documentId}",
		Name:        "document-history",
		Description: "Workflow events recorded for a document",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)
}

// sessionInfo is the body of the session resource.
type sessionInfo struct {
	SignedIn   bool   `json:"signed_in"`
	Username   string `json:"username,omitempty"`
	DocumentID string `json:"document_id,omitempty"`
	Verified   bool   `json:"verified"`
}

func (s *Server) handleSessionResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	var info sessionInfo

	if s.ports.Auth != nil {
		if creds := s.ports.Auth.Credentials(); creds.IsAuthenticated() {
			info.SignedIn = true
			info.Username = creds.Username
		}
	}

	id, err := s.ports.Documents.CurrentDocumentID(ctx)
	switch {
	case errors.Is(err, domain.ErrNoDocument):
	case err != nil:
		return nil, fmt.Errorf("reading session: %w", err)
	default:
		info.DocumentID = id
	}

	_, err = s.ports.Documents.VerifiedRecord(ctx)
	switch {
	case errors.Is(err, domain.ErrNoVerifiedData):
	case err != nil:
		return nil, fmt.Errorf("reading session: %w", err)
	default:
		info.Verified = true
	}

	return jsonResource(req.Params.URI, info)
}

func (s *Server) handleVerifiedResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	record, err := s.ports.Documents.VerifiedRecord(ctx)
	if errors.Is(err, domain.ErrNoVerifiedData) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("reading verified record: %w", err)
	}

	data, err := record.MarshalIndent()
	if err != nil {
		return nil, fmt.Errorf("marshalling verified record: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	docID := extractDocumentID(req.Params.URI)
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	entries, err := s.ports.History.Document(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}

	type entryInfo struct {
		Event    string `json:"event"`
		FileName string `json:"file_name,omitempty"`
		Detail   string `json:"detail,omitempty"`
		Time     string `json:"time"`
	}

	infos := make([]entryInfo, len(entries))
	for i := range entries {
		infos[i] = entryInfo{
			Event:    entries[i].Event.String(),
			FileName: entries[i].FileName,
			Detail:   entries[i].Detail,
			Time:     entries[i].CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		}
	}

	return jsonResource(req.Params.URI, infos)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractDocumentID extracts the document ID from a URI like docverify://history/{documentId}.
func extractDocumentID(uri string) string {
	const prefix = uriScheme + "history/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
