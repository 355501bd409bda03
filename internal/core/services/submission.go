package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/custodia-labs/docverify/internal/core/domain"
	"github.com/custodia-labs/docverify/internal/core/ports/driven"
	"github.com/custodia-labs/docverify/internal/logger"
)

const documentPath = "/api/document"

// submitRequest is the POST /api/document body.
type submitRequest struct {
	FileContent string `json:"file_content"`
	FileName    string `json:"file_name"`
}

// Submitter uploads documents for extraction.
type Submitter struct {
	gw driven.Gateway
}

// NewSubmitter creates a submitter that sends through gw.
func NewSubmitter(gw driven.Gateway) *Submitter {
	return &Submitter{gw: gw}
}

// Submit encodes content and issues exactly one POST.
// Failures are FailureUnauthenticated for 401/403 and FailureOther otherwise,
// including local read errors. The credential is never touched.
func (s *Submitter) Submit(ctx context.Context, fileName string, content io.Reader) (*domain.SubmitResult, error) {
	raw, err := io.ReadAll(content)
	if err != nil {
		return nil, domain.NewFailure(domain.OpSubmit, domain.FailureOther, fmt.Errorf("read %s: %w", fileName, err))
	}

	body, err := json.Marshal(submitRequest{
		FileContent: base64.StdEncoding.EncodeToString(raw),
		FileName:    fileName,
	})
	if err != nil {
		return nil, domain.NewFailure(domain.OpSubmit, domain.FailureOther, err)
	}

	logger.Debug("submitting %s (%d bytes)", fileName, len(raw))

	resp, err := s.gw.Send(ctx, driven.Request{
		Method: http.MethodPost,
		Path:   documentPath,
		Body:   body,
	})
	if o := classify(resp, err); o != outcomeSuccess {
		return nil, failure(domain.OpSubmit, o, domain.FailureOther, resp, err)
	}
	defer closeBody(resp)

	var result domain.SubmitResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, domain.NewFailure(domain.OpSubmit, domain.FailureOther,
			fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err))
	}
	if result.DocumentID == "" {
		return nil, domain.NewFailure(domain.OpSubmit, domain.FailureOther,
			fmt.Errorf("%w: missing documentId", domain.ErrMalformedResponse))
	}

	logger.Debug("submitted %s as %s", fileName, result.DocumentID)
	return &result, nil
}
