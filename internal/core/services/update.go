package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/custodia-labs/docverify/internal/core/domain"
	"github.com/custodia-labs/docverify/internal/core/ports/driven"
)

// Updater submits user-verified field values.
type Updater struct {
	gw driven.Gateway
}

// NewUpdater creates an updater that sends through gw.
func NewUpdater(gw driven.Gateway) *Updater {
	return &Updater{gw: gw}
}

// Update issues exactly one PUT whose body is the bare data mapping.
// Failures are FailureUnauthenticated for 401/403 and FailureOther otherwise.
func (u *Updater) Update(ctx context.Context, documentID string, data domain.ExtractedData) (*domain.VerifiedRecord, error) {
	if documentID == "" {
		return nil, fmt.Errorf("%w: empty document id", domain.ErrInvalidInput)
	}
	if data == nil {
		data = domain.ExtractedData{}
	}

	body, err := json.Marshal(data)
	if err != nil {
		return nil, domain.NewFailure(domain.OpUpdate, domain.FailureOther, err)
	}

	resp, err := u.gw.Send(ctx, driven.Request{
		Method: http.MethodPut,
		Path:   documentPath + "/" + url.PathEscape(documentID),
		Body:   body,
	})
	if o := classify(resp, err); o != outcomeSuccess {
		return nil, failure(domain.OpUpdate, o, domain.FailureOther, resp, err)
	}
	defer closeBody(resp)

	var record domain.VerifiedRecord
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, domain.NewFailure(domain.OpUpdate, domain.FailureOther,
			fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err))
	}
	return &record, nil
}
