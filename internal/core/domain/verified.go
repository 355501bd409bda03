package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// updatedDocumentKey is the envelope some deployments wrap the saved document in.
const updatedDocumentKey = "updated_document"

// extractedDataKey is the JSON key of the extracted field mapping.
const extractedDataKey = "extracted_data"

// VerifiedRecord is the server's response to a saved correction.
// Fields other than extracted_data are kept verbatim so exports can
// reproduce them.
type VerifiedRecord struct {
	// ExtractedData is the verified field mapping.
	ExtractedData ExtractedData

	// Passthrough holds every other top-level field as raw JSON.
	Passthrough map[string]json.RawMessage
}

// DocumentID returns the document_id passthrough field, if present.
func (r *VerifiedRecord) DocumentID() string {
	raw, ok := r.Passthrough["document_id"]
	if !ok {
		return ""
	}
	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		return ""
	}
	return id
}

// UnmarshalJSON decodes a record, unwrapping an updated_document envelope.
func (r *VerifiedRecord) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return fmt.Errorf("%w: verified record is null", ErrMalformedResponse)
	}

	if inner, ok := fields[updatedDocumentKey]; ok && isObject(inner) {
		if _, hasData := fields[extractedDataKey]; !hasData {
			return r.UnmarshalJSON(inner)
		}
	}

	var extracted ExtractedData
	if raw, ok := fields[extractedDataKey]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &extracted); err != nil {
			return fmt.Errorf("%w: extracted_data: %v", ErrMalformedResponse, err)
		}
	}
	delete(fields, extractedDataKey)

	r.ExtractedData = extracted
	r.Passthrough = fields
	return nil
}

// MarshalJSON writes the passthrough fields with extracted_data merged back in.
func (r VerifiedRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Passthrough)+1)
	for k, v := range r.Passthrough {
		out[k] = v
	}
	if r.ExtractedData != nil {
		out[extractedDataKey] = r.ExtractedData
	}
	return json.Marshal(out)
}

// MarshalIndent renders the record pretty-printed with two-space indentation.
func (r VerifiedRecord) MarshalIndent() ([]byte, error) {
	compact, err := r.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
