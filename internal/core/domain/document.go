package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/maruel/natural"
)

// DocumentStatus is the server-defined processing state of a job.
// Only StatusComplete is distinguished by the client.
type DocumentStatus string

// Known statuses. Intermediate names are owned by the server.
const (
	StatusSubmitted  DocumentStatus = "submitted"
	StatusProcessing DocumentStatus = "processing"
	StatusComplete   DocumentStatus = "complete"
)

// IsComplete returns true once extraction has finished.
func (s DocumentStatus) IsComplete() bool {
	return s == StatusComplete
}

// String returns the string representation.
func (s DocumentStatus) String() string {
	return string(s)
}

// inputPrefix is the storage prefix uploaded documents are written under.
const inputPrefix = "input/"

// DocumentJob is the server's view of a submitted document.
// It is created by submission and only ever mutated by the server.
type DocumentJob struct {
	// DocumentID is the server-issued identifier.
	DocumentID string `json:"document_id"`

	// Status is the processing state.
	Status DocumentStatus `json:"status"`

	// DocumentKey is the storage path, e.g. "input/scan.pdf".
	DocumentKey string `json:"document_key,omitempty"`

	// DocumentType is the detected form type, e.g. "DD214".
	DocumentType string `json:"document_type,omitempty"`

	// SignedURL is a time-limited download URL for the original file.
	SignedURL string `json:"signed_url,omitempty"`

	// Base64EncodedFile is the rendered preview payload.
	Base64EncodedFile string `json:"base64_encoded_file,omitempty"`

	// ExtractedData holds the extracted fields. Nil until extraction completes.
	ExtractedData ExtractedData `json:"extracted_data,omitempty"`
}

// DisplayFileName returns the document key without its storage prefix.
// A missing key renders as a single space so layouts keep their height.
func (j *DocumentJob) DisplayFileName() string {
	return DisplayFileName(j.DocumentKey)
}

// DisplayFileName strips the first "input/" from a document key.
func DisplayFileName(documentKey string) string {
	if documentKey == "" {
		return " "
	}
	return strings.Replace(documentKey, inputPrefix, "", 1)
}

// FieldData is a single extracted field.
// Value is user-editable, Confidence is not.
type FieldData struct {
	Value      *string `json:"value,omitempty"`
	Confidence *string `json:"confidence,omitempty"`
}

// NewFieldData returns a FieldData holding value.
func NewFieldData(value string) FieldData {
	return FieldData{Value: &value}
}

// ValueOrEmpty returns the value, or "" when absent.
func (f FieldData) ValueOrEmpty() string {
	if f.Value == nil {
		return ""
	}
	return *f.Value
}

// ConfidenceOrEmpty returns the confidence, or "" when absent.
func (f FieldData) ConfidenceOrEmpty() string {
	if f.Confidence == nil {
		return ""
	}
	return *f.Confidence
}

// WithValue returns a copy of f with its value replaced.
func (f FieldData) WithValue(value string) FieldData {
	f.Value = &value
	return f
}

// IsMultiline reports whether the value should be edited as a text area.
func (f FieldData) IsMultiline() bool {
	return f.Value != nil && strings.Contains(*f.Value, "\n")
}

// UnmarshalJSON accepts strings, numbers and null for both value and confidence.
// Extraction backends are not consistent about confidence being quoted.
func (f *FieldData) UnmarshalJSON(data []byte) error {
	var raw struct {
		Value      json.RawMessage `json:"value"`
		Confidence json.RawMessage `json:"confidence"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	value, err := scalarString(raw.Value)
	if err != nil {
		return fmt.Errorf("value: %w", err)
	}
	confidence, err := scalarString(raw.Confidence)
	if err != nil {
		return fmt.Errorf("confidence: %w", err)
	}

	f.Value = value
	f.Confidence = confidence
	return nil
}

// scalarString decodes a JSON string, number or bool into a string pointer.
func scalarString(raw json.RawMessage) (*string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return &s, nil
	case '{', '[':
		return nil, fmt.Errorf("%w: expected scalar, got %s", ErrMalformedResponse, raw)
	default:
		s := string(raw)
		return &s, nil
	}
}

// ExtractedData maps field names to extracted values.
// Key order carries no meaning; display and export use SortedKeys.
type ExtractedData map[string]FieldData

// SortedKeys returns the field names in case-insensitive natural order
// ("a" < "B", "field2" < "field10"). Keys differing only in case put the
// lowercase form first.
func (d ExtractedData) SortedKeys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keyLess(keys[i], keys[j])
	})
	return keys
}

func keyLess(a, b string) bool {
	fa, fb := strings.ToLower(a), strings.ToLower(b)
	if fa != fb {
		return natural.Less(fa, fb)
	}
	return natural.Less(b, a)
}

// Clone returns a deep copy.
func (d ExtractedData) Clone() ExtractedData {
	if d == nil {
		return nil
	}
	out := make(ExtractedData, len(d))
	for k, v := range d {
		c := FieldData{}
		if v.Value != nil {
			val := *v.Value
			c.Value = &val
		}
		if v.Confidence != nil {
			conf := *v.Confidence
			c.Confidence = &conf
		}
		out[k] = c
	}
	return out
}

// SetValue replaces the value of an existing field, keeping its confidence.
// Unknown keys are added with no confidence.
func (d ExtractedData) SetValue(key, value string) {
	d[key] = d[key].WithValue(value)
}

// SubmitResult is the server's acknowledgement of a new document.
type SubmitResult struct {
	Message    string `json:"message"`
	DocumentID string `json:"documentId"`
}

// Fields returns the extracted data of a completed job.
// Returns ErrNoExtractedData when the server sent none.
func (j *DocumentJob) Fields() (ExtractedData, error) {
	if j.ExtractedData == nil {
		return nil, ErrNoExtractedData
	}
	return j.ExtractedData, nil
}
