package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docverify/internal/core/domain"
)

func TestValidator_ValidateDocument(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	tests := []struct {
		name  string
		body  string
		valid bool
	}{
		{"processing", `{"document_id":"abc","status":"processing"}`, true},
		{"complete", `{"document_id":"abc","status":"complete","document_key":"input/a.pdf","extracted_data":{"a":{"value":"x","confidence":"99"}}}`, true},
		{"numeric confidence", `{"document_id":"abc","status":"complete","extracted_data":{"a":{"value":"x","confidence":87.5}}}`, true},
		{"extra fields", `{"document_id":"abc","status":"complete","reviewer":"kim"}`, true},
		{"missing status", `{"document_id":"abc"}`, false},
		{"numeric id", `{"document_id":7,"status":"complete"}`, false},
		{"field not object", `{"document_id":"abc","status":"complete","extracted_data":{"a":"x"}}`, false},
		{"array body", `[]`, false},
		{"not json", `<html>`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateDocument([]byte(tt.body))
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, domain.ErrMalformedResponse)
		})
	}
}
