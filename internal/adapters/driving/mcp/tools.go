package mcp

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docverify/internal/core/domain"
)

// SubmitInput is the input schema for the submit_document tool.
type SubmitInput struct {
	Path string `json:"path" jsonschema:"local path of the PDF or image to upload"`
}

// SubmitOutput is the output schema for the submit_document tool.
type SubmitOutput struct {
	DocumentID string `json:"document_id"`
	Message    string `json:"message,omitempty"`
}

// AwaitInput is the input schema for the await_document tool.
type AwaitInput struct {
	DocumentID string `json:"document_id,omitempty" jsonschema:"document to wait for (default: last submitted)"`
}

// DocumentOutput describes a completed extraction.
type DocumentOutput struct {
	DocumentID   string        `json:"document_id"`
	Status       string        `json:"status"`
	FileName     string        `json:"file_name,omitempty"`
	DocumentType string        `json:"document_type,omitempty"`
	Fields       []FieldOutput `json:"fields"`
}

// FieldOutput is a single extracted field.
type FieldOutput struct {
	Name       string `json:"name"`
	Value      string `json:"value"`
	Confidence string `json:"confidence,omitempty"`
}

// UpdateInput is the input schema for the update_document tool.
type UpdateInput struct {
	DocumentID string            `json:"document_id,omitempty" jsonschema:"document to update (default: last submitted)"`
	Fields     map[string]string `json:"fields" jsonschema:"corrected values by field name; omitted fields keep their extracted value"`
}

// UpdateOutput is the output schema for the update_document tool.
type UpdateOutput struct {
	DocumentID string        `json:"document_id"`
	Fields     []FieldOutput `json:"fields"`
}

// ExportInput is the input schema for the export_document tool.
type ExportInput struct {
	Format string `json:"format,omitempty" jsonschema:"csv, json or xlsx (default csv)"`
}

// ExportOutput is the output schema for the export_document tool.
type ExportOutput struct {
	Format   string `json:"format"`
	Encoding string `json:"encoding"`
	Content  string `json:"content"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "submit_document",
		Description: "Upload a local document for field extraction",
	}, s.handleSubmit)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "await_document",
		Description: "Wait for extraction to finish and return the extracted fields",
	}, s.handleAwait)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_document",
		Description: "Save verified field values for a completed document",
	}, s.handleUpdate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "export_document",
		Description: "Render the last verified record as CSV, JSON or XLSX",
	}, s.handleExport)
}

func (s *Server) handleSubmit(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SubmitInput,
) (*mcp.CallToolResult, SubmitOutput, error) {
	if input.Path == "" {
		return nil, SubmitOutput{}, fmt.Errorf("%w: path is required", domain.ErrInvalidInput)
	}

	result, err := s.ports.Documents.UploadFile(ctx, input.Path)
	if err != nil {
		return nil, SubmitOutput{}, s.toolError(ctx, err)
	}

	return nil, SubmitOutput{DocumentID: result.DocumentID, Message: result.Message}, nil
}

func (s *Server) handleAwait(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AwaitInput,
) (*mcp.CallToolResult, DocumentOutput, error) {
	job, err := s.ports.Documents.Await(ctx, input.DocumentID)
	if err != nil {
		return nil, DocumentOutput{}, s.toolError(ctx, err)
	}

	return nil, DocumentOutput{
		DocumentID:   job.DocumentID,
		Status:       job.Status.String(),
		FileName:     job.DisplayFileName(),
		DocumentType: job.DocumentType,
		Fields:       fieldOutputs(job.ExtractedData),
	}, nil
}

func (s *Server) handleUpdate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UpdateInput,
) (*mcp.CallToolResult, UpdateOutput, error) {
	job, err := s.ports.Documents.Await(ctx, input.DocumentID)
	if err != nil {
		return nil, UpdateOutput{}, s.toolError(ctx, err)
	}
	data, err := job.Fields()
	if err != nil {
		return nil, UpdateOutput{}, err
	}

	edited := data.Clone()
	for name, value := range input.Fields {
		edited.SetValue(name, value)
	}

	record, err := s.ports.Documents.Save(ctx, job.DocumentID, edited)
	if err != nil {
		return nil, UpdateOutput{}, s.toolError(ctx, err)
	}

	return nil, UpdateOutput{
		DocumentID: job.DocumentID,
		Fields:     fieldOutputs(record.ExtractedData),
	}, nil
}

func (s *Server) handleExport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExportInput,
) (*mcp.CallToolResult, ExportOutput, error) {
	format := domain.DefaultExportFormat
	if input.Format != "" {
		format = domain.ExportFormat(input.Format)
	}
	if !format.IsValid() {
		return nil, ExportOutput{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, input.Format)
	}

	var buf bytes.Buffer
	if err := s.ports.Export.Export(ctx, format, &buf); err != nil {
		return nil, ExportOutput{}, err
	}

	output := ExportOutput{Format: format.String(), Encoding: "utf-8", Content: buf.String()}
	if format == domain.ExportXLSX {
		output.Encoding = "base64"
		output.Content = base64.StdEncoding.EncodeToString(buf.Bytes())
	}
	return nil, output, nil
}

// fieldOutputs lists fields in natural key order.
func fieldOutputs(data domain.ExtractedData) []FieldOutput {
	out := make([]FieldOutput, 0, len(data))
	for _, key := range data.SortedKeys() {
		out = append(out, FieldOutput{
			Name:       key,
			Value:      data[key].ValueOrEmpty(),
			Confidence: data[key].ConfidenceOrEmpty(),
		})
	}
	return out
}
