package dto

import (
	"github.com/billcraft/billcraft/internal/domain/document"
	"github.com/billcraft/billcraft/internal/domain/invoice"
	ierr "github.com/billcraft/billcraft/internal/errors"
	"github.com/billcraft/billcraft/internal/validator"
)

// RenderInvoiceRequest asks for one invoice to be rendered with a template
type RenderInvoiceRequest struct {
	TemplateID string                   `json:"template_id" validate:"required"`
	Invoice    *invoice.InvoiceDocument `json:"invoice" validate:"required"`
	// Save persists the artifact to the configured output directory
	Save bool `json:"save,omitempty"`
}

func (r *RenderInvoiceRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.Invoice.Validate()
}

// RenderInvoiceResponse carries the render outcome. Document holds the
// binary artifact and serializes as base64.
type RenderInvoiceResponse struct {
	Status      document.RenderStatus `json:"status"`
	Reason      string                `json:"reason,omitempty"`
	PageCount   int                   `json:"page_count,omitempty"`
	FileName    string                `json:"file_name,omitempty"`
	ContentType string                `json:"content_type,omitempty"`
	Document    []byte                `json:"document,omitempty"`
	SavedPath   string                `json:"saved_path,omitempty"`
	// Note is an informational message on degraded outcomes
	Note string `json:"note,omitempty"`
}

// NewRenderInvoiceResponse maps a render outcome onto the wire shape
func NewRenderInvoiceResponse(outcome *document.RenderOutcome, savedPath string) *RenderInvoiceResponse {
	resp := &RenderInvoiceResponse{
		Status:    outcome.Status,
		Reason:    outcome.Reason,
		SavedPath: savedPath,
	}
	if outcome.Artifact != nil {
		resp.PageCount = outcome.PageCount
		resp.FileName = outcome.Artifact.FileName
		resp.ContentType = outcome.Artifact.ContentType
		resp.Document = outcome.Artifact.Bytes
	}
	if outcome.Status == document.RenderStatusDegraded {
		resp.Note = "The templated render failed; a simplified fallback document was generated instead."
	}
	return resp
}

// PreloadTemplatesRequest warms the template registry
type PreloadTemplatesRequest struct {
	TemplateIDs []string `json:"template_ids" validate:"required,min=1"`
}

func (r *PreloadTemplatesRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	for _, id := range r.TemplateIDs {
		if id == "" {
			return ierr.NewError("template id must not be empty").
				WithHint("Provide non-empty template ids").
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

// PreloadTemplatesResponse lists the ids that are ready for rendering
type PreloadTemplatesResponse struct {
	Loaded []string `json:"loaded"`
}
