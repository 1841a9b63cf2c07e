package document

import (
	"fmt"
	"strings"
)

// RenderStatus is the three-way outcome of a document render
type RenderStatus string

const (
	// RenderStatusSuccess indicates the templated path produced the artifact
	RenderStatusSuccess RenderStatus = "SUCCESS"
	// RenderStatusDegraded indicates the templated path failed and the
	// text-only fallback produced the artifact
	RenderStatusDegraded RenderStatus = "DEGRADED"
	// RenderStatusFailed indicates both the templated path and the fallback failed
	RenderStatusFailed RenderStatus = "FAILED"
)

func (s RenderStatus) String() string {
	return string(s)
}

// Artifact is the final paginated binary document produced by a render
type Artifact struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Bytes       []byte `json:"-"`
}

// RenderOutcome is the tagged result of a render call. Callers must switch
// on Status rather than treating a produced file as proof of success.
type RenderOutcome struct {
	Status    RenderStatus `json:"status"`
	Artifact  *Artifact    `json:"artifact,omitempty"`
	PageCount int          `json:"page_count"`
	// Reason carries the failure code of the templated path for degraded
	// outcomes, or of the fallback for failed ones
	Reason string `json:"reason,omitempty"`
}

// Success builds a successful render outcome
func Success(artifact *Artifact, pageCount int) *RenderOutcome {
	return &RenderOutcome{
		Status:    RenderStatusSuccess,
		Artifact:  artifact,
		PageCount: pageCount,
	}
}

// Degraded builds a fallback render outcome
func Degraded(artifact *Artifact, pageCount int, reason string) *RenderOutcome {
	return &RenderOutcome{
		Status:    RenderStatusDegraded,
		Artifact:  artifact,
		PageCount: pageCount,
		Reason:    reason,
	}
}

// Failed builds a total-failure render outcome
func Failed(reason string) *RenderOutcome {
	return &RenderOutcome{
		Status: RenderStatusFailed,
		Reason: reason,
	}
}

// PageGeometry is the fixed page sizing of the off-screen rendering surface
type PageGeometry struct {
	WidthPx  int
	HeightPx int
	MarginPx int
}

// ContentWidth returns the usable horizontal pixels inside the margins
func (g PageGeometry) ContentWidth() int {
	return g.WidthPx - 2*g.MarginPx
}

// ContentHeight returns the usable vertical pixels inside the margins
func (g PageGeometry) ContentHeight() int {
	return g.HeightPx - 2*g.MarginPx
}

// A4Geometry returns A4 page dimensions at 96dpi
func A4Geometry() PageGeometry {
	return PageGeometry{WidthPx: 794, HeightPx: 1123, MarginPx: 48}
}

// ArtifactFileName derives the deterministic artifact name from the invoice
// number and template id
func ArtifactFileName(invoiceNumber, templateID string) string {
	sanitize := func(s string) string {
		s = strings.TrimSpace(s)
		s = strings.ReplaceAll(s, " ", "-")
		s = strings.ReplaceAll(s, "/", "-")
		return s
	}
	if templateID == "" {
		return fmt.Sprintf("invoice-%s.pdf", sanitize(invoiceNumber))
	}
	return fmt.Sprintf("invoice-%s-%s.pdf", sanitize(invoiceNumber), sanitize(templateID))
}
