package testutil

import (
	"image"

	ierr "github.com/billcraft/billcraft/internal/errors"
	"github.com/billcraft/billcraft/internal/domain/document"
	"github.com/billcraft/billcraft/internal/domain/invoice"
	"github.com/billcraft/billcraft/internal/surface"
)

// FailingRasterizer implements surface.Rasterizer and always fails,
// used to exercise the degraded render path
type FailingRasterizer struct{}

func NewFailingRasterizer() surface.Rasterizer {
	return &FailingRasterizer{}
}

func (r *FailingRasterizer) Rasterize(_ *surface.Surface) ([]*image.RGBA, error) {
	return nil, ierr.NewError("injected rasterization failure").
		Mark(ierr.ErrRasterizationFailed)
}

// FailingEncoder always fails encoding
type FailingEncoder struct{}

func (e *FailingEncoder) Encode(_ []*image.RGBA) ([]byte, error) {
	return nil, ierr.NewError("injected encoding failure").
		Mark(ierr.ErrEncodingFailed)
}

// FailingFallbackBuilder always fails, used to exercise total failure
type FailingFallbackBuilder struct{}

func (b *FailingFallbackBuilder) Build(_ *invoice.InvoiceDocument) (*document.Artifact, int, error) {
	return nil, 0, ierr.NewError("injected fallback failure").
		Mark(ierr.ErrFallbackFailed)
}
