// Package renderer orchestrates the invoice document generation pipeline:
// template resolution, markup compilation, off-screen layout, image
// loading, rasterization and binary encoding, with a guaranteed text-only
// fallback when any templated stage fails.
package renderer

import (
	"context"
	"fmt"

	"github.com/billcraft/billcraft/internal/config"
	"github.com/billcraft/billcraft/internal/domain/document"
	"github.com/billcraft/billcraft/internal/domain/invoice"
	ierr "github.com/billcraft/billcraft/internal/errors"
	"github.com/billcraft/billcraft/internal/logger"
	"github.com/billcraft/billcraft/internal/surface"
	"github.com/billcraft/billcraft/internal/template"
	"github.com/billcraft/billcraft/internal/types"
)

// Renderer produces a portable paginated document artifact from an invoice
type Renderer interface {
	// Render runs the full pipeline and returns a tagged outcome. It never
	// returns an error; total failure is reported as a failed outcome.
	Render(ctx context.Context, templateID string, doc *invoice.InvoiceDocument) *document.RenderOutcome

	// RenderAndSave renders and writes the artifact to the configured
	// output directory, returning the written path
	RenderAndSave(ctx context.Context, templateID string, doc *invoice.InvoiceDocument) (*document.RenderOutcome, string, error)

	// RenderAndShare renders and hands the artifact to a share target
	RenderAndShare(ctx context.Context, templateID string, doc *invoice.InvoiceDocument, target ShareTarget) (*document.RenderOutcome, error)
}

type renderer struct {
	templates  template.Registry
	surfaces   *surface.Registry
	fetcher    surface.ImageFetcher
	rasterizer surface.Rasterizer
	encoder    Encoder
	fallback   FallbackBuilder
	log        *logger.Logger
	cfg        config.RenderConfig
}

func New(
	cfg *config.Configuration,
	templates template.Registry,
	surfaces *surface.Registry,
	fetcher surface.ImageFetcher,
	rasterizer surface.Rasterizer,
	encoder Encoder,
	fallback FallbackBuilder,
	log *logger.Logger,
) Renderer {
	return &renderer{
		templates:  templates,
		surfaces:   surfaces,
		fetcher:    fetcher,
		rasterizer: rasterizer,
		encoder:    encoder,
		fallback:   fallback,
		log:        log,
		cfg:        cfg.Render,
	}
}

func (r *renderer) Render(ctx context.Context, templateID string, doc *invoice.InvoiceDocument) *document.RenderOutcome {
	renderID := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_RENDER)
	log := r.log.With("render_id", renderID, "template_id", templateID, "invoice_number", doc.InvoiceNumber)

	if err := doc.Validate(); err != nil {
		log.Warnw("invalid invoice document, using fallback", "error", err)
		return r.degrade(doc, err, log)
	}

	data, pageCount, err := r.renderTemplated(ctx, templateID, doc)
	if err != nil {
		log.Warnw("templated render failed, using fallback", "error", err)
		return r.degrade(doc, err, log)
	}

	artifact := &document.Artifact{
		FileName:    document.ArtifactFileName(doc.InvoiceNumber, templateID),
		ContentType: "application/pdf",
		Bytes:       data,
	}

	log.Infow("rendered invoice document", "pages", pageCount, "bytes", len(data))
	return document.Success(artifact, pageCount)
}

// renderTemplated runs steps 1-4 of the pipeline. The surface acquired
// here is released on every exit path, including cancellation.
func (r *renderer) renderTemplated(ctx context.Context, templateID string, doc *invoice.InvoiceDocument) ([]byte, int, error) {
	markup, err := r.templates.Render(templateID, doc)
	if err != nil {
		return nil, 0, err
	}

	surf := r.surfaces.Acquire(r.geometry())
	defer r.surfaces.Release(surf)

	if err := surf.Mount(markup); err != nil {
		return nil, 0, err
	}

	if err := ctx.Err(); err != nil {
		return nil, 0, ierr.WithError(err).
			WithMessage("render abandoned by caller").
			Mark(ierr.ErrInvalidOperation)
	}

	if err := surf.LoadImages(ctx, r.fetcher, r.cfg.ImageTimeout, r.cfg.StrictImages); err != nil {
		return nil, 0, err
	}

	pages, err := r.rasterizer.Rasterize(surf)
	if err != nil {
		return nil, 0, err
	}

	data, err := r.encoder.Encode(pages)
	if err != nil {
		return nil, 0, err
	}

	return data, len(pages), nil
}

// degrade runs the template-free fallback path. Only when the fallback
// itself fails is the outcome surfaced as a failure.
func (r *renderer) degrade(doc *invoice.InvoiceDocument, cause error, log *logger.Logger) *document.RenderOutcome {
	reason := ierr.Code(cause)

	artifact, pageCount, err := r.fallback.Build(doc)
	if err != nil {
		log.Errorw("fallback document generation failed", "error", err, "cause", reason)
		return document.Failed(ierr.ErrCodeFallbackFailed)
	}

	log.Infow("produced fallback document", "pages", pageCount, "cause", reason)
	return document.Degraded(artifact, pageCount, reason)
}

func (r *renderer) RenderAndSave(ctx context.Context, templateID string, doc *invoice.InvoiceDocument) (*document.RenderOutcome, string, error) {
	outcome := r.Render(ctx, templateID, doc)
	if outcome.Status == document.RenderStatusFailed {
		return outcome, "", ierr.NewError("no document was produced").
			Mark(ierr.ErrFallbackFailed)
	}

	path, err := SaveArtifact(outcome.Artifact, r.cfg.OutputDir)
	if err != nil {
		return outcome, "", err
	}
	return outcome, path, nil
}

func (r *renderer) RenderAndShare(ctx context.Context, templateID string, doc *invoice.InvoiceDocument, target ShareTarget) (*document.RenderOutcome, error) {
	outcome := r.Render(ctx, templateID, doc)
	if outcome.Status == document.RenderStatusFailed {
		return outcome, ierr.NewError("no document was produced").
			Mark(ierr.ErrFallbackFailed)
	}

	title := fmt.Sprintf("Invoice %s", doc.InvoiceNumber)
	text := fmt.Sprintf("Invoice %s for %s", doc.InvoiceNumber, doc.RecipientName())
	if err := target.Share(ctx, outcome.Artifact, title, text); err != nil {
		return outcome, err
	}
	return outcome, nil
}

func (r *renderer) geometry() document.PageGeometry {
	return document.PageGeometry{
		WidthPx:  r.cfg.PageWidthPx,
		HeightPx: r.cfg.PageHeightPx,
		MarginPx: r.cfg.PageMarginPx,
	}
}
