package renderer_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billcraft/billcraft/internal/cache"
	"github.com/billcraft/billcraft/internal/config"
	"github.com/billcraft/billcraft/internal/domain/document"
	ierr "github.com/billcraft/billcraft/internal/errors"
	"github.com/billcraft/billcraft/internal/renderer"
	"github.com/billcraft/billcraft/internal/surface"
	"github.com/billcraft/billcraft/internal/template"
	"github.com/billcraft/billcraft/internal/testutil"
)

type rendererFixture struct {
	cfg      *config.Configuration
	source   *testutil.InMemoryTemplateSource
	fetcher  *testutil.StubImageFetcher
	surfaces *surface.Registry
	registry template.Registry
}

func (f *rendererFixture) build(t *testing.T, opts ...func(*rendererOverrides)) renderer.Renderer {
	t.Helper()

	overrides := &rendererOverrides{
		rasterizer: surface.NewRasterizer(),
		encoder:    renderer.NewEncoder(),
		fallback:   renderer.NewFallbackBuilder(testutil.NewTestLogger()),
	}
	for _, opt := range opts {
		opt(overrides)
	}

	return renderer.New(
		f.cfg,
		f.registry,
		f.surfaces,
		f.fetcher,
		overrides.rasterizer,
		overrides.encoder,
		overrides.fallback,
		testutil.NewTestLogger(),
	)
}

type rendererOverrides struct {
	rasterizer surface.Rasterizer
	encoder    renderer.Encoder
	fallback   renderer.FallbackBuilder
}

func newFixture(t *testing.T) *rendererFixture {
	t.Helper()
	log := testutil.NewTestLogger()

	source := testutil.NewInMemoryTemplateSource()
	source.Add("classic", testutil.SimpleTemplateSource)

	cfg := config.GetDefaultConfig()
	registry := template.NewRegistry(cfg, source, cache.NewInMemoryCache(log), log)
	registry.Load(context.Background(), []string{"classic"})

	return &rendererFixture{
		cfg:      cfg,
		source:   source,
		fetcher:  testutil.NewStubImageFetcher(),
		surfaces: surface.NewRegistry(log),
		registry: registry,
	}
}

func TestRender_Success(t *testing.T) {
	f := newFixture(t)
	r := f.build(t)

	outcome := r.Render(context.Background(), "classic", testutil.NewTestInvoice())

	assert.Equal(t, document.RenderStatusSuccess, outcome.Status)
	assert.GreaterOrEqual(t, outcome.PageCount, 1)
	require.NotNil(t, outcome.Artifact)
	assert.Equal(t, "invoice-INV-2025-001-classic.pdf", outcome.Artifact.FileName)
	assert.True(t, bytes.HasPrefix(outcome.Artifact.Bytes, []byte("%PDF")))

	// no leaked surface on the success path
	assert.Equal(t, 0, f.surfaces.ActiveCount())
}

func TestRender_SuccessPageCarriesInvoiceContent(t *testing.T) {
	f := newFixture(t)
	doc := testutil.NewTestInvoice()

	// the artifact pages are raster images, so text presence is checked at
	// the markup level and ink coverage at the pixel level
	markup, err := f.registry.Render("classic", doc)
	require.NoError(t, err)
	assert.Contains(t, markup, doc.InvoiceNumber)

	surf := f.surfaces.Acquire(document.A4Geometry())
	defer f.surfaces.Release(surf)
	require.NoError(t, surf.Mount(markup))

	pages, err := surface.NewRasterizer().Rasterize(surf)
	require.NoError(t, err)
	require.NotEmpty(t, pages)

	geo := document.A4Geometry()
	inked := 0
	for y := geo.MarginPx; y < geo.HeightPx-geo.MarginPx; y++ {
		for x := geo.MarginPx; x < geo.WidthPx-geo.MarginPx; x++ {
			r, g, b, _ := pages[0].At(x, y).RGBA()
			if r < 0x8000 && g < 0x8000 && b < 0x8000 {
				inked++
			}
		}
	}
	assert.Greater(t, inked, 0)
}

func TestRender_TemplateNotFoundFallsBack(t *testing.T) {
	f := newFixture(t)
	r := f.build(t)
	doc := testutil.NewTestInvoice()

	outcome := r.Render(context.Background(), "missing", doc)

	assert.Equal(t, document.RenderStatusDegraded, outcome.Status)
	assert.Equal(t, ierr.ErrCodeTemplateNotFound, outcome.Reason)
	require.NotNil(t, outcome.Artifact)
	// fallback document still carries the invoice content
	assert.True(t, bytes.Contains(outcome.Artifact.Bytes, []byte(doc.InvoiceNumber)))
	assert.True(t, bytes.Contains(outcome.Artifact.Bytes, []byte("Standard widget")))
	assert.Equal(t, 0, f.surfaces.ActiveCount())
}

func TestRender_RasterizationFailureFallsBack(t *testing.T) {
	f := newFixture(t)
	r := f.build(t, func(o *rendererOverrides) {
		o.rasterizer = testutil.NewFailingRasterizer()
	})

	outcome := r.Render(context.Background(), "classic", testutil.NewTestInvoice())

	assert.Equal(t, document.RenderStatusDegraded, outcome.Status)
	assert.Equal(t, ierr.ErrCodeRasterizationFailed, outcome.Reason)
	require.NotNil(t, outcome.Artifact)
	assert.NotEmpty(t, outcome.Artifact.Bytes)

	// the surface is released even on the error path
	assert.Equal(t, 0, f.surfaces.ActiveCount())
}

func TestRender_EncodingFailureFallsBack(t *testing.T) {
	f := newFixture(t)
	r := f.build(t, func(o *rendererOverrides) {
		o.encoder = &testutil.FailingEncoder{}
	})

	outcome := r.Render(context.Background(), "classic", testutil.NewTestInvoice())

	assert.Equal(t, document.RenderStatusDegraded, outcome.Status)
	assert.Equal(t, ierr.ErrCodeEncodingFailed, outcome.Reason)
	assert.Equal(t, 0, f.surfaces.ActiveCount())
}

func TestRender_TotalFailure(t *testing.T) {
	f := newFixture(t)
	r := f.build(t, func(o *rendererOverrides) {
		o.rasterizer = testutil.NewFailingRasterizer()
		o.fallback = &testutil.FailingFallbackBuilder{}
	})

	outcome := r.Render(context.Background(), "classic", testutil.NewTestInvoice())

	assert.Equal(t, document.RenderStatusFailed, outcome.Status)
	assert.Equal(t, ierr.ErrCodeFallbackFailed, outcome.Reason)
	assert.Nil(t, outcome.Artifact)
	assert.Equal(t, 0, f.surfaces.ActiveCount())
}

func TestRender_CancelledContextReleasesSurface(t *testing.T) {
	f := newFixture(t)
	r := f.build(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome := r.Render(ctx, "classic", testutil.NewTestInvoice())

	// an abandoned render still degrades cleanly and frees its surface
	assert.Equal(t, document.RenderStatusDegraded, outcome.Status)
	assert.Equal(t, 0, f.surfaces.ActiveCount())
}

func TestRender_StrictImagePolicy(t *testing.T) {
	f := newFixture(t)
	f.source.Add("branded", "{{ .Title }}\n#image https://cdn.example.com/logo.png")
	f.registry.Load(context.Background(), []string{"branded"})

	r := f.build(t)
	outcome := r.Render(context.Background(), "branded", testutil.NewTestInvoice())

	// strict policy: missing image fails the templated path
	assert.Equal(t, document.RenderStatusDegraded, outcome.Status)
	assert.Equal(t, ierr.ErrCodeImageLoadFailed, outcome.Reason)
	assert.Equal(t, 0, f.surfaces.ActiveCount())
}

func TestRender_LenientImagePolicy(t *testing.T) {
	f := newFixture(t)
	f.cfg.Render.StrictImages = false
	f.source.Add("branded", "{{ .Title }}\n#image https://cdn.example.com/logo.png")
	f.registry.Load(context.Background(), []string{"branded"})

	r := f.build(t)
	outcome := r.Render(context.Background(), "branded", testutil.NewTestInvoice())

	assert.Equal(t, document.RenderStatusSuccess, outcome.Status)
	assert.Equal(t, 0, f.surfaces.ActiveCount())
}

func TestRender_InvalidDocumentFallsBack(t *testing.T) {
	f := newFixture(t)
	r := f.build(t)

	doc := testutil.NewTestInvoice()
	doc.Status = "NONSENSE"

	outcome := r.Render(context.Background(), "classic", doc)
	assert.Equal(t, document.RenderStatusDegraded, outcome.Status)
	assert.Equal(t, ierr.ErrCodeValidation, outcome.Reason)
}

func TestRenderAndSave(t *testing.T) {
	f := newFixture(t)
	f.cfg.Render.OutputDir = t.TempDir()
	r := f.build(t)

	outcome, path, err := r.RenderAndSave(context.Background(), "classic", testutil.NewTestInvoice())
	require.NoError(t, err)
	assert.Equal(t, document.RenderStatusSuccess, outcome.Status)
	assert.FileExists(t, path)
}

func TestRenderAndShare(t *testing.T) {
	f := newFixture(t)
	r := f.build(t)
	target := renderer.NewFileShareTarget(t.TempDir(), testutil.NewTestLogger())

	outcome, err := r.RenderAndShare(context.Background(), "classic", testutil.NewTestInvoice(), target)
	require.NoError(t, err)
	assert.Equal(t, document.RenderStatusSuccess, outcome.Status)
}
