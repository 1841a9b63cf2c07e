package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billcraft/billcraft/internal/cache"
	"github.com/billcraft/billcraft/internal/config"
	"github.com/billcraft/billcraft/internal/domain/document"
	"github.com/billcraft/billcraft/internal/domain/invoice"
	ierr "github.com/billcraft/billcraft/internal/errors"
	"github.com/billcraft/billcraft/internal/renderer"
	"github.com/billcraft/billcraft/internal/service"
	"github.com/billcraft/billcraft/internal/surface"
	"github.com/billcraft/billcraft/internal/template"
	"github.com/billcraft/billcraft/internal/testutil"
	"github.com/billcraft/billcraft/internal/types"
)

func newBillingService(t *testing.T) service.BillingService {
	t.Helper()
	log := testutil.NewTestLogger()
	cfg := config.GetDefaultConfig()
	cfg.Render.OutputDir = t.TempDir()

	source := testutil.NewInMemoryTemplateSource()
	source.Add("classic", testutil.SimpleTemplateSource)
	registry := template.NewRegistry(cfg, source, cache.NewInMemoryCache(log), log)

	rend := renderer.New(
		cfg,
		registry,
		surface.NewRegistry(log),
		testutil.NewStubImageFetcher(),
		surface.NewRasterizer(),
		renderer.NewEncoder(),
		renderer.NewFallbackBuilder(log),
		log,
	)

	rates, err := service.NewRateTable(cfg)
	require.NoError(t, err)

	return service.NewBillingService(service.NewServiceParams(log, cfg, registry, rend, rates))
}

func TestBillingService_PreloadAndRender(t *testing.T) {
	svc := newBillingService(t)
	ctx := context.Background()

	loaded := svc.PreloadTemplates(ctx, []string{"classic", "missing"})
	assert.Equal(t, []string{"classic"}, loaded)

	outcome := svc.RenderInvoice(ctx, "classic", testutil.NewTestInvoice())
	assert.Equal(t, document.RenderStatusSuccess, outcome.Status)
}

func TestBillingService_RenderAndSave(t *testing.T) {
	svc := newBillingService(t)
	ctx := context.Background()
	svc.PreloadTemplates(ctx, []string{"classic"})

	outcome, path, err := svc.RenderAndSaveInvoice(ctx, "classic", testutil.NewTestInvoice())
	require.NoError(t, err)
	assert.Equal(t, document.RenderStatusSuccess, outcome.Status)
	assert.FileExists(t, path)
}

func TestBillingService_AggregateStats(t *testing.T) {
	svc := newBillingService(t)

	paid := testutil.NewTestInvoice()
	paid.Status = types.InvoiceStatusPaid
	paid.Currency = "ngn"
	paid.Amount = decimal.RequireFromString("1000")

	pending := testutil.NewTestInvoice()
	pending.Amount = decimal.RequireFromString("10")

	// default rates carry usd->ngn, so the usd invoice converts
	snapshot, err := svc.AggregateStats(context.Background(), []*invoice.InvoiceDocument{paid, pending}, "ngn")
	require.NoError(t, err)

	assert.Equal(t, 2, snapshot.Total)
	assert.Equal(t, 1, snapshot.Paid)
	assert.Equal(t, 1, snapshot.Pending)
	assert.True(t, snapshot.FullyConverted)
	assert.True(t, snapshot.TotalAmount.Equal(decimal.RequireFromString("9000")))
	assert.True(t, snapshot.PaidAmount.Equal(decimal.RequireFromString("1000")))
}

func TestBillingService_AggregateStats_InvalidCurrency(t *testing.T) {
	svc := newBillingService(t)

	_, err := svc.AggregateStats(context.Background(), nil, "naira")
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestBillingService_ConvertAmount(t *testing.T) {
	svc := newBillingService(t)

	converted := svc.ConvertAmount(context.Background(), decimal.RequireFromString("2.50"), "usd", "ngn")
	assert.False(t, converted.Unconverted)
	assert.True(t, converted.Amount.Equal(decimal.RequireFromString("2000")))

	passthrough := svc.ConvertAmount(context.Background(), decimal.NewFromInt(5), "usd", "jpy")
	assert.True(t, passthrough.Unconverted)
}
