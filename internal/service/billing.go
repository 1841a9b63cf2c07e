package service

import (
	"context"
	"sort"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/billcraft/billcraft/internal/currency"
	"github.com/billcraft/billcraft/internal/domain/document"
	"github.com/billcraft/billcraft/internal/domain/invoice"
	ierr "github.com/billcraft/billcraft/internal/errors"
	"github.com/billcraft/billcraft/internal/stats"
)

// BillingService exposes document generation and financial aggregation to
// the transport layer
type BillingService interface {
	// PreloadTemplates warms the template registry for the given ids and
	// returns the ids that are ready for rendering
	PreloadTemplates(ctx context.Context, templateIDs []string) []string

	// RenderInvoice runs the document generation pipeline for one invoice
	RenderInvoice(ctx context.Context, templateID string, doc *invoice.InvoiceDocument) *document.RenderOutcome

	// RenderAndSaveInvoice renders and persists the artifact, returning the
	// written path alongside the outcome
	RenderAndSaveInvoice(ctx context.Context, templateID string, doc *invoice.InvoiceDocument) (*document.RenderOutcome, string, error)

	// AggregateStats computes a financial snapshot of the given invoices in
	// the display currency
	AggregateStats(ctx context.Context, invoices []*invoice.InvoiceDocument, displayCurrency string) (*stats.Snapshot, error)

	// ConvertAmount converts a single amount between currency codes
	ConvertAmount(ctx context.Context, amount decimal.Decimal, from, to string) currency.Converted
}

type billingService struct {
	ServiceParams
}

func NewBillingService(params ServiceParams) BillingService {
	return &billingService{
		ServiceParams: params,
	}
}

func (s *billingService) PreloadTemplates(ctx context.Context, templateIDs []string) []string {
	loaded := lo.Keys(s.Templates.Load(ctx, templateIDs))
	sort.Strings(loaded)
	return loaded
}

func (s *billingService) RenderInvoice(ctx context.Context, templateID string, doc *invoice.InvoiceDocument) *document.RenderOutcome {
	return s.Renderer.Render(ctx, templateID, doc)
}

func (s *billingService) RenderAndSaveInvoice(ctx context.Context, templateID string, doc *invoice.InvoiceDocument) (*document.RenderOutcome, string, error) {
	return s.Renderer.RenderAndSave(ctx, templateID, doc)
}

func (s *billingService) AggregateStats(_ context.Context, invoices []*invoice.InvoiceDocument, displayCurrency string) (*stats.Snapshot, error) {
	if len(displayCurrency) != 3 {
		return nil, ierr.NewError("invalid display currency").
			WithHint("Display currency must be a 3 letter ISO code").
			WithReportableDetails(map[string]any{
				"display_currency": displayCurrency,
			}).
			Mark(ierr.ErrValidation)
	}

	for _, doc := range invoices {
		if doc == nil {
			continue
		}
		if err := doc.Validate(); err != nil {
			return nil, err
		}
	}

	return stats.Aggregate(invoices, displayCurrency, s.Rates), nil
}

func (s *billingService) ConvertAmount(_ context.Context, amount decimal.Decimal, from, to string) currency.Converted {
	return currency.Convert(amount, from, to, s.Rates)
}
