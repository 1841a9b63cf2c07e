// Package stats computes financial snapshots over invoice collections.
package stats

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/billcraft/billcraft/internal/currency"
	"github.com/billcraft/billcraft/internal/domain/invoice"
	"github.com/billcraft/billcraft/internal/types"
)

// Snapshot is a financial summary of an invoice collection in a single
// display currency. Snapshots are recomputed wholesale on every input
// change and never patched incrementally.
type Snapshot struct {
	Total   int `json:"total"`
	Paid    int `json:"paid"`
	Pending int `json:"pending"`
	Overdue int `json:"overdue"`

	TotalAmount decimal.Decimal `json:"total_amount"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`

	DisplayCurrency string `json:"display_currency"`
	// FullyConverted is false when at least one amount passed through
	// unconverted because no rate was available; such totals must not be
	// presented as currency-correct.
	FullyConverted bool `json:"fully_converted"`
}

// Aggregate computes a snapshot in a single pass over the collection. The
// authoritative invoice amount is used as-is; line items are never summed.
// Missing conversion rates degrade to unconverted passthrough amounts.
func Aggregate(invoices []*invoice.InvoiceDocument, displayCurrency string, table currency.RateTable) *Snapshot {
	snapshot := &Snapshot{
		TotalAmount:     decimal.Zero,
		PaidAmount:      decimal.Zero,
		DisplayCurrency: strings.ToLower(displayCurrency),
		FullyConverted:  true,
	}

	for _, inv := range invoices {
		if inv == nil {
			continue
		}
		snapshot.Total++

		switch inv.Status {
		case types.InvoiceStatusPaid:
			snapshot.Paid++
		case types.InvoiceStatusPending:
			snapshot.Pending++
		case types.InvoiceStatusOverdue:
			snapshot.Overdue++
		}

		converted := currency.Convert(inv.Amount, inv.Currency, displayCurrency, table)
		if converted.Unconverted {
			snapshot.FullyConverted = false
		}

		snapshot.TotalAmount = snapshot.TotalAmount.Add(converted.Amount)
		if inv.Status == types.InvoiceStatusPaid {
			snapshot.PaidAmount = snapshot.PaidAmount.Add(converted.Amount)
		}
	}

	return snapshot
}
