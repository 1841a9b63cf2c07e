package dto

import (
	"github.com/shopspring/decimal"

	"github.com/billcraft/billcraft/internal/currency"
	"github.com/billcraft/billcraft/internal/domain/invoice"
	ierr "github.com/billcraft/billcraft/internal/errors"
	"github.com/billcraft/billcraft/internal/stats"
	"github.com/billcraft/billcraft/internal/validator"
)

// InvoiceStatsRequest asks for a financial snapshot of a collection
type InvoiceStatsRequest struct {
	DisplayCurrency string                     `json:"display_currency" validate:"required,len=3"`
	Invoices        []*invoice.InvoiceDocument `json:"invoices" validate:"required"`
}

func (r *InvoiceStatsRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// InvoiceStatsResponse wraps the snapshot with an informational note when
// the totals include unconverted amounts
type InvoiceStatsResponse struct {
	*stats.Snapshot
	Note string `json:"note,omitempty"`
}

func NewInvoiceStatsResponse(snapshot *stats.Snapshot) *InvoiceStatsResponse {
	resp := &InvoiceStatsResponse{Snapshot: snapshot}
	if !snapshot.FullyConverted {
		resp.Note = "Some amounts had no conversion rate and were summed unconverted."
	}
	return resp
}

// ConvertAmountRequest converts one amount between currencies
type ConvertAmountRequest struct {
	Amount string `json:"amount" validate:"required"`
	From   string `json:"from" validate:"required,len=3"`
	To     string `json:"to" validate:"required,len=3"`
}

func (r *ConvertAmountRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if _, err := decimal.NewFromString(r.Amount); err != nil {
		return ierr.WithError(err).
			WithHint("Amount must be a decimal number").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ParsedAmount returns the request amount as a decimal. Validate must have
// succeeded first.
func (r *ConvertAmountRequest) ParsedAmount() decimal.Decimal {
	return decimal.RequireFromString(r.Amount)
}

// ConvertAmountResponse carries the conversion result. Formatted renders
// the amount with the target currency symbol for display.
type ConvertAmountResponse struct {
	Amount      string `json:"amount"`
	From        string `json:"from"`
	To          string `json:"to"`
	Unconverted bool   `json:"unconverted"`
	Formatted   string `json:"formatted"`
}

func NewConvertAmountResponse(req *ConvertAmountRequest, converted currency.Converted) *ConvertAmountResponse {
	return &ConvertAmountResponse{
		Amount:      converted.Amount.String(),
		From:        req.From,
		To:          req.To,
		Unconverted: converted.Unconverted,
		Formatted:   currency.FormatAmount(converted.Amount, req.To),
	}
}
