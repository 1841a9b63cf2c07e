package invoice

import (
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/billcraft/billcraft/internal/errors"
	"github.com/billcraft/billcraft/internal/types"
)

// InvoiceDocument is the render- and aggregation-facing invoice model.
// Instances are owned by the caller for the duration of a request; no
// component retains a reference after returning.
type InvoiceDocument struct {
	InvoiceNumber string              `json:"invoice_number"`
	IssueDate     time.Time           `json:"issue_date"`
	DueDate       time.Time           `json:"due_date"`
	Currency      string              `json:"currency"`
	Status        types.InvoiceStatus `json:"status"`
	// Amount is the authoritative total. It is independent of the item sum;
	// some flows compute it server side, so it must never be re-derived
	// from Items.
	Amount    decimal.Decimal `json:"amount"`
	Items     []LineItem      `json:"items"`
	Recipient *RecipientInfo  `json:"recipient,omitempty"`
	Issuer    *IssuerInfo     `json:"issuer,omitempty"`
}

// LineItem is a single invoice line. Amount is derived from Quantity and
// UnitPrice on every read and is never stored independently of its inputs.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Amount returns quantity * unit price
func (li LineItem) Amount() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(li.Quantity))
}

func (li LineItem) Validate() error {
	if li.Description == "" {
		return ierr.NewError("line item description is required").
			WithHint("Please provide a description for each line item").
			Mark(ierr.ErrValidation)
	}
	if li.Quantity <= 0 {
		return ierr.NewError("line item quantity must be positive").
			WithReportableDetails(map[string]any{
				"description": li.Description,
				"quantity":    li.Quantity,
			}).
			Mark(ierr.ErrValidation)
	}
	if li.UnitPrice.IsNegative() {
		return ierr.NewError("line item unit price must not be negative").
			WithReportableDetails(map[string]any{
				"description": li.Description,
				"unit_price":  li.UnitPrice.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// RecipientInfo contains customer information for the invoice recipient
type RecipientInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// IssuerInfo contains company information for the invoice issuer
type IssuerInfo struct {
	CompanyName string          `json:"company_name"`
	Address     string          `json:"address,omitempty"`
	LogoURL     string          `json:"logo_url,omitempty"`
	BankDetails string          `json:"bank_details,omitempty"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
}

func (d *InvoiceDocument) Validate() error {
	if d.InvoiceNumber == "" {
		return ierr.NewError("invoice number is required").
			WithHint("Please provide an invoice number").
			Mark(ierr.ErrValidation)
	}
	if len(d.Currency) != 3 {
		return ierr.NewError("invalid currency code").
			WithHint("Currency must be a 3 letter ISO code").
			WithReportableDetails(map[string]any{
				"currency": d.Currency,
			}).
			Mark(ierr.ErrValidation)
	}
	if err := d.Status.Validate(); err != nil {
		return err
	}
	for _, item := range d.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// RecipientName returns the recipient name or an empty string
func (d *InvoiceDocument) RecipientName() string {
	if d.Recipient == nil {
		return ""
	}
	return d.Recipient.Name
}
