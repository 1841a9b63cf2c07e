package testutil

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/billcraft/billcraft/internal/config"
	"github.com/billcraft/billcraft/internal/domain/invoice"
	"github.com/billcraft/billcraft/internal/logger"
	"github.com/billcraft/billcraft/internal/types"
)

// NewTestLogger creates a logger for tests
func NewTestLogger() *logger.Logger {
	log, err := logger.NewLogger(config.GetDefaultConfig())
	if err != nil {
		panic("failed to create test logger: " + err.Error())
	}
	return log
}

// NewTestInvoice builds a valid invoice document for tests
func NewTestInvoice() *invoice.InvoiceDocument {
	issued := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return &invoice.InvoiceDocument{
		InvoiceNumber: "INV-2025-001",
		IssueDate:     issued,
		DueDate:       issued.AddDate(0, 0, 14),
		Currency:      "usd",
		Status:        types.InvoiceStatusPending,
		Amount:        decimal.RequireFromString("149.97"),
		Items: []invoice.LineItem{
			{Description: "Standard widget", Quantity: 3, UnitPrice: decimal.RequireFromString("29.99")},
			{Description: "Priority shipping", Quantity: 1, UnitPrice: decimal.RequireFromString("60.00")},
		},
		Recipient: &invoice.RecipientInfo{
			Name:    "Ada Lovelace",
			Email:   "ada@example.com",
			Address: "12 Analytical Way, London",
		},
		Issuer: &invoice.IssuerInfo{
			CompanyName: "Billcraft Ltd",
			Address:     "1 Ledger Street, Lagos",
			BankDetails: "GTB 0123456789",
			TaxRate:     decimal.RequireFromString("7.5"),
		},
	}
}

// SimpleTemplateSource returns markup source rendering the invoice header
// and one line per item
const SimpleTemplateSource = `{{ .Title }}
Billed to: {{ .RecipientName }}
Status: {{ .Status }}
Total: {{ .Amount }}
---
{{ range .Items }}{{ .Description }}  x{{ .Quantity }}  {{ .Amount }}
{{ end }}`
