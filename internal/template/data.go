package template

import (
	"time"

	"github.com/billcraft/billcraft/internal/currency"
	"github.com/billcraft/billcraft/internal/domain/invoice"
)

// Data is the view model handed to template execution. Amounts arrive
// preformatted so templates never do monetary math.
type Data struct {
	InvoiceNumber string
	Title         string
	IssueDate     string
	DueDate       string
	Status        string
	Currency      string
	Amount        string

	RecipientName    string
	RecipientEmail   string
	RecipientPhone   string
	RecipientAddress string

	IssuerName        string
	IssuerAddress     string
	IssuerBankDetails string
	IssuerTaxRate     string
	LogoURL           string

	Items []ItemData
}

// ItemData is one preformatted invoice line for template execution
type ItemData struct {
	Description string
	Quantity    int64
	UnitPrice   string
	Amount      string
}

// NewData converts an invoice document into the template view model
func NewData(doc *invoice.InvoiceDocument) Data {
	data := Data{
		InvoiceNumber: doc.InvoiceNumber,
		Title:         "Invoice " + doc.InvoiceNumber,
		IssueDate:     formatDate(doc.IssueDate),
		DueDate:       formatDate(doc.DueDate),
		Status:        doc.Status.String(),
		Currency:      doc.Currency,
		Amount:        currency.FormatAmount(doc.Amount, doc.Currency),
	}

	if doc.Recipient != nil {
		data.RecipientName = doc.Recipient.Name
		data.RecipientEmail = doc.Recipient.Email
		data.RecipientPhone = doc.Recipient.Phone
		data.RecipientAddress = doc.Recipient.Address
	}

	if doc.Issuer != nil {
		data.IssuerName = doc.Issuer.CompanyName
		data.IssuerAddress = doc.Issuer.Address
		data.IssuerBankDetails = doc.Issuer.BankDetails
		data.IssuerTaxRate = doc.Issuer.TaxRate.StringFixed(2) + "%"
		data.LogoURL = doc.Issuer.LogoURL
	}

	data.Items = make([]ItemData, len(doc.Items))
	for i, item := range doc.Items {
		data.Items[i] = ItemData{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   currency.FormatAmount(item.UnitPrice, doc.Currency),
			Amount:      currency.FormatAmount(item.Amount(), doc.Currency),
		}
	}

	return data
}

// formatDate formats a time.Time in YYYY-MM-DD format
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
