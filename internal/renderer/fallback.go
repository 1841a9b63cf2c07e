package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	ierr "github.com/billcraft/billcraft/internal/errors"
	"github.com/billcraft/billcraft/internal/domain/document"
	"github.com/billcraft/billcraft/internal/domain/invoice"
	"github.com/billcraft/billcraft/internal/logger"
)

const (
	fallbackTopMarginMm  = 20.0
	fallbackLeftMarginMm = 20.0
	fallbackLineMm       = 7.0
	fallbackPageHeightMm = 297.0
	fallbackBottomMm     = fallbackPageHeightMm - 20.0
)

// FallbackBuilder synthesizes a minimal, template-free paginated document
// directly from an invoice record. It needs no template and no network, so
// it only fails on out-of-resource conditions.
type FallbackBuilder interface {
	Build(doc *invoice.InvoiceDocument) (*document.Artifact, int, error)
}

type fallbackBuilder struct {
	log *logger.Logger
}

func NewFallbackBuilder(log *logger.Logger) FallbackBuilder {
	return &fallbackBuilder{log: log}
}

func (b *fallbackBuilder) Build(doc *invoice.InvoiceDocument) (*document.Artifact, int, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// streams stay uncompressed so the artifact text is inspectable
	pdf.SetCompression(false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 11)

	y := fallbackTopMarginMm
	writeLine := func(text string) {
		if y+fallbackLineMm > fallbackBottomMm {
			pdf.AddPage()
			y = fallbackTopMarginMm
		}
		pdf.Text(fallbackLeftMarginMm, y, text)
		y += fallbackLineMm
	}

	// header block
	pdf.SetFont("Helvetica", "B", 14)
	writeLine(fmt.Sprintf("INVOICE %s", doc.InvoiceNumber))
	pdf.SetFont("Helvetica", "", 11)
	if name := doc.RecipientName(); name != "" {
		writeLine("Billed to: " + name)
	}
	writeLine(fmt.Sprintf("Amount: %s %s", strings.ToUpper(doc.Currency), doc.Amount.StringFixed(2)))
	writeLine("Status: " + doc.Status.String())
	if !doc.IssueDate.IsZero() {
		writeLine("Issued: " + doc.IssueDate.Format("2006-01-02"))
	}
	if !doc.DueDate.IsZero() {
		writeLine("Due: " + doc.DueDate.Format("2006-01-02"))
	}
	writeLine("")

	for _, item := range doc.Items {
		writeLine(fmt.Sprintf("%s  x%d  @ %s  =  %s",
			item.Description,
			item.Quantity,
			item.UnitPrice.StringFixed(2),
			item.Amount().StringFixed(2),
		))
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, 0, ierr.WithError(err).
			WithMessage("failed to write fallback document").
			Mark(ierr.ErrFallbackFailed)
	}

	artifact := &document.Artifact{
		FileName:    document.ArtifactFileName(doc.InvoiceNumber, ""),
		ContentType: "application/pdf",
		Bytes:       out.Bytes(),
	}
	return artifact, pdf.PageCount(), nil
}
