package template

import (
	"strings"
	texttemplate "text/template"

	ierr "github.com/billcraft/billcraft/internal/errors"
	"github.com/billcraft/billcraft/internal/domain/invoice"
)

// Template is a named visual template compiled into a reusable render
// function. Templates are immutable once compiled.
type Template struct {
	ID       string
	Name     string
	Category string

	compiled *texttemplate.Template
}

// Compile parses raw template source into an executable Template
func Compile(raw *RawTemplate) (*Template, error) {
	compiled, err := texttemplate.New(raw.ID).Parse(raw.Source)
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessagef("failed to compile template %s", raw.ID).
			WithHint("Template source is not valid").
			Mark(ierr.ErrTemplateFetchFailed)
	}

	name := raw.Name
	if name == "" {
		name = raw.ID
	}

	return &Template{
		ID:       raw.ID,
		Name:     name,
		Category: raw.Category,
		compiled: compiled,
	}, nil
}

// Render executes the compiled template against an invoice document and
// returns the produced markup
func (t *Template) Render(doc *invoice.InvoiceDocument) (string, error) {
	var sb strings.Builder
	if err := t.compiled.Execute(&sb, NewData(doc)); err != nil {
		return "", ierr.WithError(err).
			WithMessagef("failed to render template %s", t.ID).
			WithHint("Template execution failed for this invoice").
			Mark(ierr.ErrSystem)
	}
	return sb.String(), nil
}
