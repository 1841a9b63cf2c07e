package template_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billcraft/billcraft/internal/cache"
	"github.com/billcraft/billcraft/internal/config"
	ierr "github.com/billcraft/billcraft/internal/errors"
	"github.com/billcraft/billcraft/internal/template"
	"github.com/billcraft/billcraft/internal/testutil"
)

func newTestRegistry(t *testing.T, source template.Source) template.Registry {
	t.Helper()
	log := testutil.NewTestLogger()
	return template.NewRegistry(config.GetDefaultConfig(), source, cache.NewInMemoryCache(log), log)
}

func TestRegistryLoad(t *testing.T) {
	source := testutil.NewInMemoryTemplateSource()
	source.Add("classic", testutil.SimpleTemplateSource)
	source.Add("compact", "{{ .InvoiceNumber }}")

	registry := newTestRegistry(t, source)
	loaded := registry.Load(context.Background(), []string{"classic", "compact", "classic"})

	assert.Len(t, loaded, 2)
	assert.Contains(t, loaded, "classic")
	assert.Contains(t, loaded, "compact")
	// duplicate ids collapse to one fetch
	assert.Equal(t, 1, source.FetchCount("classic"))
}

func TestRegistryLoad_PerIDFailureIsNonFatal(t *testing.T) {
	source := testutil.NewInMemoryTemplateSource()
	source.Add("classic", testutil.SimpleTemplateSource)
	source.Fail("broken", ierr.NewError("boom").Mark(ierr.ErrTemplateFetchFailed))

	registry := newTestRegistry(t, source)
	loaded := registry.Load(context.Background(), []string{"classic", "broken", "missing"})

	assert.Len(t, loaded, 1)
	assert.Contains(t, loaded, "classic")
	assert.NotContains(t, loaded, "broken")
	assert.NotContains(t, loaded, "missing")
}

func TestRegistryLoad_CompileFailureIsNonFatal(t *testing.T) {
	source := testutil.NewInMemoryTemplateSource()
	source.Add("bad", "{{ .Unclosed")

	registry := newTestRegistry(t, source)
	loaded := registry.Load(context.Background(), []string{"bad"})

	assert.Empty(t, loaded)
	_, ok := registry.Get("bad")
	assert.False(t, ok)
}

func TestRegistryLoad_Idempotent(t *testing.T) {
	source := testutil.NewInMemoryTemplateSource()
	source.Add("classic", testutil.SimpleTemplateSource)

	registry := newTestRegistry(t, source)
	registry.Load(context.Background(), []string{"classic"})
	registry.Load(context.Background(), []string{"classic"})

	// cached after the first load, not refetched
	assert.Equal(t, 1, source.FetchCount("classic"))
}

func TestRegistryRender(t *testing.T) {
	source := testutil.NewInMemoryTemplateSource()
	source.Add("classic", testutil.SimpleTemplateSource)

	registry := newTestRegistry(t, source)
	registry.Load(context.Background(), []string{"classic"})

	doc := testutil.NewTestInvoice()
	markup, err := registry.Render("classic", doc)
	require.NoError(t, err)

	assert.True(t, strings.Contains(markup, doc.InvoiceNumber))
	assert.Contains(t, markup, "Ada Lovelace")
	assert.Contains(t, markup, "Standard widget")
	assert.Contains(t, markup, "$89.97")
}

func TestRegistryRender_TemplateNotFound(t *testing.T) {
	registry := newTestRegistry(t, testutil.NewInMemoryTemplateSource())

	_, err := registry.Render("missing", testutil.NewTestInvoice())
	require.Error(t, err)
	assert.True(t, ierr.IsTemplateNotFound(err))
}
