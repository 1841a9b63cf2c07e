package template

import (
	"context"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"

	"github.com/billcraft/billcraft/internal/cache"
	"github.com/billcraft/billcraft/internal/config"
	ierr "github.com/billcraft/billcraft/internal/errors"
	"github.com/billcraft/billcraft/internal/domain/invoice"
	"github.com/billcraft/billcraft/internal/logger"
)

// Registry fetches and compiles named visual templates and caches them for
// the process lifetime. Fetch-and-compile per id is idempotent and each id
// is written at most once, so reads need no locking beyond the cache's own.
type Registry interface {
	// Load fetches and compiles the given ids. A fetch or compile failure
	// for one id is non-fatal; that id is simply absent from the result.
	Load(ctx context.Context, ids []string) map[string]*Template

	// Get returns the cached template for an id
	Get(id string) (*Template, bool)

	// Render compiles markup for an invoice using the cached template and
	// fails with a template not found error when the id is absent
	Render(id string, doc *invoice.InvoiceDocument) (string, error)
}

type registry struct {
	source        Source
	cache         cache.Cache
	log           *logger.Logger
	fetchTimeout  time.Duration
	maxConcurrent int
}

func NewRegistry(cfg *config.Configuration, source Source, c cache.Cache, log *logger.Logger) Registry {
	return &registry{
		source:        source,
		cache:         c,
		log:           log,
		fetchTimeout:  cfg.Templates.FetchTimeout,
		maxConcurrent: cfg.Templates.MaxConcurrentFetches,
	}
}

func (r *registry) Load(ctx context.Context, ids []string) map[string]*Template {
	ids = lo.Uniq(ids)

	var mu sync.Mutex
	result := make(map[string]*Template, len(ids))

	p := pool.New().WithMaxGoroutines(r.maxConcurrent)
	for _, id := range ids {
		p.Go(func() {
			tmpl, err := r.loadOne(ctx, id)
			if err != nil {
				r.log.Warnw("skipping template", "template_id", id, "error", err)
				return
			}
			mu.Lock()
			result[id] = tmpl
			mu.Unlock()
		})
	}
	p.Wait()

	return result
}

// loadOne returns the cached template for id, fetching and compiling it on
// first use. First writer wins; a concurrent duplicate compile resolves to
// whichever entry landed in the cache.
func (r *registry) loadOne(ctx context.Context, id string) (*Template, error) {
	if tmpl, ok := r.Get(id); ok {
		return tmpl, nil
	}

	fetchCtx, cancel := context.WithTimeout(ctx, r.fetchTimeout)
	defer cancel()

	raw, err := r.source.Fetch(fetchCtx, id)
	if err != nil {
		return nil, err
	}

	tmpl, err := Compile(raw)
	if err != nil {
		return nil, err
	}

	if !r.cache.SetIfAbsent(ctx, cache.TemplateKey(id), tmpl, cache.DefaultExpiration) {
		if cached, ok := r.Get(id); ok {
			return cached, nil
		}
	}

	return tmpl, nil
}

func (r *registry) Get(id string) (*Template, bool) {
	value, ok := r.cache.Get(context.Background(), cache.TemplateKey(id))
	if !ok {
		return nil, false
	}
	tmpl, ok := value.(*Template)
	return tmpl, ok
}

func (r *registry) Render(id string, doc *invoice.InvoiceDocument) (string, error) {
	tmpl, ok := r.Get(id)
	if !ok {
		return "", ierr.NewErrorf("template %s is not loaded", id).
			WithHint("Load the template before rendering with it").
			Mark(ierr.ErrTemplateNotFound)
	}
	return tmpl.Render(doc)
}
