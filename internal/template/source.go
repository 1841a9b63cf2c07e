package template

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	ierr "github.com/billcraft/billcraft/internal/errors"
	"github.com/billcraft/billcraft/internal/httpclient"
)

// RawTemplate is un-compiled template source as delivered by a Source
type RawTemplate struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Source   string `json:"source"`
}

// Source is a read-only template source. Absence of a template is a
// normal, handled outcome and is reported as a not found error.
type Source interface {
	Fetch(ctx context.Context, id string) (*RawTemplate, error)
}

// HTTPSource fetches template source from a remote endpoint at
// <base_url>/<id>. Responses are either a JSON envelope with name,
// category and source fields, or raw template text.
type HTTPSource struct {
	baseURL string
	client  httpclient.Client
}

func NewHTTPSource(baseURL string, client httpclient.Client) Source {
	return &HTTPSource{
		baseURL: baseURL,
		client:  client,
	}
}

func (s *HTTPSource) Fetch(ctx context.Context, id string) (*RawTemplate, error) {
	resp, err := s.client.Send(ctx, &httpclient.Request{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("%s/%s", s.baseURL, id),
	})
	if err != nil {
		if httpErr, ok := httpclient.IsHTTPError(err); ok && httpErr.StatusCode == http.StatusNotFound {
			return nil, ierr.NewErrorf("template %s not found at source", id).
				Mark(ierr.ErrTemplateNotFound)
		}
		return nil, ierr.WithError(err).
			WithMessagef("failed to fetch template %s", id).
			Mark(ierr.ErrTemplateFetchFailed)
	}

	raw := &RawTemplate{ID: id}
	if err := json.Unmarshal(resp.Body, raw); err != nil {
		// raw template text, no envelope
		raw.Source = string(resp.Body)
	}
	raw.ID = id

	if raw.Source == "" {
		return nil, ierr.NewErrorf("template %s has empty source", id).
			Mark(ierr.ErrTemplateFetchFailed)
	}

	return raw, nil
}

// DirSource serves bundled template assets from a local directory,
// one <id>.tmpl file per template.
type DirSource struct {
	dir string
}

func NewDirSource(dir string) Source {
	return &DirSource{dir: dir}
}

func (s *DirSource) Fetch(_ context.Context, id string) (*RawTemplate, error) {
	path := filepath.Join(s.dir, id+".tmpl")
	body, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ierr.NewErrorf("template %s not found in %s", id, s.dir).
				Mark(ierr.ErrTemplateNotFound)
		}
		return nil, ierr.WithError(err).
			WithMessagef("failed to read template %s", id).
			Mark(ierr.ErrTemplateFetchFailed)
	}

	return &RawTemplate{
		ID:     id,
		Name:   id,
		Source: string(body),
	}, nil
}
