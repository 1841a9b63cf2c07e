package testutil

import (
	"context"
	"sync"

	ierr "github.com/billcraft/billcraft/internal/errors"
	"github.com/billcraft/billcraft/internal/template"
)

// InMemoryTemplateSource implements template.Source for testing
type InMemoryTemplateSource struct {
	mu         sync.Mutex
	templates  map[string]*template.RawTemplate
	failing    map[string]error
	fetchCount map[string]int
}

func NewInMemoryTemplateSource() *InMemoryTemplateSource {
	return &InMemoryTemplateSource{
		templates:  make(map[string]*template.RawTemplate),
		failing:    make(map[string]error),
		fetchCount: make(map[string]int),
	}
}

// Add registers template source under an id
func (s *InMemoryTemplateSource) Add(id, source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates[id] = &template.RawTemplate{ID: id, Name: id, Source: source}
}

// Fail makes fetches of an id return the given error
func (s *InMemoryTemplateSource) Fail(id string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing[id] = err
}

// FetchCount returns how many times an id was fetched
func (s *InMemoryTemplateSource) FetchCount(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetchCount[id]
}

func (s *InMemoryTemplateSource) Fetch(_ context.Context, id string) (*template.RawTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fetchCount[id]++

	if err, ok := s.failing[id]; ok {
		return nil, err
	}

	raw, ok := s.templates[id]
	if !ok {
		return nil, ierr.NewErrorf("template %s not found", id).
			Mark(ierr.ErrTemplateNotFound)
	}
	return raw, nil
}

// Clear removes all registered templates and failures
func (s *InMemoryTemplateSource) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates = make(map[string]*template.RawTemplate)
	s.failing = make(map[string]error)
	s.fetchCount = make(map[string]int)
}
