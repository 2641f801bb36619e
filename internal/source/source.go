// Package source defines the capability every job board adapter implements
// and a registry the aggregator fans out over.
package source

import (
	"context"

	"jobcrawler/internal/domain"
)

// Request carries one search the adapters execute.
type Request struct {
	Query      string
	Location   string
	MaxResults int
}

// Source captures a single board's fetch-and-parse strategy. Fetch returns
// whatever it managed to collect; an error never carries partial blame to
// other sources — callers log it and move on.
type Source interface {
	Name() domain.SourceName
	Fetch(ctx context.Context, req Request) ([]domain.JobPosting, error)
}

// Registry keeps sources in registration order.
type Registry struct {
	sources []Source
	byName  map[domain.SourceName]Source
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: map[domain.SourceName]Source{}}
}

// Register adds a source; registering the same name twice replaces it.
func (r *Registry) Register(s Source) {
	if _, exists := r.byName[s.Name()]; exists {
		for i, known := range r.sources {
			if known.Name() == s.Name() {
				r.sources[i] = s
				break
			}
		}
	} else {
		r.sources = append(r.sources, s)
	}
	r.byName[s.Name()] = s
}

// All returns the registered sources in registration order.
func (r *Registry) All() []Source {
	out := make([]Source, len(r.sources))
	copy(out, r.sources)
	return out
}
