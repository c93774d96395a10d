// Package parsers holds the compiled-in document parsing backends and the
// registry that answers capability queries.
package parsers

import (
	"context"
	"encoding/json"

	"github.com/simbadocs/docparse/internal/domain/model"
)

// Parser is a document parsing backend.
type Parser interface {
	Name() model.ParserName
	Description() string
	Parse(ctx context.Context, doc *model.Document) (json.RawMessage, error)
}

// Registry is the fixed set of parsing backends. The set is closed at
// construction; capability listings come back in registration order so the
// API surface is stable across calls.
type Registry struct {
	order  []model.ParserName
	byName map[model.ParserName]Parser
}

// NewRegistry builds a registry from the given backends. Later registrations
// of the same name win, matching last-write semantics for test doubles.
func NewRegistry(backends ...Parser) *Registry {
	r := &Registry{byName: make(map[model.ParserName]Parser, len(backends))}
	for _, p := range backends {
		if _, seen := r.byName[p.Name()]; !seen {
			r.order = append(r.order, p.Name())
		}
		r.byName[p.Name()] = p
	}
	return r
}

// NewDefaultRegistry returns the registry with the standard backends.
func NewDefaultRegistry() *Registry {
	return NewRegistry(NewMarkitdown(), NewDocling())
}

// List returns the capabilities of every registered backend in registration
// order.
func (r *Registry) List() []model.Capability {
	caps := make([]model.Capability, 0, len(r.order))
	for _, name := range r.order {
		caps = append(caps, model.Capability{
			Name:        name,
			Description: r.byName[name].Description(),
		})
	}
	return caps
}

// Supported reports whether a backend with the given name is registered.
func (r *Registry) Supported(name model.ParserName) bool {
	_, ok := r.byName[name]
	return ok
}

// Get returns the backend with the given name, or false when none is
// registered.
func (r *Registry) Get(name model.ParserName) (Parser, bool) {
	p, ok := r.byName[name]
	return p, ok
}
