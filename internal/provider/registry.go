package provider

import (
	"fmt"
	"slices"
	"sync"

	"git.home.luguber.info/inful/siteimport/internal/foundation/errors"
)

// Factory creates a fresh provider for one import.
type Factory func() Provider

// Registry looks up providers by name.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under name. Names are unique.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("cannot register provider without a name")
	}
	if factory == nil {
		return fmt.Errorf("cannot register nil factory for provider %s", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("provider %s already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// New creates the provider registered under name.
func (r *Registry) New(name string) (Provider, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, errors.ConfigError(fmt.Sprintf("unknown provider %q", name)).
			WithContext("provider", name).
			WithContext("available", r.Names()).
			Build()
	}
	return factory(), nil
}

// Names returns the registered provider names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
