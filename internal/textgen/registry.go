package textgen

import (
	"fmt"
	"slices"
	"sync"
)

// Registry manages text backends by provider name.
// It provides a thread-safe way to register and retrieve generators.
type Registry struct {
	generators map[string]Generator
	mu         sync.RWMutex
}

// NewRegistry creates a new generator registry.
func NewRegistry() *Registry {
	return &Registry{
		generators: make(map[string]Generator),
	}
}

// Register adds a generator to the registry.
// If a generator with the same name already exists, it will be replaced.
func (r *Registry) Register(g Generator) error {
	if g == nil {
		return fmt.Errorf("cannot register nil generator")
	}
	if g.Name() == "" {
		return fmt.Errorf("generator name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.generators[g.Name()] = g
	return nil
}

// Get retrieves a generator by provider name.
// Returns the generator and true if found, nil and false otherwise.
func (r *Registry) Get(name string) (Generator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.generators[name]
	return g, ok
}

// Lookup is Get with an error naming the registered providers.
func (r *Registry) Lookup(name string) (Generator, error) {
	g, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown text generator provider %q (registered: %v)", name, r.Names())
	}
	return g, nil
}

// Names returns the registered provider names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Count returns the number of registered generators.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.generators)
}
