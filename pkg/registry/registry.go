// Package registry names the bit-stream sources a session can run on.
package registry

import (
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/randomizer"
)

// Default source names.
const (
	PCG    = "pcg"
	ChaCha = "chacha"
)

// Registry manages the available sources.
type Registry struct {
	mu      sync.RWMutex
	sources map[string]randomizer.SourceFactory
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[string]randomizer.SourceFactory),
	}
}

// Default returns a registry holding the built-in sources.
func Default() *Registry {
	r := NewRegistry()
	r.Register(PCG, randomizer.NewPCGSource)
	r.Register(ChaCha, randomizer.NewChaChaSource)
	return r
}

// Register adds a source to the registry.
// If a source with the same name exists, it is overwritten.
func (r *Registry) Register(name string, factory randomizer.SourceFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[name] = factory
}

// Lookup returns the source registered as name.
func (r *Registry) Lookup(name string) (randomizer.SourceFactory, error) {
	r.mu.RLock()
	factory, ok := r.sources[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown source %q (want one of %v)", name, r.Names())
	}
	return factory, nil
}

// Names lists the registered sources in order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
