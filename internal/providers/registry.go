package providers

import (
	"fmt"
	"sort"
	"sync"

	"github.com/jobscout-dev/jobscout/internal/core/domain"
	"github.com/jobscout-dev/jobscout/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ProviderRegistry = (*Registry)(nil)

// Registry holds the enabled source providers. Providers are registered
// during wiring; a provider whose credentials are absent is simply never
// registered, so the enabled set is exactly what discovery fans out to.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]driven.SourceProvider
	order     []string
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]driven.SourceProvider),
	}
}

// Register adds a provider. Registering the same name twice replaces
// the earlier entry and keeps its position.
func (r *Registry) Register(p driven.SourceProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.providers[p.Name()]; !exists {
		r.order = append(r.order, p.Name())
	}
	r.providers[p.Name()] = p
}

// Enabled returns all registered providers in registration order.
func (r *Registry) Enabled() []driven.SourceProvider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]driven.SourceProvider, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.providers[name])
	}
	return out
}

// Get returns a provider by name.
func (r *Registry) Get(name string) (driven.SourceProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: provider %q", domain.ErrNotFound, name)
	}
	return p, nil
}

// Names returns the registered provider names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	sort.Strings(names)
	return names
}
