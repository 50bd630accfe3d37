package agent

import (
	"sort"
	"sync"

	"github.com/NoobProgrammer008/ai-agent-scraper/scrapers"
)

// Registry maps category names to connectors. Registration is
// last-write-wins; lookups after serving begins vastly outnumber writes,
// so reads take the shared lock.
type Registry struct {
	mu         sync.RWMutex
	connectors map[string]scrapers.Connector
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		connectors: make(map[string]scrapers.Connector),
	}
}

// Register binds a connector to a category name, replacing any previous
// binding.
func (r *Registry) Register(name string, conn scrapers.Connector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.connectors[name] = conn
}

// Resolve returns the connector registered for the category, or a
// NotFoundError carrying the currently registered names.
func (r *Registry) Resolve(category string) (scrapers.Connector, error) {
	r.mu.RLock()
	conn, ok := r.connectors[category]
	r.mu.RUnlock()
	if !ok {
		return nil, &NotFoundError{Category: category, Available: r.Names()}
	}
	return conn, nil
}

// Names returns the registered category names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.connectors))
	for name := range r.connectors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
