package manifest

import (
	"fmt"
	"sort"
	"sync"
)

// Factory builds a component from its manifest parameters.
type Factory func(params map[string]any) (any, error)

// Registry resolves manifest component types to factories.
type Registry interface {
	Register(typeName string, factory Factory)
	New(typeName string, params map[string]any) (any, error)
	Types() []string
}

// reg is an in-memory registry safe for concurrent use.
type reg struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() Registry {
	return &reg{factories: make(map[string]Factory)}
}

// Register binds typeName to factory, replacing any earlier binding.
func (r *reg) Register(typeName string, factory Factory) {
	r.mu.Lock()
	r.factories[typeName] = factory
	r.mu.Unlock()
}

func (r *reg) New(typeName string, params map[string]any) (any, error) {
	r.mu.RLock()
	f := r.factories[typeName]
	r.mu.RUnlock()
	if f == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownComponentType, typeName)
	}
	return f(params)
}

// Types lists the registered type names in lexical order.
func (r *reg) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.factories))
	for name := range r.factories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
