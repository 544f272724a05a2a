package ecs

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/zeusync/entity/pkg/concurrent"
	"github.com/zeusync/entity/pkg/observability/log"
	"github.com/zeusync/entity/pkg/sequence"
)

// Components maps component names to components for one entity, or for any
// other grouping the host chooses. It is safe for concurrent use. Callbacks
// and component methods are never called while the internal lock is held,
// so they may freely call back into the set.
type Components struct {
	mu         sync.RWMutex
	components map[string]any
	keys       []string
	logger     log.Log
}

// Option configures a Components value.
type Option func(*Components)

// WithLogger attaches a logger. The default discards everything.
func WithLogger(logger log.Log) Option {
	return func(c *Components) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns an empty component set.
func New(opts ...Option) *Components {
	c := &Components{
		components: make(map[string]any),
		logger:     log.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewComponents returns a set holding the initial components. Go maps have no
// order, so the initial names are enumerated in lexical order; components
// added later follow in insertion order.
func NewComponents(initial map[string]any, opts ...Option) *Components {
	c := New(opts...)
	names := make([]string, 0, len(initial))
	for name := range initial {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c.Add(name, initial[name])
	}
	return c
}

// Get returns the component stored under name.
func (c *Components) Get(name string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	component, ok := c.components[name]
	return component, ok
}

// Add stores component under name, replacing any previous component. A
// replaced component keeps its name's position in the enumeration order.
func (c *Components) Add(name string, component any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.components[name]; !exists {
		c.keys = append(c.keys, name)
	}
	c.components[name] = component
}

// Has reports whether a component is stored under name.
func (c *Components) Has(name string) bool {
	_, ok := c.Get(name)
	return ok
}

// Len returns the number of stored components.
func (c *Components) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.keys)
}

// Keys returns a snapshot of the component names in enumeration order.
func (c *Components) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.keys)
}

// Snapshot returns an iterator over a snapshot of the component names.
func (c *Components) Snapshot() *sequence.Iterator[string] {
	return sequence.From(c.Keys())
}

// resolve returns keys, or a snapshot of every name when keys is nil. An
// empty but non-nil slice selects nothing.
func (c *Components) resolve(keys []string) []string {
	if keys == nil {
		return c.Keys()
	}
	return keys
}

// ForEachComponent calls iterator for each named component in order. With no
// keys it walks a snapshot of all names taken before the first call. Names
// that are not present yield a nil component. A panicking iterator stops
// the walk.
func (c *Components) ForEachComponent(iterator func(component any, key string), keys ...string) {
	c.walk(c.resolve(keys), func(component any, key string) bool {
		iterator(component, key)
		return true
	})
}

// ForEach is an alias for ForEachComponent.
func (c *Components) ForEach(iterator func(component any, key string), keys ...string) {
	c.ForEachComponent(iterator, keys...)
}

func (c *Components) walk(keys []string, visit func(component any, key string) bool) {
	for _, key := range keys {
		component, _ := c.Get(key)
		if !visit(component, key) {
			return
		}
	}
}

// ForEachComponentParallel runs fn for every named component, each in its own
// goroutine, and returns the first error. The context passed to fn is
// cancelled as soon as any call fails.
func (c *Components) ForEachComponentParallel(ctx context.Context, fn func(ctx context.Context, key string, component any) error, keys ...string) error {
	return concurrent.ForEach(ctx, sequence.From(c.resolve(keys)), func(ctx context.Context, key string) error {
		component, _ := c.Get(key)
		return fn(ctx, key, component)
	})
}

// ForEachComponentParallelLimit behaves like ForEachComponentParallel but keeps
// at most limit calls of fn in flight. A limit below one means no limit.
func (c *Components) ForEachComponentParallelLimit(ctx context.Context, limit int, fn func(ctx context.Context, key string, component any) error, keys ...string) error {
	return concurrent.ForEachLimit(ctx, sequence.From(c.resolve(keys)), limit, func(ctx context.Context, key string) error {
		component, _ := c.Get(key)
		return fn(ctx, key, component)
	})
}
