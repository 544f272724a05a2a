package ecs

import (
	"reflect"
	"slices"
	"sync"

	"github.com/zeusync/entity/pkg/concurrent"
	"github.com/zeusync/entity/pkg/observability/log"
)

// Finish is the continuation an asynchronous iterator calls once its
// component is done. A non-nil err concludes the whole batch with that error.
// The results passed by the completion that drains the batch are handed to
// the batch callback.
type Finish func(err error, results ...any)

// Callback receives the single conclusion of an asynchronous batch: either
// the first reported error, or nil and the results of the last completion.
type Callback func(err error, results ...any)

// AsyncIterator starts the work for one component and returns without
// waiting for it. It must arrange for finish to be called, from any
// goroutine, once the work is done.
type AsyncIterator func(component any, finish Finish)

type asyncConfig struct {
	list   *KeyList
	ledger Ledger
}

// AsyncOption configures one asynchronous enumeration.
type AsyncOption func(*asyncConfig)

// WithKeys limits the enumeration to keys, in that order. The slice is copied.
// An empty list concludes the batch immediately.
func WithKeys(keys ...string) AsyncOption {
	return func(cfg *asyncConfig) {
		list := make(KeyList, len(keys))
		copy(list, keys)
		cfg.list = &list
	}
}

// WithKeyList uses list as the batch's shared ledger. The list is read at
// dispatch and then shrinks in place as components finish. With the
// positional ledger it shows exactly which entries each completion removed.
func WithKeyList(list *KeyList) AsyncOption {
	return func(cfg *asyncConfig) {
		if list != nil {
			cfg.list = list
		}
	}
}

// WithLedger selects the completion bookkeeping. LedgerStable is the default.
func WithLedger(mode Ledger) AsyncOption {
	return func(cfg *asyncConfig) {
		cfg.ledger = mode
	}
}

// ForEachComponentAsync calls iterator for every named component, all of them
// before any is awaited, and concludes once through callback. With no key
// option it enumerates a snapshot of all names.
//
// Iterators run in the calling goroutine in key order. The batch concludes
// with the first error passed to a Finish, or with nil once every component
// has finished. Nothing observable happens after the conclusion: later Finish
// calls are dropped. Every key is still dispatched, and work already started
// is not interrupted. A batch whose components never all finish never
// concludes.
func (c *Components) ForEachComponentAsync(iterator AsyncIterator, callback Callback, opts ...AsyncOption) {
	cfg := asyncConfig{ledger: LedgerStable}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.list == nil {
		snapshot := KeyList(c.Keys())
		cfg.list = &snapshot
	}
	if callback == nil {
		callback = func(error, ...any) {}
	}

	keys := slices.Clone(*cfg.list)
	if len(keys) == 0 {
		callback(nil)
		return
	}

	b := &batch{
		ledger:   newLedger(cfg.ledger, cfg.list),
		callback: callback,
		logger:   c.logger,
	}
	c.logger.Debug("dispatching components",
		log.Strings("keys", keys),
		log.String("ledger", cfg.ledger.String()),
	)

	if cfg.ledger == LedgerPositional {
		b.dispatchLive(c, iterator, cfg.list)
		return
	}
	for token, key := range keys {
		component, _ := c.Get(key)
		iterator(component, b.finisher(token, key))
	}
}

// dispatchLive walks the shared list itself rather than a copy, so entries
// spliced out by synchronous completions are skipped, as a JavaScript
// forEach over a shrinking array would.
func (b *batch) dispatchLive(c *Components, iterator AsyncIterator, list *KeyList) {
	for index := 0; ; index++ {
		b.mu.Lock()
		if index >= len(*list) {
			b.mu.Unlock()
			return
		}
		key := (*list)[index]
		b.mu.Unlock()

		component, _ := c.Get(key)
		iterator(component, b.finisher(index, key))
	}
}

// InvokeForEachComponentAsync calls method on every named component, passing
// args followed by that component's Finish as the last argument. The
// method's final parameter may be a Finish, another func type with the same
// signature, or a func(error). Components without the method finish
// immediately without error. The args slice itself is never modified.
func (c *Components) InvokeForEachComponentAsync(method string, args []any, callback Callback, opts ...AsyncOption) {
	c.ForEachComponentAsync(func(component any, finish Finish) {
		c.invokeAsync(component, method, args, finish)
	}, callback, opts...)
}

var errorCallbackType = reflect.TypeOf(func(error) {})

func (c *Components) invokeAsync(component any, method string, args []any, finish Finish) {
	m, ok := lookupMethod(component, method)
	if !ok {
		c.logger.Debug("component skipped", log.String("method", method))
		finish(nil)
		return
	}

	callArgs := make([]any, 0, len(args)+1)
	callArgs = append(callArgs, args...)
	if target := paramType(m.Type(), len(args)); target == errorCallbackType {
		callArgs = append(callArgs, func(err error) { finish(err) })
	} else {
		callArgs = append(callArgs, finish)
	}

	if _, err := call(m, callArgs); err != nil {
		finish(&MethodError{Method: method, Err: err})
	}
}

// batch is the state shared by every Finish of one asynchronous enumeration.
type batch struct {
	mu       sync.Mutex
	latch    concurrent.Latch
	ledger   ledger
	callback Callback
	logger   log.Log
}

func (b *batch) finisher(token int, key string) Finish {
	return func(err error, results ...any) {
		if b.latch.Concluded() {
			b.logger.Debug("finish after batch concluded", log.String("component", key), log.Error(err))
			return
		}

		if err != nil {
			if b.latch.Conclude() {
				b.logger.Debug("batch failed", log.String("component", key), log.Error(err))
				b.callback(err)
			}
			return
		}

		b.mu.Lock()
		if b.latch.Concluded() {
			b.mu.Unlock()
			return
		}
		drained, counted := b.ledger.complete(token)
		b.mu.Unlock()

		if !counted {
			b.logger.Warn("duplicate finish ignored", log.String("component", key))
			return
		}
		if drained && b.latch.Conclude() {
			b.logger.Debug("batch completed", log.String("last", key))
			b.callback(nil, results...)
		}
	}
}
