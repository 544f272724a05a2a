package ecs

import "context"

// Completion is the awaitable conclusion of an asynchronous batch.
type Completion struct {
	done    chan struct{}
	results []any
	err     error
}

func newCompletion() *Completion {
	return &Completion{done: make(chan struct{})}
}

// resolve is only ever called once; the batch latch guarantees it.
func (c *Completion) resolve(err error, results ...any) {
	c.err = err
	c.results = results
	close(c.done)
}

// Done is closed when the batch concludes.
func (c *Completion) Done() <-chan struct{} {
	return c.done
}

// Result returns the conclusion. It is only meaningful after Done is closed.
func (c *Completion) Result() ([]any, error) {
	return c.results, c.err
}

// Await blocks until the batch concludes or ctx is done. Giving up on the
// wait does not stop the batch.
func (c *Completion) Await(ctx context.Context) ([]any, error) {
	select {
	case <-c.done:
		return c.results, c.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Go runs ForEachComponentAsync and returns its conclusion as a Completion.
func (c *Components) Go(iterator AsyncIterator, opts ...AsyncOption) *Completion {
	completion := newCompletion()
	c.ForEachComponentAsync(iterator, completion.resolve, opts...)
	return completion
}

// InvokeGo runs InvokeForEachComponentAsync and returns its conclusion as a
// Completion.
func (c *Components) InvokeGo(method string, args []any, opts ...AsyncOption) *Completion {
	completion := newCompletion()
	c.InvokeForEachComponentAsync(method, args, completion.resolve, opts...)
	return completion
}
