package concurrent

import "sync/atomic"

// Latch is a one-shot flag. The first Conclude wins and every later call is
// a no-op, whichever goroutine it comes from.
type Latch struct {
	concluded atomic.Bool
}

// Conclude closes the latch and reports whether this call was the one that
// closed it.
func (l *Latch) Conclude() bool {
	return l.concluded.CompareAndSwap(false, true)
}

// Concluded reports whether the latch has been closed.
func (l *Latch) Concluded() bool {
	return l.concluded.Load()
}
