package concurrent

import (
	"context"

	"github.com/zeusync/entity/pkg/sequence"
	"golang.org/x/sync/errgroup"
)

// ForEach runs action for each element of the iterator in a separate goroutine.
// Every goroutine is started before any result is awaited. It waits for all of
// them and returns the first error encountered; once an action fails the
// context handed to the others is cancelled.
func ForEach[T any](ctx context.Context, i *sequence.Iterator[T], action func(context.Context, T) error) error {
	errGroup, groupCtx := errgroup.WithContext(ctx)
	next, stop := i.Pull()
	defer stop()

	for {
		value, valid := next()
		if !valid {
			break
		}

		errGroup.Go(func() error {
			return action(groupCtx, value)
		})
	}

	return errGroup.Wait()
}

// ForEachLimit behaves like ForEach but keeps at most limit actions in flight.
// A limit below one means no limit.
func ForEachLimit[T any](ctx context.Context, i *sequence.Iterator[T], limit int, action func(context.Context, T) error) error {
	errGroup, groupCtx := errgroup.WithContext(ctx)
	if limit > 0 {
		errGroup.SetLimit(limit)
	}
	next, stop := i.Pull()
	defer stop()

	for {
		value, valid := next()
		if !valid {
			break
		}
		if groupCtx.Err() != nil {
			break
		}

		errGroup.Go(func() error {
			return action(groupCtx, value)
		})
	}

	return errGroup.Wait()
}
