// Package parallel runs a fallible transform over a slice with a fixed
// bound on in-flight work.
package parallel

import (
	"sync"

	"github.com/panjf2000/ants/v2"
)

// ItemError records one failed item: its input index, the item itself,
// and the error the transform returned for it.
type ItemError[T any] struct {
	Index int
	Item  T
	Err   error
}

// Mapped is the outcome of Map. Results has one slot per input index; a
// nil slot means the transform failed for that item or skipped it. Every
// failure has a matching entry in Errors.
type Mapped[T, R any] struct {
	Results []*R
	Errors  []ItemError[T]
}

// Map runs fn over items with at most limit calls in flight at once.
//
// Results preserve input order regardless of completion order. fn may
// return (nil, nil) to skip an item: the slot stays nil and no error is
// recorded. A failing item never aborts the batch; Errors collects every
// failure with its original index and item.
//
// onDone, when non-nil, fires exactly once per finished item, after its
// slot is finalized, with a running completed count and the item.
// Invocations are serialized and follow completion order, not submission
// order. Limit values below 1 are treated as 1. An empty items slice
// returns at once without creating any workers.
func Map[T, R any](items []T, limit int, fn func(T) (*R, error), onDone func(completed int, item T)) Mapped[T, R] {
	m := Mapped[T, R]{Results: make([]*R, len(items))}
	if len(items) == 0 {
		return m
	}
	if limit < 1 {
		limit = 1
	}

	pool, err := ants.NewPool(limit)
	if err != nil {
		panic(err)
	}
	defer pool.Release()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		completed int
	)

	finalize := func(i int, item T, r *R, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			m.Errors = append(m.Errors, ItemError[T]{Index: i, Item: item, Err: err})
		} else {
			m.Results[i] = r
		}
		completed++
		if onDone != nil {
			onDone(completed, item)
		}
	}

	for i, item := range items {
		// Per-iteration copies: with the go directive at 1.21, range
		// variables are shared across iterations, and the submitted
		// closure must see this iteration's values.
		i, item := i, item
		wg.Add(1)
		// Submit blocks while limit tasks are running; that is what
		// enforces the in-flight bound.
		if err := pool.Submit(func() {
			defer wg.Done()
			r, err := fn(item)
			finalize(i, item, r, err)
		}); err != nil {
			wg.Done()
			finalize(i, item, nil, err)
		}
	}

	wg.Wait()
	return m
}
