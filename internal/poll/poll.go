// Package poll repeats a read-only API call on an adaptive interval: the
// wait grows while nothing changes and resets as soon as something does.
package poll

import (
	"context"
	"math/rand/v2"
	"time"
)

const (
	InitialInterval   = 2 * time.Second
	MaxBackoff        = 30 * time.Second
	BackoffMultiplier = 1.5
	JitterFactor      = 0.3
)

// Backoff tracks the current polling interval.
type Backoff struct {
	initial time.Duration
	max     time.Duration
	current time.Duration
}

// NewBackoff returns a Backoff starting at initial and capped at max.
// Zero values fall back to InitialInterval and MaxBackoff.
func NewBackoff(initial, max time.Duration) *Backoff {
	if initial <= 0 {
		initial = InitialInterval
	}
	if max <= 0 {
		max = MaxBackoff
	}
	if max < initial {
		max = initial
	}
	return &Backoff{initial: initial, max: max, current: initial}
}

// Current returns the interval without jitter.
func (b *Backoff) Current() time.Duration {
	return b.current
}

// Reset returns to the initial interval.
func (b *Backoff) Reset() {
	b.current = b.initial
}

// Grow lengthens the interval by BackoffMultiplier, up to the cap.
func (b *Backoff) Grow() {
	next := time.Duration(float64(b.current) * BackoffMultiplier)
	if next > b.max {
		next = b.max
	}
	b.current = next
}

// Next returns the time to wait before the next poll, with jitter added so
// that many pollers do not line up.
func (b *Backoff) Next() time.Duration {
	jitter := time.Duration(rand.Float64() * JitterFactor * float64(b.current))
	return b.current + jitter
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Until calls check until it reports done, returns an error, or ctx ends.
// The first check runs immediately.
func Until(ctx context.Context, b *Backoff, check func(ctx context.Context) (bool, error)) error {
	for {
		done, err := check(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if err := sleep(ctx, b.Next()); err != nil {
			return err
		}
		b.Grow()
	}
}

// Watcher reports items that a fetch returns for the first time.
type Watcher[T any] struct {
	fetch   func(ctx context.Context) ([]T, error)
	key     func(T) string
	backoff *Backoff
	seen    map[string]struct{}

	// OnError is called with fetch errors. Polling continues after it
	// returns. Nil ignores them.
	OnError func(error)
}

// NewWatcher returns a Watcher over fetch, identifying items by key.
func NewWatcher[T any](fetch func(ctx context.Context) ([]T, error), key func(T) string, b *Backoff) *Watcher[T] {
	return &Watcher[T]{
		fetch:   fetch,
		key:     key,
		backoff: b,
		seen:    make(map[string]struct{}),
	}
}

// Poll fetches once and returns the unseen items. The interval resets when
// there are new items and grows when there are none.
func (w *Watcher[T]) Poll(ctx context.Context) ([]T, error) {
	items, err := w.fetch(ctx)
	if err != nil {
		return nil, err
	}

	var fresh []T
	for _, item := range items {
		k := w.key(item)
		if _, ok := w.seen[k]; ok {
			continue
		}
		w.seen[k] = struct{}{}
		fresh = append(fresh, item)
	}

	if len(fresh) > 0 {
		w.backoff.Reset()
	} else {
		w.backoff.Grow()
	}
	return fresh, nil
}

// Run polls until ctx ends or handle returns false. It returns ctx.Err()
// when the context ends and nil when handle stops it.
func (w *Watcher[T]) Run(ctx context.Context, handle func(T) bool) error {
	for {
		items, err := w.Poll(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if w.OnError != nil {
				w.OnError(err)
			}
		}
		for _, item := range items {
			if !handle(item) {
				return nil
			}
		}
		if err := sleep(ctx, w.backoff.Next()); err != nil {
			return err
		}
	}
}
