package usecase

import (
	"context"
	"sync"
	"time"
)

// Phase is a resource collection's lifecycle state:
// idle -> loading -> {ready, error}; ready and error both re-enter loading
// on the next fetch. No other states exist.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseError:
		return "error"
	default:
		return "idle"
	}
}

// Sleeper waits for d or until ctx is cancelled. Injected so tests run
// without real delays.
type Sleeper func(ctx context.Context, d time.Duration) error

func waitSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// FetchPolicy bounds the retry loop every list fetch runs under.
type FetchPolicy struct {
	Retries int           // retries after the first attempt
	Delay   time.Duration // pause between attempts
	Sleep   Sleeper
}

func DefaultFetchPolicy(retries int, delay time.Duration) FetchPolicy {
	return FetchPolicy{Retries: retries, Delay: delay, Sleep: waitSleep}
}

// fetchWithRetry runs load up to 1+Retries times. Intermediate failures are
// silent; the last error is returned after exhaustion. Cancellation during
// the pause aborts with the context's error.
func fetchWithRetry[T any](ctx context.Context, p FetchPolicy, load func(context.Context) ([]T, error)) ([]T, error) {
	sleep := p.Sleep
	if sleep == nil {
		sleep = waitSleep
	}

	var lastErr error
	for attempt := 0; ; attempt++ {
		items, err := load(ctx)
		if err == nil {
			return items, nil
		}
		lastErr = err

		if attempt >= p.Retries {
			return nil, lastErr
		}
		if err := sleep(ctx, p.Delay); err != nil {
			return nil, err
		}
	}
}

// collection is a guarded list with phase tracking and the reconciliation
// moves the mutators use (prepend / replace-by-id / remove-by-id).
type collection[T any] struct {
	mu     sync.Mutex
	id     func(T) string
	phase  Phase
	prev   Phase
	errMsg string
	items  []T
}

func newCollection[T any](id func(T) string) collection[T] {
	return collection[T]{id: id}
}

func (c *collection[T]) beginLoad() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prev = c.phase
	c.phase = PhaseLoading
}

// cancelLoad restores the pre-loading phase; used on teardown so an
// unmounted view never flips to error.
func (c *collection[T]) cancelLoad() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == PhaseLoading {
		c.phase = c.prev
	}
}

func (c *collection[T]) finishOK(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
	c.phase = PhaseReady
	c.errMsg = ""
}

// finishErr records the failure; prior items stay untouched.
func (c *collection[T]) finishErr(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phase = PhaseError
	c.errMsg = msg
}

func (c *collection[T]) snapshot() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *collection[T]) state() (Phase, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase, c.errMsg
}

func (c *collection[T]) prepend(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append([]T{item}, c.items...)
}

func (c *collection[T]) replace(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.id(item)
	for i := range c.items {
		if c.id(c.items[i]) == key {
			c.items[i] = item
			return
		}
	}
}

func (c *collection[T]) remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.id(c.items[i]) == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

func (c *collection[T]) find(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.id(c.items[i]) == id {
			return c.items[i], true
		}
	}
	var zero T
	return zero, false
}
