// Package lookupfakes provides stand-in lookup adapters for tests and local
// development. They serve canned data, simulate network latency, and inject
// transient failures either deterministically (FailNext) or at a
// configurable probabilistic rate.
package lookupfakes

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"
)

// ErrTransient is the failure every fake injects. The pipeline must treat
// it like any other adapter error: retry once, then abort.
var ErrTransient = errors.New("simulated transient lookup failure")

// Option configures a fake adapter's flakiness.
type Option func(*flaky)

// WithLatency adds a fixed per-call delay.
func WithLatency(d time.Duration) Option {
	return func(f *flaky) {
		f.latency = d
	}
}

// WithFailureRate makes each call fail with the given probability, drawn
// from a seeded source so tests stay reproducible.
func WithFailureRate(rate float64, seed int64) Option {
	return func(f *flaky) {
		f.failureRate = rate
		f.rand = rand.New(rand.NewSource(seed))
	}
}

// flaky is the shared latency/failure simulator embedded in every fake.
type flaky struct {
	mu          sync.Mutex
	latency     time.Duration
	failureRate float64
	rand        *rand.Rand
	failNext    map[string]int
}

func newFlaky(options ...Option) flaky {
	f := flaky{failNext: make(map[string]int)}
	for _, opt := range options {
		opt(&f)
	}
	return f
}

// FailNext primes the next n calls of the named operation to fail.
func (f *flaky) FailNext(op string, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failNext[op] = n
}

// simulate waits out the configured latency (honouring ctx) and decides
// whether this call fails.
func (f *flaky) simulate(ctx context.Context, op string) error {
	if f.latency > 0 {
		timer := time.NewTimer(f.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if n := f.failNext[op]; n > 0 {
		f.failNext[op] = n - 1
		return ErrTransient
	}
	if f.rand != nil && f.rand.Float64() < f.failureRate {
		return ErrTransient
	}
	return nil
}
