package resilience

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

// BreakerConfig tunes a Breaker. Zero values fall back to safe defaults.
type BreakerConfig struct {
	Name             string
	FailureThreshold int
	Cooldown         time.Duration
}

// Breaker fast-fails calls against a dependency that keeps erroring.
// After FailureThreshold consecutive failures the breaker opens for Cooldown;
// the first call after the cooldown acts as the probe.
type Breaker struct {
	mu        sync.Mutex
	cfg       BreakerConfig
	failures  int
	openUntil time.Time
}

func NewBreaker(cfg BreakerConfig) *Breaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 10 * time.Second
	}
	return &Breaker{cfg: cfg}
}

// skippedFailure carries an error through Execute without charging the
// breaker for it.
type skippedFailure struct{ err error }

func (e *skippedFailure) Error() string { return e.err.Error() }
func (e *skippedFailure) Unwrap() error { return e.err }

// SkipFailure marks err as caused by the caller rather than the protected
// dependency. Execute returns the original error and leaves the failure count
// untouched.
func SkipFailure(err error) error {
	if err == nil {
		return nil
	}
	return &skippedFailure{err: err}
}

// Execute runs fn unless the breaker is open. Context cancellation and errors
// wrapped with SkipFailure are not counted as dependency failures.
func (b *Breaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if err := b.before(); err != nil {
		return err
	}

	err := fn(ctx)
	var skipped *skippedFailure
	if errors.As(err, &skipped) {
		return skipped.err
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	b.after(err)
	return err
}

// Open reports whether calls are currently short-circuited.
func (b *Breaker) Open() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return time.Now().Before(b.openUntil)
}

func (b *Breaker) before() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	if now.Before(b.openUntil) {
		retry := b.openUntil.Sub(now).Round(time.Millisecond)
		return fmt.Errorf("%w: %s, retry in %s", ErrCircuitOpen, b.cfg.Name, retry)
	}

	if !b.openUntil.IsZero() {
		// Cooldown elapsed: allow this probe, but one more failure reopens.
		b.openUntil = time.Time{}
		b.failures = b.cfg.FailureThreshold - 1
	}
	return nil
}

func (b *Breaker) after(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err == nil {
		b.failures = 0
		b.openUntil = time.Time{}
		return
	}

	b.failures++
	if b.failures >= b.cfg.FailureThreshold {
		b.openUntil = time.Now().Add(b.cfg.Cooldown)
	}
}
