package alexa

import (
	"errors"
	"sync"
	"time"
)

// ErrBreakerOpen is returned while the breaker is open: calls fail fast
// instead of hitting an endpoint that keeps failing.
var ErrBreakerOpen = errors.New("circuit breaker open")

const (
	breakerThreshold = 5
	breakerCooldown  = 30 * time.Second
)

// Breaker is a consecutive-failure circuit breaker. After threshold
// consecutive failures it opens for cooldown; the first call after the
// cooldown probes the endpoint again.
type Breaker struct {
	mu        sync.Mutex
	threshold int
	cooldown  time.Duration
	failures  int
	openedAt  time.Time
}

// NewBreaker creates a breaker. Non-positive arguments select the defaults.
func NewBreaker(threshold int, cooldown time.Duration) *Breaker {
	if threshold <= 0 {
		threshold = breakerThreshold
	}
	if cooldown <= 0 {
		cooldown = breakerCooldown
	}
	return &Breaker{threshold: threshold, cooldown: cooldown}
}

// Execute runs fn unless the breaker is open, recording the outcome.
func (b *Breaker) Execute(fn func() error) error {
	if err := b.allow(); err != nil {
		return err
	}
	err := fn()
	b.record(err)
	return err
}

func (b *Breaker) allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failures < b.threshold {
		return nil
	}
	if time.Since(b.openedAt) >= b.cooldown {
		// Half-open: let one call through to probe.
		b.failures = b.threshold - 1
		return nil
	}
	return ErrBreakerOpen
}

func (b *Breaker) record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err == nil {
		b.failures = 0
		return
	}
	b.failures++
	if b.failures >= b.threshold {
		b.openedAt = time.Now()
	}
}
