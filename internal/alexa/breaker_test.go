package alexa

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBreakerOpensAfterThreshold(t *testing.T) {
	b := NewBreaker(3, time.Hour)
	boom := errors.New("boom")
	fail := func() error { return boom }

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, b.Execute(fail), boom)
	}

	// Open: fails fast without invoking fn.
	called := false
	err := b.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrBreakerOpen)
	assert.False(t, called)
}

func TestBreakerSuccessResets(t *testing.T) {
	b := NewBreaker(3, time.Hour)
	boom := errors.New("boom")

	b.Execute(func() error { return boom })
	b.Execute(func() error { return boom })
	assert.NoError(t, b.Execute(func() error { return nil }))

	// The counter reset, so two more failures do not open it.
	b.Execute(func() error { return boom })
	b.Execute(func() error { return boom })
	assert.NoError(t, b.Execute(func() error { return nil }))
}

func TestBreakerHalfOpenProbe(t *testing.T) {
	b := NewBreaker(2, 10*time.Millisecond)
	boom := errors.New("boom")

	b.Execute(func() error { return boom })
	b.Execute(func() error { return boom })
	assert.ErrorIs(t, b.Execute(func() error { return nil }), ErrBreakerOpen)

	time.Sleep(20 * time.Millisecond)

	// After the cooldown a probe call goes through; success closes the
	// breaker again.
	assert.NoError(t, b.Execute(func() error { return nil }))
	assert.NoError(t, b.Execute(func() error { return nil }))
}
