package rtclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackoffSequence(t *testing.T) {
	b := backoff{base: time.Second, max: 30 * time.Second, maxAttempts: 10}

	expected := []time.Duration{
		1000 * time.Millisecond,
		2000 * time.Millisecond,
		4000 * time.Millisecond,
		8000 * time.Millisecond,
		16000 * time.Millisecond,
		30000 * time.Millisecond,
		30000 * time.Millisecond,
		30000 * time.Millisecond,
		30000 * time.Millisecond,
		30000 * time.Millisecond,
	}

	for i, want := range expected {
		delay, ok := b.next()
		require.True(t, ok, "attempt %d should be allowed", i)
		assert.Equal(t, want, delay, "attempt %d", i)
	}

	// The budget is spent after 10 attempts
	_, ok := b.next()
	assert.False(t, ok)
	assert.Equal(t, 10, b.attempts())
}

func TestBackoffReset(t *testing.T) {
	b := backoff{base: time.Second, max: 30 * time.Second, maxAttempts: 10}

	b.next()
	b.next()
	b.next()
	assert.Equal(t, 3, b.attempts())

	b.reset()
	assert.Equal(t, 0, b.attempts())

	delay, ok := b.next()
	assert.True(t, ok)
	assert.Equal(t, time.Second, delay)
}

func TestBackoffNoOverflowOnLargeAttempt(t *testing.T) {
	b := backoff{base: time.Second, max: 30 * time.Second, maxAttempts: 100}

	var last time.Duration
	for i := 0; i < 100; i++ {
		delay, ok := b.next()
		require.True(t, ok)
		require.Positive(t, delay)
		require.LessOrEqual(t, delay, 30*time.Second)
		last = delay
	}
	assert.Equal(t, 30*time.Second, last)
}
