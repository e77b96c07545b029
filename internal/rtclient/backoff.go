package rtclient

import "time"

// backoff produces the bounded exponential reconnect schedule:
// base, base*2, base*4, ... capped at max, stopping after maxAttempts.
type backoff struct {
	base        time.Duration
	max         time.Duration
	maxAttempts int

	attempt int
}

// next returns the delay for the current attempt and advances the counter.
// The second return is false once the attempt budget is exhausted.
func (b *backoff) next() (time.Duration, bool) {
	if b.attempt >= b.maxAttempts {
		return 0, false
	}

	delay := b.max
	// Shifting beyond 62 bits would overflow; the cap applies long before.
	if b.attempt < 62 {
		if d := b.base << uint(b.attempt); d < b.max {
			delay = d
		}
	}

	b.attempt++
	return delay, true
}

func (b *backoff) reset() {
	b.attempt = 0
}

func (b *backoff) attempts() int {
	return b.attempt
}
