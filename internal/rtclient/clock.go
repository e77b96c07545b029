package rtclient

import (
	"sync"
	"time"
)

// Timer is a single-shot timer. Stop closes the channel, so a goroutine
// blocked on C always wakes up and can notice it is stale.
type Timer interface {
	C() <-chan time.Time
	Stop()
}

// Clock abstracts wall-clock time so backoff and heartbeat behavior can be
// tested without real waits.
type Clock interface {
	Now() time.Time
	NewTimer(d time.Duration) Timer
}

// NewClock returns a Clock backed by the time package.
func NewClock() Clock {
	return realClock{}
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) NewTimer(d time.Duration) Timer {
	rt := &realTimer{c: make(chan time.Time, 1)}
	rt.t = time.AfterFunc(d, rt.fire)
	return rt
}

type realTimer struct {
	c    chan time.Time
	t    *time.Timer
	once sync.Once
}

func (rt *realTimer) C() <-chan time.Time { return rt.c }

func (rt *realTimer) fire() {
	rt.once.Do(func() { rt.c <- time.Now() })
}

func (rt *realTimer) Stop() {
	rt.t.Stop()
	rt.once.Do(func() { close(rt.c) })
}
