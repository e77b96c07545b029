package rtclient

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktrack-api/internal/realtime"
)

// testLogger implements log.Logger for testing
type testLogger struct{}

func (m *testLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *testLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *testLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *testLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *testLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *testLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *testLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *testLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *testLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Panicf(ctx context.Context, template string, arg ...any)  {}
func (m *testLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}

// --- Fake clock ---

type fakeTimer struct {
	c        chan time.Time
	deadline time.Time
	delay    time.Duration
	once     sync.Once
}

func (t *fakeTimer) C() <-chan time.Time { return t.c }

func (t *fakeTimer) Stop() {
	t.once.Do(func() { close(t.c) })
}

func (t *fakeTimer) fire(now time.Time) {
	t.once.Do(func() { t.c <- now })
}

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1700000000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) NewTimer(d time.Duration) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{c: make(chan time.Time, 1), deadline: c.now.Add(d), delay: d}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward and fires every due timer.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now
	var due []*fakeTimer
	remaining := c.timers[:0]
	for _, t := range c.timers {
		if !t.deadline.After(now) {
			due = append(due, t)
		} else {
			remaining = append(remaining, t)
		}
	}
	c.timers = remaining
	c.mu.Unlock()

	for _, t := range due {
		t.fire(now)
	}
}

// pendingDelays returns the delays of timers that have not fired yet.
func (c *fakeClock) pendingDelays() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	delays := make([]time.Duration, 0, len(c.timers))
	for _, t := range c.timers {
		delays = append(delays, t.delay)
	}
	return delays
}

// --- Fake transport ---

const (
	replyOK    = "ok"
	replyError = "error"
	replyNone  = "none"
)

type fakeConn struct {
	in        chan []byte
	closed    chan struct{}
	closeOnce sync.Once
	authReply string

	mu         sync.Mutex
	pings      int
	failWrites bool
}

func newFakeConn(authReply string) *fakeConn {
	return &fakeConn{
		in:        make(chan []byte, 16),
		closed:    make(chan struct{}),
		authReply: authReply,
	}
}

func (c *fakeConn) ReadMessage() ([]byte, error) {
	select {
	case data := <-c.in:
		return data, nil
	case <-c.closed:
		return nil, errors.New("connection closed")
	}
}

func (c *fakeConn) WriteMessage(data []byte) error {
	c.mu.Lock()
	if c.failWrites {
		c.mu.Unlock()
		return errors.New("write failed")
	}
	c.mu.Unlock()

	var msg realtime.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return err
	}

	switch msg.Event {
	case realtime.EventAuthenticate:
		switch c.authReply {
		case replyOK:
			c.push(realtime.EventAuthenticated, realtime.AuthenticatedPayload{Success: true})
		case replyError:
			c.push(realtime.EventAuthenticationError, realtime.AuthErrorPayload{Error: "invalid or expired token"})
		}
	case realtime.EventPing:
		c.mu.Lock()
		c.pings++
		c.mu.Unlock()
		c.push(realtime.EventPong, nil)
	}
	return nil
}

func (c *fakeConn) push(event string, data interface{}) {
	msg, _ := realtime.NewMessage(event, data)
	select {
	case c.in <- msg:
	case <-c.closed:
	}
}

func (c *fakeConn) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

func (c *fakeConn) pingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pings
}

func (c *fakeConn) setFailWrites(v bool) {
	c.mu.Lock()
	c.failWrites = v
	c.mu.Unlock()
}

// fakeDialer returns scripted results; the last entry repeats forever.
type fakeDialer struct {
	mu     sync.Mutex
	script []string // replyOK, replyError, replyNone, or "dial_error"
	dials  int
	conns  []*fakeConn
}

func (d *fakeDialer) Dial(ctx context.Context, url string) (Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	step := d.script[len(d.script)-1]
	if d.dials < len(d.script) {
		step = d.script[d.dials]
	}
	d.dials++

	if step == "dial_error" {
		return nil, errors.New("connection refused")
	}
	conn := newFakeConn(step)
	d.conns = append(d.conns, conn)
	return conn, nil
}

func (d *fakeDialer) dialCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dials
}

func (d *fakeDialer) lastConn() *fakeConn {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.conns) == 0 {
		return nil
	}
	return d.conns[len(d.conns)-1]
}

type staticTokens struct{}

func (staticTokens) Token() (string, error) { return "token_ivan", nil }

// --- Helpers ---

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func newTestController(dialer *fakeDialer, clock *fakeClock) *Controller {
	return New(&testLogger{}, dialer, staticTokens{}, clock, Config{
		URL:               "ws://localhost/ws",
		HeartbeatInterval: 30 * time.Second,
		BaseDelay:         time.Second,
		MaxDelay:          30 * time.Second,
		MaxAttempts:       10,
	}, Handlers{})
}

// --- Tests ---

func TestConnectAuthenticates(t *testing.T) {
	dialer := &fakeDialer{script: []string{replyOK}}
	clock := newFakeClock()
	ctrl := newTestController(dialer, clock)
	defer ctrl.Disconnect()

	ctrl.Connect()
	waitFor(t, ctrl.IsConnected, "controller never reached Connected")

	status := ctrl.Status()
	assert.Equal(t, StateConnected, status.State)
	assert.Equal(t, 0, status.Attempts)
	assert.Equal(t, 1, dialer.dialCount())
}

func TestReconnectBackoffOnDialFailure(t *testing.T) {
	dialer := &fakeDialer{script: []string{"dial_error"}}
	clock := newFakeClock()
	ctrl := newTestController(dialer, clock)
	defer ctrl.Disconnect()

	ctrl.Connect()

	// First failure schedules a 1s retry, second a 2s retry, third 4s
	expected := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}
	for i, want := range expected {
		dials := i + 1
		waitFor(t, func() bool { return dialer.dialCount() == dials }, "dial did not happen")
		waitFor(t, func() bool {
			delays := clock.pendingDelays()
			return len(delays) == 1 && delays[0] == want
		}, "retry timer not scheduled")
		assert.Equal(t, i+1, ctrl.Status().Attempts)

		clock.Advance(want)
	}
}

func TestGivesUpAfterMaxAttempts(t *testing.T) {
	dialer := &fakeDialer{script: []string{"dial_error"}}
	clock := newFakeClock()
	ctrl := New(&testLogger{}, dialer, staticTokens{}, clock, Config{
		URL:         "ws://localhost/ws",
		BaseDelay:   time.Second,
		MaxDelay:    30 * time.Second,
		MaxAttempts: 3,
	}, Handlers{})
	defer ctrl.Disconnect()

	ctrl.Connect()

	for i := 0; i < 3; i++ {
		dials := i + 1
		waitFor(t, func() bool { return dialer.dialCount() == dials }, "dial did not happen")
		waitFor(t, func() bool { return len(clock.pendingDelays()) == 1 }, "retry timer not scheduled")
		clock.Advance(30 * time.Second)
	}

	// The fourth failure exhausts the budget
	waitFor(t, func() bool { return ctrl.Status().State == StateFailed }, "controller never failed")
	assert.Empty(t, clock.pendingDelays())

	dials := dialer.dialCount()
	clock.Advance(5 * time.Minute)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, dials, dialer.dialCount(), "no dial may happen after giving up")

	// Connect is a no-op in Failed; only ForceReconnect recovers
	ctrl.Connect()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, dials, dialer.dialCount())
}

func TestSuccessResetsAttempts(t *testing.T) {
	dialer := &fakeDialer{script: []string{"dial_error", "dial_error", replyOK}}
	clock := newFakeClock()
	ctrl := newTestController(dialer, clock)
	defer ctrl.Disconnect()

	ctrl.Connect()

	waitFor(t, func() bool { return dialer.dialCount() == 1 }, "first dial did not happen")
	waitFor(t, func() bool { return len(clock.pendingDelays()) == 1 }, "first retry not scheduled")
	assert.Equal(t, 1, ctrl.Status().Attempts)
	clock.Advance(time.Second)

	waitFor(t, func() bool { return dialer.dialCount() == 2 }, "second dial did not happen")
	waitFor(t, func() bool { return len(clock.pendingDelays()) == 1 }, "second retry not scheduled")
	assert.Equal(t, 2, ctrl.Status().Attempts)
	clock.Advance(2 * time.Second)

	waitFor(t, ctrl.IsConnected, "controller never reached Connected")
	assert.Equal(t, 0, ctrl.Status().Attempts)
}

func TestExplicitDisconnectCancelsPendingReconnect(t *testing.T) {
	dialer := &fakeDialer{script: []string{"dial_error"}}
	clock := newFakeClock()
	ctrl := newTestController(dialer, clock)

	ctrl.Connect()
	waitFor(t, func() bool { return dialer.dialCount() == 1 }, "dial did not happen")
	waitFor(t, func() bool { return len(clock.pendingDelays()) == 1 }, "retry timer not scheduled")

	ctrl.Disconnect()
	assert.Equal(t, StateDisconnected, ctrl.Status().State)

	clock.Advance(time.Minute)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, dialer.dialCount(), "no reconnect may fire after explicit disconnect")
}

func TestAuthErrorKeepsBackoffAdvancing(t *testing.T) {
	dialer := &fakeDialer{script: []string{replyError}}
	clock := newFakeClock()
	ctrl := newTestController(dialer, clock)
	defer ctrl.Disconnect()

	ctrl.Connect()

	// An authentication error is not a successful connection: the attempt
	// counter keeps advancing and the state never reaches Connected
	waitFor(t, func() bool { return dialer.dialCount() == 1 }, "first dial did not happen")
	waitFor(t, func() bool { return ctrl.Status().Attempts == 1 }, "attempt not counted")
	waitFor(t, func() bool {
		delays := clock.pendingDelays()
		return len(delays) == 1 && delays[0] == time.Second
	}, "first retry not scheduled")
	clock.Advance(time.Second)

	waitFor(t, func() bool { return dialer.dialCount() == 2 }, "second dial did not happen")
	waitFor(t, func() bool { return ctrl.Status().Attempts == 2 }, "second attempt not counted")
	assert.False(t, ctrl.IsConnected())
}

func TestAuthErrorSurfacedDistinctFromTransportLoss(t *testing.T) {
	dialer := &fakeDialer{script: []string{replyError}}
	clock := newFakeClock()

	var mu sync.Mutex
	var authErrs []error

	ctrl := New(&testLogger{}, dialer, staticTokens{}, clock, Config{
		URL:               "ws://localhost/ws",
		HeartbeatInterval: 30 * time.Second,
		BaseDelay:         time.Second,
		MaxDelay:          30 * time.Second,
		MaxAttempts:       10,
	}, Handlers{
		OnAuthError: func(err error) {
			mu.Lock()
			authErrs = append(authErrs, err)
			mu.Unlock()
		},
	})
	defer ctrl.Disconnect()

	ctrl.Connect()

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(authErrs) == 1
	}, "auth rejection never surfaced")

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, errors.Is(authErrs[0], ErrAuthRejected))
	assert.Contains(t, authErrs[0].Error(), "invalid or expired token")
}

func TestForceReconnectResetsCounter(t *testing.T) {
	dialer := &fakeDialer{script: []string{"dial_error", "dial_error", replyOK}}
	clock := newFakeClock()
	ctrl := newTestController(dialer, clock)
	defer ctrl.Disconnect()

	ctrl.Connect()
	waitFor(t, func() bool { return dialer.dialCount() == 1 }, "first dial did not happen")
	waitFor(t, func() bool { return len(clock.pendingDelays()) == 1 }, "retry not scheduled")
	clock.Advance(time.Second)
	waitFor(t, func() bool { return ctrl.Status().Attempts == 2 }, "attempts not counted")

	// ForceReconnect skips the pending backoff and dials immediately
	ctrl.ForceReconnect()
	waitFor(t, ctrl.IsConnected, "controller never reached Connected")
	assert.Equal(t, 0, ctrl.Status().Attempts)
	assert.Equal(t, 3, dialer.dialCount())
}

func TestHeartbeatPingsAndDetectsDeadConnection(t *testing.T) {
	dialer := &fakeDialer{script: []string{replyOK}}
	clock := newFakeClock()
	ctrl := newTestController(dialer, clock)
	defer ctrl.Disconnect()

	ctrl.Connect()
	waitFor(t, ctrl.IsConnected, "controller never reached Connected")

	conn := dialer.lastConn()
	require.NotNil(t, conn)

	// Idle heartbeats keep the connection alive with no spurious reconnect
	for i := 1; i <= 3; i++ {
		waitFor(t, func() bool { return len(clock.pendingDelays()) == 1 }, "heartbeat not scheduled")
		clock.Advance(30 * time.Second)
		pings := i
		waitFor(t, func() bool { return conn.pingCount() == pings }, "ping not sent")
		assert.True(t, ctrl.IsConnected())
	}
	assert.Equal(t, 1, dialer.dialCount())

	// A failed ping write means the connection is dead: reconnect starts
	// immediately through the normal backoff path
	conn.setFailWrites(true)
	waitFor(t, func() bool { return len(clock.pendingDelays()) == 1 }, "heartbeat not rescheduled")
	clock.Advance(30 * time.Second)

	waitFor(t, func() bool {
		delays := clock.pendingDelays()
		return len(delays) == 1 && delays[0] == time.Second
	}, "reconnect not scheduled after dead heartbeat")
	clock.Advance(time.Second)

	waitFor(t, func() bool { return dialer.dialCount() == 2 }, "reconnect dial did not happen")
	waitFor(t, ctrl.IsConnected, "controller never re-established the connection")
}

func TestEventsDispatchToHandlers(t *testing.T) {
	dialer := &fakeDialer{script: []string{replyOK}}
	clock := newFakeClock()

	var mu sync.Mutex
	var created []string
	var deleted []string
	var statuses [][]realtime.UserStatusPayload

	ctrl := New(&testLogger{}, dialer, staticTokens{}, clock, Config{URL: "ws://localhost/ws"}, Handlers{
		OnTaskCreated: func(task realtime.TaskPayload) {
			mu.Lock()
			created = append(created, task.ID)
			mu.Unlock()
		},
		OnTaskDeleted: func(taskID string) {
			mu.Lock()
			deleted = append(deleted, taskID)
			mu.Unlock()
		},
		OnUsersStatusUpdated: func(users []realtime.UserStatusPayload) {
			mu.Lock()
			statuses = append(statuses, users)
			mu.Unlock()
		},
	})
	defer ctrl.Disconnect()

	ctrl.Connect()
	waitFor(t, ctrl.IsConnected, "controller never reached Connected")

	conn := dialer.lastConn()
	conn.push(realtime.EventTaskCreated, realtime.TaskPayload{ID: "task_1", Title: "Review contract"})
	conn.push(realtime.EventTaskDeleted, realtime.TaskDeletedPayload{TaskID: "task_1"})
	conn.push(realtime.EventUsersStatusUpdated, []realtime.UserStatusPayload{
		{ID: "user_123", FirstName: "Ivan", LastName: "Petrov", Role: "USER", IsOnline: true},
	})

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(created) == 1 && len(deleted) == 1 && len(statuses) == 1
	}, "handlers did not receive all events")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"task_1"}, created)
	assert.Equal(t, []string{"task_1"}, deleted)
	assert.True(t, statuses[0][0].IsOnline)
}
