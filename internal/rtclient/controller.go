package rtclient

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"tasktrack-api/internal/realtime"
	"tasktrack-api/pkg/log"
)

// Controller owns one logical connection to the realtime endpoint. It dials,
// runs the in-band authentication handshake, delivers decoded events to the
// handlers, and transparently reconnects with bounded exponential backoff.
//
// Transitions:
//
//	Disconnected -> Connecting            (Connect, reconnect timer, ForceReconnect)
//	Connecting   -> AwaitingAuth          (transport dial succeeded, token sent)
//	Connecting   -> Disconnected          (dial failed, backoff scheduled)
//	AwaitingAuth -> Connected             (authenticated ack)
//	AwaitingAuth -> Disconnected          (authentication_error or read failure)
//	Connected    -> Disconnected          (read or heartbeat failure)
//	Disconnected -> Failed                (attempt budget exhausted)
//	any          -> Disconnected          (explicit Disconnect)
//	Failed       -> Connecting            (ForceReconnect only)
type Controller struct {
	cfg      Config
	dialer   Dialer
	tokens   TokenSource
	clock    Clock
	logger   log.Logger
	handlers Handlers

	mu             sync.Mutex
	state          State
	conn           Conn
	backoff        backoff
	reconnectTimer Timer
	heartbeatTimer Timer

	// closed is set by an explicit Disconnect and blocks any further
	// automatic activity until Connect or ForceReconnect.
	closed bool

	// gen invalidates goroutines belonging to superseded attempts.
	gen int
}

// New creates a Controller. A nil dialer or clock falls back to the real
// implementations; tests inject fakes.
func New(logger log.Logger, dialer Dialer, tokens TokenSource, clock Clock, cfg Config, handlers Handlers) *Controller {
	cfg.applyDefaults()
	if dialer == nil {
		dialer = NewDialer(readTimeoutMultiple*cfg.HeartbeatInterval, defaultWriteTimeout)
	}
	if clock == nil {
		clock = NewClock()
	}

	return &Controller{
		cfg:      cfg,
		dialer:   dialer,
		tokens:   tokens,
		clock:    clock,
		logger:   logger,
		handlers: handlers,
		state:    StateDisconnected,
		backoff: backoff{
			base:        cfg.BaseDelay,
			max:         cfg.MaxDelay,
			maxAttempts: cfg.MaxAttempts,
		},
	}
}

// Connect starts the connection unless one is already live or in flight.
func (c *Controller) Connect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = false
	switch c.state {
	case StateConnecting, StateAwaitingAuth, StateConnected, StateFailed:
		return
	}
	c.startAttemptLocked()
}

// Disconnect tears everything down synchronously: the heartbeat stops, any
// pending reconnect timer is cancelled, and the live connection is closed
// before the method returns. No reconnect fires afterwards.
func (c *Controller) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.gen++
	c.stopReconnectTimerLocked()
	c.teardownLocked()
	c.backoff.reset()
	c.setStateLocked(StateDisconnected)
}

// ForceReconnect resets the attempt counter and reconnects immediately.
// This is the only way out of the Failed state.
func (c *Controller) ForceReconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = false
	c.stopReconnectTimerLocked()
	c.teardownLocked()
	c.backoff.reset()
	c.startAttemptLocked()
}

// IsConnected reports whether the handshake completed on the live connection.
func (c *Controller) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateConnected
}

// Status returns a snapshot for UI indicators.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{
		State:       c.state,
		Attempts:    c.backoff.attempts(),
		MaxAttempts: c.cfg.MaxAttempts,
	}
}

func (c *Controller) startAttemptLocked() {
	c.gen++
	c.stopReconnectTimerLocked()
	c.setStateLocked(StateConnecting)
	go c.attempt(c.gen)
}

func (c *Controller) attempt(gen int) {
	ctx := context.Background()

	conn, err := c.dialer.Dial(ctx, c.cfg.URL)
	if err != nil {
		c.logger.Warnf(ctx, "dial %s failed: %v", c.cfg.URL, err)
		c.connectionLost(gen)
		return
	}

	c.mu.Lock()
	if gen != c.gen || c.closed {
		c.mu.Unlock()
		conn.Close()
		return
	}
	c.conn = conn
	c.setStateLocked(StateAwaitingAuth)
	c.mu.Unlock()

	if err := c.sendAuthenticate(conn); err != nil {
		c.logger.Warnf(ctx, "handshake send failed: %v", err)
		conn.Close()
		c.connectionLost(gen)
		return
	}

	c.readLoop(gen, conn)
}

func (c *Controller) sendAuthenticate(conn Conn) error {
	token, err := c.tokens.Token()
	if err != nil {
		return err
	}
	if token == "" {
		return ErrNoToken
	}

	msg, err := realtime.NewMessage(realtime.EventAuthenticate, realtime.AuthenticatePayload{Token: token})
	if err != nil {
		return err
	}
	return conn.WriteMessage(msg)
}

func (c *Controller) readLoop(gen int, conn Conn) {
	ctx := context.Background()

	for {
		raw, err := conn.ReadMessage()
		if err != nil {
			conn.Close()
			c.connectionLost(gen)
			return
		}

		msg, err := realtime.ParseMessage(raw)
		if err != nil {
			c.logger.Debugf(ctx, "dropping frame: %v", err)
			continue
		}

		if !c.handleEvent(gen, conn, msg) {
			return
		}
	}
}

// handleEvent processes one server frame. Returns false when the read loop
// must stop.
func (c *Controller) handleEvent(gen int, conn Conn, msg realtime.Message) bool {
	ctx := context.Background()

	switch msg.Event {
	case realtime.EventAuthenticated:
		c.mu.Lock()
		if gen != c.gen || c.closed {
			c.mu.Unlock()
			conn.Close()
			return false
		}
		// A successful authenticated connection resets the schedule.
		c.backoff.reset()
		c.setStateLocked(StateConnected)
		c.startHeartbeatLocked(gen)
		c.mu.Unlock()
		return true

	case realtime.EventAuthenticationError:
		var payload realtime.AuthErrorPayload
		_ = json.Unmarshal(msg.Data, &payload)
		err := fmt.Errorf("%w: %s", ErrAuthRejected, payload.Error)
		c.logger.Errorf(ctx, "%v", err)
		if c.handlers.OnAuthError != nil {
			c.handlers.OnAuthError(err)
		}
		// Fatal for this attempt only. The backoff schedule keeps
		// advancing since this was not a successful connection.
		conn.Close()
		c.connectionLost(gen)
		return false

	case realtime.EventPong:
		return true

	case realtime.EventTaskCreated:
		if c.handlers.OnTaskCreated != nil {
			var task realtime.TaskPayload
			if err := json.Unmarshal(msg.Data, &task); err == nil {
				c.handlers.OnTaskCreated(task)
			}
		}
		return true

	case realtime.EventTaskUpdated:
		if c.handlers.OnTaskUpdated != nil {
			var task realtime.TaskPayload
			if err := json.Unmarshal(msg.Data, &task); err == nil {
				c.handlers.OnTaskUpdated(task)
			}
		}
		return true

	case realtime.EventTaskDeleted:
		if c.handlers.OnTaskDeleted != nil {
			var payload realtime.TaskDeletedPayload
			if err := json.Unmarshal(msg.Data, &payload); err == nil {
				c.handlers.OnTaskDeleted(payload.TaskID)
			}
		}
		return true

	case realtime.EventUsersStatusUpdated:
		if c.handlers.OnUsersStatusUpdated != nil {
			var users []realtime.UserStatusPayload
			if err := json.Unmarshal(msg.Data, &users); err == nil {
				c.handlers.OnUsersStatusUpdated(users)
			}
		}
		return true
	}

	c.logger.Debugf(ctx, "ignoring event %q", msg.Event)
	return true
}

// connectionLost handles any non-explicit loss of the connection and
// schedules the next attempt per the backoff policy.
func (c *Controller) connectionLost(gen int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen || c.closed {
		return
	}
	// The read loop and the heartbeat loop can both observe the same loss;
	// bumping the generation makes the second report a no-op.
	c.gen++
	c.teardownLocked()

	delay, ok := c.backoff.next()
	if !ok {
		c.logger.Errorf(context.Background(), "giving up after %d reconnect attempts", c.cfg.MaxAttempts)
		c.setStateLocked(StateFailed)
		return
	}

	c.logger.Warnf(context.Background(), "connection lost, reconnecting in %s (attempt %d/%d)",
		delay, c.backoff.attempts(), c.cfg.MaxAttempts)
	c.setStateLocked(StateDisconnected)
	c.scheduleReconnectLocked(delay)
}

func (c *Controller) scheduleReconnectLocked(delay time.Duration) {
	c.stopReconnectTimerLocked()

	timer := c.clock.NewTimer(delay)
	c.reconnectTimer = timer

	go func() {
		<-timer.C()

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed || c.reconnectTimer != timer {
			return
		}
		c.reconnectTimer = nil
		c.startAttemptLocked()
	}()
}

func (c *Controller) startHeartbeatLocked(gen int) {
	c.stopHeartbeatLocked()

	timer := c.clock.NewTimer(c.cfg.HeartbeatInterval)
	c.heartbeatTimer = timer
	go c.heartbeatLoop(gen, timer)
}

// heartbeatLoop emits a ping every interval. A write failure means the
// connection is dead: the reconnect path starts immediately instead of
// waiting for a transport-level close.
func (c *Controller) heartbeatLoop(gen int, timer Timer) {
	for {
		<-timer.C()

		c.mu.Lock()
		if c.closed || gen != c.gen || c.heartbeatTimer != timer || c.state != StateConnected {
			c.mu.Unlock()
			return
		}
		conn := c.conn
		c.mu.Unlock()

		ping, err := realtime.NewMessage(realtime.EventPing, nil)
		if err != nil {
			return
		}
		if conn == nil || conn.WriteMessage(ping) != nil {
			if conn != nil {
				conn.Close()
			}
			c.connectionLost(gen)
			return
		}

		c.mu.Lock()
		if c.closed || gen != c.gen || c.heartbeatTimer != timer {
			c.mu.Unlock()
			return
		}
		next := c.clock.NewTimer(c.cfg.HeartbeatInterval)
		c.heartbeatTimer = next
		timer = next
		c.mu.Unlock()
	}
}

func (c *Controller) stopReconnectTimerLocked() {
	if c.reconnectTimer != nil {
		c.reconnectTimer.Stop()
		c.reconnectTimer = nil
	}
}

func (c *Controller) stopHeartbeatLocked() {
	if c.heartbeatTimer != nil {
		c.heartbeatTimer.Stop()
		c.heartbeatTimer = nil
	}
}

func (c *Controller) teardownLocked() {
	c.stopHeartbeatLocked()
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

// setStateLocked records the transition and notifies the handler. The
// handler must not call back into the controller.
func (c *Controller) setStateLocked(s State) {
	if c.state == s {
		return
	}
	c.state = s
	if c.handlers.OnStateChange != nil {
		c.handlers.OnStateChange(s)
	}
}
