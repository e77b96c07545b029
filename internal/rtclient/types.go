package rtclient

import (
	"time"

	"tasktrack-api/internal/realtime"
)

// State is the lifecycle state of the logical connection.
type State int

const (
	// StateDisconnected means no live connection. A reconnect may be
	// pending unless the controller was told to disconnect explicitly.
	StateDisconnected State = iota

	// StateConnecting means a transport dial is in flight.
	StateConnecting

	// StateAwaitingAuth means the transport is up and the authenticate
	// frame was sent, but the server has not acknowledged it yet.
	StateAwaitingAuth

	// StateConnected means the server acknowledged authentication.
	StateConnected

	// StateFailed means the attempt budget is exhausted. Only an explicit
	// ForceReconnect leaves this state.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateAwaitingAuth:
		return "awaiting_auth"
	case StateConnected:
		return "connected"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Config holds the reconnect and heartbeat policy.
type Config struct {
	// URL is the ws:// or wss:// endpoint.
	URL string

	HeartbeatInterval time.Duration
	BaseDelay         time.Duration
	MaxDelay          time.Duration
	MaxAttempts       int
}

func (c *Config) applyDefaults() {
	if c.HeartbeatInterval <= 0 {
		c.HeartbeatInterval = 30 * time.Second
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = time.Second
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = 30 * time.Second
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 10
	}
}

// Status is a snapshot of the controller for UI indicators.
type Status struct {
	State       State `json:"state"`
	Attempts    int   `json:"attempts"`
	MaxAttempts int   `json:"max_attempts"`
}

// TokenSource supplies the JWT sent during the handshake. Called on every
// attempt so a refreshed token is picked up automatically.
type TokenSource interface {
	Token() (string, error)
}

// Handlers receives decoded server events and state transitions. All
// callbacks are optional. They must not call back into the controller.
type Handlers struct {
	OnTaskCreated        func(task realtime.TaskPayload)
	OnTaskUpdated        func(task realtime.TaskPayload)
	OnTaskDeleted        func(taskID string)
	OnUsersStatusUpdated func(users []realtime.UserStatusPayload)
	OnStateChange        func(state State)

	// OnAuthError fires when the server rejects the handshake. Unlike a
	// transport drop this usually means the token is bad and a re-login
	// is needed; the err wraps ErrAuthRejected. Reconnect attempts still
	// follow the backoff schedule.
	OnAuthError func(err error)
}
