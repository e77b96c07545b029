package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"tasktrack-api/internal/realtime"
	"tasktrack-api/pkg/log"
)

// ConnConfig holds per-connection timing limits.
type ConnConfig struct {
	// AuthWait is how long a fresh connection may stay unauthenticated
	// before it is dropped.
	AuthWait       time.Duration
	PongWait       time.Duration
	PingPeriod     time.Duration
	WriteWait      time.Duration
	MaxMessageSize int64
	SendBuffer     int
}

// Connection represents a single WebSocket connection. It starts
// unauthenticated; the first frame must be an authenticate event carrying a
// valid JWT, otherwise the connection is rejected and closed.
type Connection struct {
	hub  *Hub
	conn *websocket.Conn

	// User ID from the verified JWT. Empty until the handshake completes.
	userID string

	// Buffered channel of outbound messages.
	send chan []byte

	cfg      ConnConfig
	verifier realtime.TokenVerifier
	logger   log.Logger

	done      chan struct{}
	closeOnce sync.Once
}

func newConnection(hub *Hub, conn *websocket.Conn, verifier realtime.TokenVerifier, logger log.Logger, cfg ConnConfig) *Connection {
	return &Connection{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, cfg.SendBuffer),
		cfg:      cfg,
		verifier: verifier,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// run drives the connection through the handshake and, on success, hands it
// to the hub and starts the pumps.
func (c *Connection) run() {
	if err := c.authenticate(); err != nil {
		c.rejectAuth(err)
		return
	}

	c.hub.register <- c

	msg, err := realtime.NewMessage(realtime.EventAuthenticated, realtime.AuthenticatedPayload{Success: true})
	if err == nil {
		c.send <- msg
	}

	go c.writePump()
	go c.readPump()
}

// authenticate reads the first frame and verifies the handshake.
func (c *Connection) authenticate() error {
	c.conn.SetReadLimit(c.cfg.MaxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(c.cfg.AuthWait)); err != nil {
		return err
	}

	_, raw, err := c.conn.ReadMessage()
	if err != nil {
		return realtime.ErrNotAuthenticated
	}

	msg, err := realtime.ParseMessage(raw)
	if err != nil {
		return err
	}
	if msg.Event != realtime.EventAuthenticate {
		return realtime.ErrNotAuthenticated
	}

	var payload realtime.AuthenticatePayload
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		return realtime.ErrMalformedMessage
	}
	if payload.Token == "" {
		return realtime.ErrMissingToken
	}

	claims, err := c.verifier.VerifyToken(payload.Token)
	if err != nil {
		return realtime.ErrInvalidToken
	}

	c.userID = claims.Subject
	return nil
}

// rejectAuth tells the client why the handshake failed and closes the
// connection. No pumps are running yet, so writing directly is safe.
func (c *Connection) rejectAuth(cause error) {
	c.logger.Warnf(context.Background(), "handshake rejected: %v", cause)

	msg, err := realtime.NewMessage(realtime.EventAuthenticationError, realtime.AuthErrorPayload{Error: cause.Error()})
	if err == nil {
		c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
		c.conn.WriteMessage(websocket.TextMessage, msg)
	}
	c.conn.Close()
}

// readPump pumps messages from the WebSocket connection to the hub.
//
// The application runs readPump in a per-connection goroutine. The
// application ensures that there is at most one reader on a connection by
// executing all reads from this goroutine.
func (c *Connection) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.ctx.Done():
		}
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Errorf(context.Background(), "read error for user %s: %v", c.userID, err)
			}
			break
		}
		c.handleFrame(raw)
	}
}

// handleFrame processes a frame received after the handshake. Application
// level pings get an immediate pong; everything else is ignored.
func (c *Connection) handleFrame(raw []byte) {
	msg, err := realtime.ParseMessage(raw)
	if err != nil {
		c.logger.Debugf(context.Background(), "dropping frame from user %s: %v", c.userID, err)
		return
	}

	if msg.Event == realtime.EventPing {
		pong, err := realtime.NewMessage(realtime.EventPong, nil)
		if err != nil {
			return
		}
		select {
		case c.send <- pong:
		default:
		}
	}
}

// writePump pumps messages from the hub to the WebSocket connection.
//
// A goroutine running writePump is started for each connection. The
// application ensures that there is at most one writer to a connection by
// executing all writes from this goroutine.
func (c *Connection) writePump() {
	ticker := time.NewTicker(c.cfg.PingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			return
		}
	}
}

// Close closes the connection. The transport may be absent when the hub
// rejects a connection before the pumps started.
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		if c.conn != nil {
			c.conn.Close()
		}
	})
}
