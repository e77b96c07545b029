package rtclient

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
)

// readTimeoutMultiple times the heartbeat interval with no inbound frame
// means the connection is silently dead (NAT timeout, blackhole) and the
// read must fail so the reconnect path fires. Every server ping, pong, or
// event resets the clock.
const readTimeoutMultiple = 3

const defaultWriteTimeout = 10 * time.Second

// Conn is the minimal transport surface the controller needs. The gorilla
// connection satisfies it through a thin wrapper; tests inject fakes.
type Conn interface {
	ReadMessage() ([]byte, error)
	WriteMessage(data []byte) error
	Close() error
}

// Dialer establishes transport connections.
type Dialer interface {
	Dial(ctx context.Context, url string) (Conn, error)
}

// NewDialer returns a Dialer backed by gorilla/websocket. readTimeout is
// refreshed before every read, so a connection with no inbound traffic for
// that long surfaces a read error instead of blocking forever; writeTimeout
// bounds every write. Zero disables the respective deadline.
func NewDialer(readTimeout, writeTimeout time.Duration) Dialer {
	return &gorillaDialer{
		dialer:       websocket.DefaultDialer,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

type gorillaDialer struct {
	dialer       *websocket.Dialer
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func (d *gorillaDialer) Dial(ctx context.Context, url string) (Conn, error) {
	conn, resp, err := d.dialer.DialContext(ctx, url, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}
	return &gorillaConn{
		conn:         conn,
		readTimeout:  d.readTimeout,
		writeTimeout: d.writeTimeout,
	}, nil
}

type gorillaConn struct {
	conn         *websocket.Conn
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func (c *gorillaConn) ReadMessage() ([]byte, error) {
	if c.readTimeout > 0 {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
			return nil, err
		}
	}
	_, data, err := c.conn.ReadMessage()
	return data, err
}

func (c *gorillaConn) WriteMessage(data []byte) error {
	if c.writeTimeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
			return err
		}
	}
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (c *gorillaConn) Close() error {
	return c.conn.Close()
}
