package usecase

import (
	"context"
	"sync"

	"tasktrack-api/pkg/log"
)

// Hub maintains the set of active connections and fans events out to them.
type Hub struct {
	// Registered connections.
	clients map[*Connection]bool

	// User to connections mapping for targeted messaging and presence.
	// user_id -> set of connections (multiple tabs per user)
	users map[string]map[*Connection]bool

	// Register requests from connections that completed the handshake.
	register chan *Connection

	// Unregister requests from connections.
	unregister chan *Connection

	// Outbound messages for every connection.
	broadcast chan []byte

	// Lock for maps
	mu sync.RWMutex

	maxConnections int

	logger log.Logger

	// Context for graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	// Called after every successful register and after a user's last
	// connection leaves. Invoked outside the lock, on the run-loop
	// goroutine, so it must not block; expensive work belongs on a
	// separate goroutine.
	onPresenceChange func(userID string, online bool)
}

func newHub(logger log.Logger, maxConnections int) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	return &Hub{
		clients:        make(map[*Connection]bool),
		users:          make(map[string]map[*Connection]bool),
		register:       make(chan *Connection, 100),
		unregister:     make(chan *Connection, 100),
		broadcast:      make(chan []byte, 1000),
		maxConnections: maxConnections,
		logger:         logger,
		ctx:            ctx,
		cancel:         cancel,
		done:           make(chan struct{}),
	}
}

func (h *Hub) run() {
	defer close(h.done)

	for {
		select {
		case <-h.ctx.Done():
			h.closeAllConnections()
			return

		case conn := <-h.register:
			h.registerConnection(conn)

		case conn := <-h.unregister:
			h.unregisterConnection(conn)

		case message := <-h.broadcast:
			h.broadcastAll(message)
		}
	}
}

func (h *Hub) registerConnection(conn *Connection) {
	h.mu.Lock()

	if h.maxConnections > 0 && len(h.clients) >= h.maxConnections {
		h.mu.Unlock()
		h.logger.Warnf(context.Background(), "max connections reached, rejecting user: %s", conn.userID)
		go conn.Close()
		return
	}

	h.clients[conn] = true
	if _, ok := h.users[conn.userID]; !ok {
		h.users[conn.userID] = make(map[*Connection]bool)
	}
	h.users[conn.userID][conn] = true
	total := len(h.clients)
	h.mu.Unlock()

	h.logger.Infof(context.Background(), "user connected: %s (total connections: %d)", conn.userID, total)

	if h.onPresenceChange != nil {
		h.onPresenceChange(conn.userID, true)
	}
}

func (h *Hub) unregisterConnection(conn *Connection) {
	h.mu.Lock()

	if _, ok := h.clients[conn]; !ok {
		h.mu.Unlock()
		return
	}

	delete(h.clients, conn)
	close(conn.send)

	wentOffline := false
	if userConns, ok := h.users[conn.userID]; ok {
		delete(userConns, conn)
		if len(userConns) == 0 {
			delete(h.users, conn.userID)
			wentOffline = true
		}
	}
	total := len(h.clients)
	h.mu.Unlock()

	if wentOffline {
		h.logger.Infof(context.Background(), "user disconnected (all tabs closed): %s (total connections: %d)", conn.userID, total)
	}

	if wentOffline && h.onPresenceChange != nil {
		h.onPresenceChange(conn.userID, false)
	}
}

func (h *Hub) broadcastAll(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for conn := range h.clients {
		select {
		case conn.send <- message:
		default:
			// Send buffer full. The connection is likely dead, the
			// write pump will tear it down on the next ping.
			h.logger.Warnf(context.Background(), "dropping message for user %s (buffer full)", conn.userID)
		}
	}
}

// Broadcast queues a message for every connected client. Never blocks, so
// it is safe to call from the run loop itself via the presence callback.
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warnf(context.Background(), "broadcast queue full, dropping message")
	}
}

// SendToUser sends a message to all active connections of a specific user.
func (h *Hub) SendToUser(userID string, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if conns, ok := h.users[userID]; ok {
		for conn := range conns {
			select {
			case conn.send <- message:
			default:
				h.logger.Warnf(context.Background(), "dropping message for user %s (buffer full)", userID)
			}
		}
	}
}

// IsUserOnline reports whether the user has at least one live connection.
func (h *Hub) IsUserOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.users[userID]) > 0
}

// OnlineUserIDs returns the IDs of all users with live connections.
func (h *Hub) OnlineUserIDs() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]string, 0, len(h.users))
	for id := range h.users {
		ids = append(ids, id)
	}
	return ids
}

// Stats returns the current connection counts.
func (h *Hub) Stats() (int, int) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients), len(h.users)
}

func (h *Hub) closeAllConnections() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		close(conn.send)
		conn.Close()
	}
	h.clients = make(map[*Connection]bool)
	h.users = make(map[string]map[*Connection]bool)
}

func (h *Hub) shutdown(ctx context.Context) error {
	h.cancel()

	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
