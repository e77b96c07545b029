package realtime

import (
	"context"

	"tasktrack-api/internal/model"
	"tasktrack-api/pkg/jwt"
)

// UseCase defines the business logic for the realtime domain. It combines
// connection management, presence tracking, and event fan-out.
type UseCase interface {
	// Lifecycle
	Run()
	Shutdown(ctx context.Context) error

	// Connection Management
	// Attach hands a freshly upgraded connection to the hub. The connection
	// stays unauthenticated until the client completes the in-band handshake.
	Attach(ctx context.Context, input AttachInput) error

	// Task Events
	OnTaskCreated(ctx context.Context, task model.Task)
	OnTaskUpdated(ctx context.Context, task model.Task)
	OnTaskDeleted(ctx context.Context, taskID string)

	// Targeted Messaging
	NotifyUser(ctx context.Context, userID string, event string, data interface{}) error

	// Presence
	IsUserOnline(ctx context.Context, userID string) bool
	OnlineUserIDs(ctx context.Context) []string
	BroadcastUserStatuses(ctx context.Context)

	// Remote intake (called by the Redis delivery for events published
	// by other instances)
	DispatchRemote(ctx context.Context, payload []byte) error

	// Stats
	GetStats(ctx context.Context) (HubStats, error)

	// Wiring hooks, called once at startup before Run. They exist to break
	// the construction cycle with the user domain.
	SetUserDirectory(UserDirectory)
	SetPublisher(Publisher)
}

// TokenVerifier validates the JWT presented during the handshake.
type TokenVerifier interface {
	VerifyToken(tokenString string) (*jwt.Claims, error)
}

// UserDirectory resolves user profiles for presence snapshots. It is
// implemented by the user domain and injected at wiring time.
type UserDirectory interface {
	ListBrief(ctx context.Context) ([]model.UserStatus, error)
}

// Publisher fans events out to other instances. Optional.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload interface{}) error
}
