package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"tasktrack-api/internal/model"
	"tasktrack-api/internal/realtime"
	"tasktrack-api/pkg/log"
)

// Config holds the tunables of the realtime hub.
type Config struct {
	MaxConnections int
	AuthWait       time.Duration
	PongWait       time.Duration
	PingPeriod     time.Duration
	WriteWait      time.Duration
	MaxMessageSize int64
	SendBuffer     int

	// PublishChannel is the Redis channel for cross-instance fan-out.
	PublishChannel string
}

func (c *Config) applyDefaults() {
	if c.AuthWait <= 0 {
		c.AuthWait = 10 * time.Second
	}
	if c.PongWait <= 0 {
		c.PongWait = 60 * time.Second
	}
	if c.PingPeriod <= 0 {
		c.PingPeriod = (c.PongWait * 9) / 10
	}
	if c.WriteWait <= 0 {
		c.WriteWait = 10 * time.Second
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = 4096
	}
	if c.SendBuffer <= 0 {
		c.SendBuffer = 256
	}
	if c.PublishChannel == "" {
		c.PublishChannel = "tasks:events"
	}
}

// implUseCase implements realtime.UseCase.
type implUseCase struct {
	hub        *Hub
	logger     log.Logger
	verifier   realtime.TokenVerifier
	directory  realtime.UserDirectory
	publisher  realtime.Publisher
	instanceID string
	cfg        Config
}

// New creates a new realtime UseCase. The user directory and publisher are
// attached later at wiring time to break the construction cycle with the
// user domain.
func New(logger log.Logger, verifier realtime.TokenVerifier, cfg Config) realtime.UseCase {
	cfg.applyDefaults()

	uc := &implUseCase{
		hub:        newHub(logger, cfg.MaxConnections),
		logger:     logger,
		verifier:   verifier,
		instanceID: uuid.NewString(),
		cfg:        cfg,
	}
	// The callback fires on the hub run loop, and building the snapshot
	// queries the user directory. Doing that inline would stall
	// register/unregister/broadcast processing behind a slow query, so the
	// snapshot is built on its own goroutine and re-enters the hub through
	// the non-blocking Broadcast.
	uc.hub.onPresenceChange = func(userID string, online bool) {
		go uc.BroadcastUserStatuses(context.Background())
	}
	return uc
}

func (uc *implUseCase) SetUserDirectory(d realtime.UserDirectory) {
	uc.directory = d
}

func (uc *implUseCase) SetPublisher(p realtime.Publisher) {
	uc.publisher = p
}

func (uc *implUseCase) Run() {
	uc.hub.run()
}

func (uc *implUseCase) Shutdown(ctx context.Context) error {
	return uc.hub.shutdown(ctx)
}

func (uc *implUseCase) Attach(ctx context.Context, input realtime.AttachInput) error {
	conn, ok := input.Conn.(*websocket.Conn)
	if !ok {
		return realtime.ErrInvalidConnection
	}

	c := newConnection(uc.hub, conn, uc.verifier, uc.logger, ConnConfig{
		AuthWait:       uc.cfg.AuthWait,
		PongWait:       uc.cfg.PongWait,
		PingPeriod:     uc.cfg.PingPeriod,
		WriteWait:      uc.cfg.WriteWait,
		MaxMessageSize: uc.cfg.MaxMessageSize,
		SendBuffer:     uc.cfg.SendBuffer,
	})

	go c.run()
	return nil
}

func (uc *implUseCase) OnTaskCreated(ctx context.Context, task model.Task) {
	uc.broadcastEvent(ctx, realtime.EventTaskCreated, realtime.NewTaskPayload(task))
}

func (uc *implUseCase) OnTaskUpdated(ctx context.Context, task model.Task) {
	uc.broadcastEvent(ctx, realtime.EventTaskUpdated, realtime.NewTaskPayload(task))
}

func (uc *implUseCase) OnTaskDeleted(ctx context.Context, taskID string) {
	uc.broadcastEvent(ctx, realtime.EventTaskDeleted, realtime.TaskDeletedPayload{TaskID: taskID})
}

func (uc *implUseCase) broadcastEvent(ctx context.Context, event string, data interface{}) {
	msg, err := realtime.NewMessage(event, data)
	if err != nil {
		uc.logger.Errorf(ctx, "marshal %s failed: %v", event, err)
		return
	}

	uc.hub.Broadcast(msg)
	uc.publishRemote(ctx, msg)
}

// publishRemote fans the event out to other instances through Redis.
func (uc *implUseCase) publishRemote(ctx context.Context, msg []byte) {
	if uc.publisher == nil {
		return
	}

	envelope, err := json.Marshal(realtime.RemoteEnvelope{
		Origin:  uc.instanceID,
		Message: msg,
	})
	if err != nil {
		uc.logger.Errorf(ctx, "marshal remote envelope failed: %v", err)
		return
	}

	if err := uc.publisher.Publish(ctx, uc.cfg.PublishChannel, envelope); err != nil {
		uc.logger.Warnf(ctx, "publish to %s failed: %v", uc.cfg.PublishChannel, err)
	}
}

func (uc *implUseCase) DispatchRemote(ctx context.Context, payload []byte) error {
	var envelope realtime.RemoteEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return realtime.ErrMalformedMessage
	}

	// Skip events this instance published itself.
	if envelope.Origin == uc.instanceID {
		return nil
	}

	msg, err := realtime.ParseMessage(envelope.Message)
	if err != nil {
		return err
	}

	switch msg.Event {
	case realtime.EventTaskCreated, realtime.EventTaskUpdated, realtime.EventTaskDeleted:
		uc.hub.Broadcast(envelope.Message)
		return nil
	}
	return realtime.ErrUnknownEvent
}

func (uc *implUseCase) NotifyUser(ctx context.Context, userID string, event string, data interface{}) error {
	msg, err := realtime.NewMessage(event, data)
	if err != nil {
		return err
	}
	uc.hub.SendToUser(userID, msg)
	return nil
}

func (uc *implUseCase) IsUserOnline(ctx context.Context, userID string) bool {
	return uc.hub.IsUserOnline(userID)
}

func (uc *implUseCase) OnlineUserIDs(ctx context.Context) []string {
	return uc.hub.OnlineUserIDs()
}

func (uc *implUseCase) GetStats(ctx context.Context) (realtime.HubStats, error) {
	active, unique := uc.hub.Stats()
	return realtime.HubStats{
		ActiveConnections: active,
		TotalUniqueUsers:  unique,
	}, nil
}
