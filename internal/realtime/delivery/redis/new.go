package redis

import (
	"context"
	"sync"

	goredis "github.com/redis/go-redis/v9"

	"tasktrack-api/internal/realtime"
	"tasktrack-api/pkg/log"
	pkgRedis "tasktrack-api/pkg/redis"
)

// Subscriber consumes task events published by other instances and
// re-dispatches them to local connections.
type Subscriber interface {
	Start() error
	Shutdown(ctx context.Context) error
}

type subscriber struct {
	redis   pkgRedis.IRedis
	uc      realtime.UseCase
	logger  log.Logger
	channel string

	pubsub *goredis.PubSub
	wg     sync.WaitGroup
	quit   chan struct{}
}

func New(redis pkgRedis.IRedis, uc realtime.UseCase, logger log.Logger, channel string) Subscriber {
	return &subscriber{
		redis:   redis,
		uc:      uc,
		logger:  logger,
		channel: channel,
		quit:    make(chan struct{}),
	}
}
