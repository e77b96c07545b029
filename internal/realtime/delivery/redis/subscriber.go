package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

func (s *subscriber) Start() error {
	ctx := context.Background()

	client := s.redis.GetClient()
	s.pubsub = client.Subscribe(ctx, s.channel)

	// Wait for confirmation that the subscription is created
	if _, err := s.pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe to %s: %w", s.channel, err)
	}

	s.wg.Add(1)
	go s.listen(ctx)

	s.logger.Infof(ctx, "redis subscriber started on channel: %s", s.channel)
	return nil
}

func (s *subscriber) listen(ctx context.Context) {
	defer s.wg.Done()

	ch := s.pubsub.Channel()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				s.logger.Warnf(ctx, "redis pubsub channel closed")
				return
			}
			s.handleMessage(ctx, msg)
		case <-s.quit:
			return
		}
	}
}

func (s *subscriber) handleMessage(ctx context.Context, msg *goredis.Message) {
	if err := s.uc.DispatchRemote(ctx, []byte(msg.Payload)); err != nil {
		s.logger.Warnf(ctx, "dispatch remote event failed: %v", err)
	}
}

func (s *subscriber) Shutdown(ctx context.Context) error {
	close(s.quit)
	if s.pubsub != nil {
		if err := s.pubsub.Close(); err != nil {
			s.logger.Errorf(ctx, "failed to close pubsub: %v", err)
		}
	}
	s.wg.Wait()
	s.logger.Infof(ctx, "redis subscriber stopped")
	return nil
}
