package redis

import (
	"context"
	"sync"

	"fanout-srv/internal/fanout/repository"

	"github.com/friendsofgo/errors"
	goredis "github.com/redis/go-redis/v9"
)

// subscription owns one pub/sub connection and its listen goroutine.
type subscription struct {
	pubsub *goredis.PubSub
	quit   chan struct{}
	wg     sync.WaitGroup
}

func (s *implStore) Subscribe(ctx context.Context, patterns []string, handler repository.MessageHandler) (repository.Subscription, error) {
	pubsub := s.redis.PSubscribe(ctx, patterns...)
	return s.startSubscription(ctx, pubsub, handler, patterns)
}

func (s *implStore) SubscribeChannels(ctx context.Context, channels []string, handler repository.MessageHandler) (repository.Subscription, error) {
	pubsub := s.redis.Subscribe(ctx, channels...)
	return s.startSubscription(ctx, pubsub, handler, channels)
}

func (s *implStore) startSubscription(ctx context.Context, pubsub *goredis.PubSub, handler repository.MessageHandler, names []string) (repository.Subscription, error) {
	// Wait for confirmation that the subscription is created before
	// reporting success; a failed subscribe must be visible to the caller.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, errors.Wrap(err, "subscribe")
	}

	sub := &subscription{
		pubsub: pubsub,
		quit:   make(chan struct{}),
	}

	sub.wg.Add(1)
	go sub.listen(s, handler)

	s.logger.Infof(ctx, "subscribed to %v", names)
	return sub, nil
}

func (sub *subscription) listen(s *implStore, handler repository.MessageHandler) {
	defer sub.wg.Done()

	ch := sub.pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				s.logger.Warn(context.Background(), "pubsub channel closed")
				return
			}
			handler(msg.Channel, []byte(msg.Payload))
		case <-sub.quit:
			return
		}
	}
}

func (sub *subscription) Close(ctx context.Context) error {
	close(sub.quit)
	err := sub.pubsub.Close()
	sub.wg.Wait()
	return err
}
