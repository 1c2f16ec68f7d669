package redis

import (
	"context"

	"fanout-srv/internal/fanout"

	"github.com/friendsofgo/errors"
)

// channelPatterns matches every tenant-scoped channel the service can route.
// The key shapes are stable across versions; see fanout.ParseChannel.
var channelPatterns = []string{
	"notifications:*:user:*",
	"announcements:*",
}

// Start subscribes to the tenant channel patterns and to the process-wide
// system bootstrap channel. A failed pattern subscription is fatal; a failed
// system subscription only degrades system broadcasts and the service keeps
// serving connections and targeted delivery.
func (s *subscriber) Start() error {
	ctx := context.Background()
	systemChannel := fanout.SystemChannel().String()

	handler := func(channel string, payload []byte) {
		// The system channel has its own subscription below; the
		// announcements:* pattern also matches it, so drop the duplicate.
		if channel == systemChannel {
			return
		}
		s.uc.HandleIncomingMessage(ctx, channel, payload)
	}

	channelSub, err := s.store.Subscribe(ctx, channelPatterns, handler)
	if err != nil {
		return errors.Wrap(err, "subscribe channel patterns")
	}
	s.channelSub = channelSub

	systemSub, err := s.store.SubscribeChannels(ctx, []string{systemChannel}, func(channel string, payload []byte) {
		s.uc.HandleIncomingMessage(ctx, channel, payload)
	})
	if err != nil {
		s.logger.Errorf(ctx, "system channel subscription failed, system broadcasts degraded: %v", err)
	} else {
		s.systemSub = systemSub
	}

	s.logger.Infof(ctx, "subscriber started on %v + %s", channelPatterns, systemChannel)
	return nil
}

func (s *subscriber) Shutdown(ctx context.Context) error {
	if s.channelSub != nil {
		if err := s.channelSub.Close(ctx); err != nil {
			s.logger.Errorf(ctx, "close channel subscription: %v", err)
		}
	}
	if s.systemSub != nil {
		if err := s.systemSub.Close(ctx); err != nil {
			s.logger.Errorf(ctx, "close system subscription: %v", err)
		}
	}
	s.logger.Info(ctx, "subscriber stopped")
	return nil
}
