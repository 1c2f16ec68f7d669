package redis

import (
	"context"

	"fanout-srv/internal/fanout"
	"fanout-srv/internal/fanout/repository"
	"fanout-srv/pkg/log"
)

// Subscriber owns the process's pub/sub subscriptions and bridges inbound
// messages to the fan-out use case.
type Subscriber interface {
	Start() error
	Shutdown(ctx context.Context) error
}

type subscriber struct {
	store  repository.ChannelStore
	uc     fanout.UseCase
	logger log.Logger

	channelSub repository.Subscription
	systemSub  repository.Subscription
}

func New(store repository.ChannelStore, uc fanout.UseCase, logger log.Logger) Subscriber {
	return &subscriber{
		store:  store,
		uc:     uc,
		logger: logger,
	}
}
