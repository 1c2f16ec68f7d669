package redis

import (
	"time"

	"fanout-srv/internal/fanout/repository"
	"fanout-srv/pkg/log"
	pkgRedis "fanout-srv/pkg/redis"
)

type implStore struct {
	redis  pkgRedis.IRedis
	logger log.Logger
	ttl    time.Duration
}

// New creates a Redis-backed ChannelStore. Membership records expire after
// ttl unless refreshed.
func New(redis pkgRedis.IRedis, logger log.Logger, ttl time.Duration) repository.ChannelStore {
	return &implStore{
		redis:  redis,
		logger: logger,
		ttl:    ttl,
	}
}
