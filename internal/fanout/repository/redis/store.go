package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"fanout-srv/internal/fanout"

	"github.com/friendsofgo/errors"
)

// Membership key layout. These are bookkeeping keys, distinct from the
// pub/sub channel names themselves.
const (
	memberSetKeyFmt  = "fanout:members:%s"  // channel wire string -> SET of user ids
	userRecordKeyFmt = "fanout:user:%s:%s"  // tenant, user -> JSON userRecord
)

// userRecord is the stored userId -> {tenant, channels} mapping.
type userRecord struct {
	TenantID string   `json:"tenant_id"`
	Channels []string `json:"channels"`
}

func memberSetKey(channel fanout.ChannelKey) string {
	return fmt.Sprintf(memberSetKeyFmt, channel.String())
}

func userRecordKey(tenantID, userID string) string {
	return fmt.Sprintf(userRecordKeyFmt, tenantID, userID)
}

func (s *implStore) StoreUserChannels(ctx context.Context, userID, tenantID string, channels []fanout.ChannelKey) error {
	record := userRecord{TenantID: tenantID, Channels: make([]string, 0, len(channels))}
	for _, ch := range channels {
		record.Channels = append(record.Channels, ch.String())
	}

	raw, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, "marshal user record")
	}

	if err := s.redis.Set(ctx, userRecordKey(tenantID, userID), raw, s.ttl); err != nil {
		return errors.Wrap(err, "store user channels")
	}
	return nil
}

func (s *implStore) AddUserToChannel(ctx context.Context, channel fanout.ChannelKey, userID, tenantID string) error {
	key := memberSetKey(channel)
	if err := s.redis.SAdd(ctx, key, userID); err != nil {
		return errors.Wrap(err, "add user to channel")
	}
	// Last-write-wins on the TTL refresh is fine: membership is advisory.
	if err := s.redis.Expire(ctx, key, s.ttl); err != nil {
		return errors.Wrap(err, "refresh channel ttl")
	}
	return nil
}

func (s *implStore) RemoveUserChannels(ctx context.Context, userID, tenantID string) error {
	key := userRecordKey(tenantID, userID)

	raw, err := s.redis.Get(ctx, key)
	if err != nil {
		// Record already expired or never written; nothing to unlink.
		return nil
	}

	var record userRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		s.logger.Warnf(ctx, "corrupt user record for %s/%s: %v", tenantID, userID, err)
	} else {
		for _, ch := range record.Channels {
			if err := s.redis.SRem(ctx, fmt.Sprintf(memberSetKeyFmt, ch), userID); err != nil {
				s.logger.Warnf(ctx, "remove %s from channel %s: %v", userID, ch, err)
			}
		}
	}

	if err := s.redis.Delete(ctx, key); err != nil {
		return errors.Wrap(err, "delete user record")
	}
	return nil
}

func (s *implStore) RefreshUserChannels(ctx context.Context, userID, tenantID string) error {
	key := userRecordKey(tenantID, userID)

	raw, err := s.redis.Get(ctx, key)
	if err != nil {
		return errors.Wrap(err, "load user record")
	}

	if err := s.redis.Expire(ctx, key, s.ttl); err != nil {
		return errors.Wrap(err, "refresh user record ttl")
	}

	var record userRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return errors.Wrap(err, "unmarshal user record")
	}
	for _, ch := range record.Channels {
		if err := s.redis.Expire(ctx, fmt.Sprintf(memberSetKeyFmt, ch), s.ttl); err != nil {
			s.logger.Warnf(ctx, "refresh channel %s ttl: %v", ch, err)
		}
	}
	return nil
}

func (s *implStore) GetUsersForChannel(ctx context.Context, channel fanout.ChannelKey) ([]string, error) {
	users, err := s.redis.SMembers(ctx, memberSetKey(channel))
	if err != nil {
		return nil, errors.Wrap(err, "get users for channel")
	}
	return users, nil
}

func (s *implStore) Publish(ctx context.Context, channel fanout.ChannelKey, msg fanout.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "marshal message")
	}
	if err := s.redis.Publish(ctx, channel.String(), payload); err != nil {
		return errors.Wrap(err, "publish")
	}
	return nil
}
