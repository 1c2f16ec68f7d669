package repository

import (
	"context"

	"fanout-srv/internal/fanout"
)

// MessageHandler receives one raw message from the distributed transport.
// Implementations must not panic; the handler runs on the subscription's
// listen goroutine.
type MessageHandler func(channel string, payload []byte)

// Subscription is a live pub/sub subscription.
type Subscription interface {
	Close(ctx context.Context) error
}

// ChannelStore is the distributed channel store: membership bookkeeping with
// TTL plus cross-process pub/sub. Membership is advisory; tenant isolation is
// enforced structurally by the channel keys, not by these records.
type ChannelStore interface {
	// StoreUserChannels writes the user's membership record (tenant plus
	// channel list) with the configured TTL.
	StoreUserChannels(ctx context.Context, userID, tenantID string, channels []fanout.ChannelKey) error

	// AddUserToChannel adds the user to the channel's member set.
	AddUserToChannel(ctx context.Context, channel fanout.ChannelKey, userID, tenantID string) error

	// RemoveUserChannels deletes the user's record and removes the user from
	// every member set the record names.
	RemoveUserChannels(ctx context.Context, userID, tenantID string) error

	// RefreshUserChannels extends the TTL of the user's membership records.
	RefreshUserChannels(ctx context.Context, userID, tenantID string) error

	// GetUsersForChannel returns the ids in the channel's member set.
	GetUsersForChannel(ctx context.Context, channel fanout.ChannelKey) ([]string, error)

	// Publish serializes the message and hands it to the pub/sub transport.
	// Fire-and-forget: success means the transport accepted it, not that any
	// subscriber delivered it.
	Publish(ctx context.Context, channel fanout.ChannelKey, msg fanout.Message) error

	// Subscribe starts a pattern subscription delivering to handler until
	// the subscription is closed.
	Subscribe(ctx context.Context, patterns []string, handler MessageHandler) (Subscription, error)

	// SubscribeChannels is the exact-channel variant of Subscribe.
	SubscribeChannels(ctx context.Context, channels []string, handler MessageHandler) (Subscription, error)
}
