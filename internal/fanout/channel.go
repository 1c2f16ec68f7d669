package fanout

import (
	"fmt"
	"strings"
)

// ChannelKind discriminates the two channel shapes.
type ChannelKind string

const (
	ChannelKindPersonal     ChannelKind = "personal"
	ChannelKindAnnouncement ChannelKind = "announcement"
)

const (
	personalPrefix     = "notifications"
	announcementPrefix = "announcements"

	// SystemTenantID is the reserved tenant of the process-wide bootstrap channel.
	SystemTenantID = "system"
)

// AnnouncementTopics is the fixed topic list every tenant's announcement
// session subscribes to. Append only; removing or reordering entries breaks
// channel compatibility with already-deployed processes.
var AnnouncementTopics = []string{
	TopicGeneral,
	TopicUrgent,
	TopicMaintenance,
}

const (
	TopicGeneral     = "general"
	TopicUrgent      = "urgent"
	TopicMaintenance = "maintenance"
)

// ChannelKey identifies a delivery scope. The tenant is part of the key
// itself, so cross-tenant delivery cannot be expressed. The wire string is
// produced only at the store boundary via String.
type ChannelKey struct {
	Kind     ChannelKind
	TenantID string
	UserID   string // set for personal channels
	Topic    string // set for announcement channels
}

// PersonalChannel returns the channel scoped to one user within a tenant.
func PersonalChannel(tenantID, userID string) ChannelKey {
	return ChannelKey{
		Kind:     ChannelKindPersonal,
		TenantID: tenantID,
		UserID:   userID,
	}
}

// AnnouncementChannels returns the tenant's full announcement channel set.
func AnnouncementChannels(tenantID string) []ChannelKey {
	channels := make([]ChannelKey, 0, len(AnnouncementTopics))
	for _, topic := range AnnouncementTopics {
		channels = append(channels, ChannelKey{
			Kind:     ChannelKindAnnouncement,
			TenantID: tenantID,
			Topic:    topic,
		})
	}
	return channels
}

// SystemChannel returns the bootstrap channel every process subscribes to at
// startup, independent of any tenant.
func SystemChannel() ChannelKey {
	return ChannelKey{
		Kind:     ChannelKindAnnouncement,
		TenantID: SystemTenantID,
		Topic:    TopicGeneral,
	}
}

// IsSystem reports whether the key is the process-wide bootstrap channel.
func (k ChannelKey) IsSystem() bool {
	return k.Kind == ChannelKindAnnouncement && k.TenantID == SystemTenantID
}

// String serializes the key to its wire form. The formats are stable across
// versions:
//
//	notifications:{tenant}:user:{user}
//	announcements:{tenant}:{topic}
func (k ChannelKey) String() string {
	switch k.Kind {
	case ChannelKindPersonal:
		return fmt.Sprintf("%s:%s:user:%s", personalPrefix, k.TenantID, k.UserID)
	case ChannelKindAnnouncement:
		return fmt.Sprintf("%s:%s:%s", announcementPrefix, k.TenantID, k.Topic)
	default:
		return ""
	}
}

// ParseChannel parses a wire channel string into a ChannelKey. Strings that
// match neither known shape return ErrUnknownChannel.
func ParseChannel(channel string) (ChannelKey, error) {
	parts := strings.Split(channel, ":")

	switch parts[0] {
	case personalPrefix:
		if len(parts) != 4 || parts[2] != "user" || parts[1] == "" || parts[3] == "" {
			return ChannelKey{}, ErrUnknownChannel
		}
		return PersonalChannel(parts[1], parts[3]), nil

	case announcementPrefix:
		if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
			return ChannelKey{}, ErrUnknownChannel
		}
		return ChannelKey{
			Kind:     ChannelKindAnnouncement,
			TenantID: parts[1],
			Topic:    parts[2],
		}, nil

	default:
		return ChannelKey{}, ErrUnknownChannel
	}
}
