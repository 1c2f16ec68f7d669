package fanout

import (
	"encoding/json"
	"time"

	"fanout-srv/internal/model"
	"fanout-srv/pkg/paginator"

	"github.com/google/uuid"
)

// Message is the transient envelope pushed over a stream. It is never
// persisted by this service; the notification record backing it lives in the
// external store.
type Message struct {
	ID        string          `json:"id"`
	Event     string          `json:"event"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage builds a Message with a fresh id and timestamp.
func NewMessage(event string, data any) (Message, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Message{}, err
	}
	return Message{
		ID:        uuid.NewString(),
		Event:     event,
		Data:      raw,
		Timestamp: time.Now().UTC(),
	}, nil
}

// Normalize fills in id and timestamp when the producer left them empty.
func (m Message) Normalize() Message {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	return m
}

// SessionDescriptor is a session whose membership is persisted but whose
// transport is not yet attached.
type SessionDescriptor struct {
	UserID   string
	TenantID string
	Channels []ChannelKey
}

// PublishInput is the producer API input. An empty UserID targets the
// tenant's general announcement channel instead of a personal channel.
type PublishInput struct {
	TenantID string
	UserID   string
	Message  Message
}

// Snapshot is the first frame pushed after admission, before any live event.
type Snapshot struct {
	IsInitial     bool                 `json:"isInitial"`
	Notifications []model.Notification `json:"notifications"`
	Paginator     paginator.Paginator  `json:"paginator"`
}

// EventSnapshot is the event name of the initial snapshot frame.
const EventSnapshot = "snapshot"

// HubStats are the per-process delivery statistics.
type HubStats struct {
	ActiveSessions int `json:"active_sessions"`
	ActiveChannels int `json:"active_channels"`
}
