package model

import (
	"encoding/json"
	"time"
)

// NotificationStatus mirrors the persisted store's status enum.
type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusRead    NotificationStatus = "read"
)

// IsValid checks if the notification status is valid.
func (s NotificationStatus) IsValid() bool {
	switch s {
	case NotificationStatusPending, NotificationStatusRead:
		return true
	default:
		return false
	}
}

// Notification is the persisted record behind a pushed event. This service
// only reads it for the admission snapshot; writes happen elsewhere.
type Notification struct {
	ID        string             `json:"id"`
	TenantID  string             `json:"tenant_id"`
	UserID    string             `json:"user_id"`
	Event     string             `json:"event"`
	Payload   json.RawMessage    `json:"payload"`
	Status    NotificationStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
}
