package repository

import (
	"context"
	"errors"

	"fanout-srv/internal/model"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("notification not found")

// ListPendingOptions bounds a pending-notification query.
type ListPendingOptions struct {
	Limit  int64
	Offset int64
}

// Repository reads persisted notification records.
type Repository interface {
	// ListPending returns the scope's pending notifications (newest first)
	// and the total pending count.
	ListPending(ctx context.Context, sc model.Scope, opts ListPendingOptions) ([]model.Notification, int64, error)
}
