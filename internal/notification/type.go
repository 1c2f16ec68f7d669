package notification

import (
	"fanout-srv/internal/model"
	"fanout-srv/pkg/paginator"
)

// ListPendingInput carries pagination for a pending-notification read.
type ListPendingInput struct {
	PaginateQuery paginator.PaginateQuery
}

// ListPendingOutput is one page of pending notifications.
type ListPendingOutput struct {
	Notifications []model.Notification
	Paginator     paginator.Paginator
}
