package postgre

import (
	"context"

	"fanout-srv/internal/model"
	"fanout-srv/internal/notification/repository"

	"github.com/friendsofgo/errors"
)

const listPendingQuery = `
SELECT id, tenant_id, user_id, event, payload, status, created_at
FROM notifications
WHERE tenant_id = $1 AND user_id = $2 AND status = $3
ORDER BY created_at DESC
LIMIT $4 OFFSET $5`

const countPendingQuery = `
SELECT COUNT(*)
FROM notifications
WHERE tenant_id = $1 AND user_id = $2 AND status = $3`

func (r *implRepository) ListPending(ctx context.Context, sc model.Scope, opts repository.ListPendingOptions) ([]model.Notification, int64, error) {
	rows, err := r.db.QueryContext(ctx, listPendingQuery,
		sc.TenantID, sc.UserID, model.NotificationStatusPending, opts.Limit, opts.Offset)
	if err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgre.ListPending.Query: %v", err)
		return nil, 0, errors.Wrap(err, "query pending notifications")
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.TenantID, &n.UserID, &n.Event, &n.Payload, &n.Status, &n.CreatedAt); err != nil {
			r.l.Errorf(ctx, "internal.notification.repository.postgre.ListPending.Scan: %v", err)
			return nil, 0, errors.Wrap(err, "scan notification")
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.Wrap(err, "iterate notifications")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, countPendingQuery,
		sc.TenantID, sc.UserID, model.NotificationStatusPending).Scan(&total); err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgre.ListPending.Count: %v", err)
		return nil, 0, errors.Wrap(err, "count pending notifications")
	}

	return notifications, total, nil
}
