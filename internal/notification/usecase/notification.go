package usecase

import (
	"context"

	"fanout-srv/internal/model"
	"fanout-srv/internal/notification"
	"fanout-srv/internal/notification/repository"
	"fanout-srv/pkg/paginator"
)

func (uc *implUseCase) ListPending(ctx context.Context, sc model.Scope, input notification.ListPendingInput) (notification.ListPendingOutput, error) {
	q := input.PaginateQuery
	q.Adjust()

	notifications, total, err := uc.repo.ListPending(ctx, sc, repository.ListPendingOptions{
		Limit:  q.Limit,
		Offset: q.Offset(),
	})
	if err != nil {
		uc.logger.Errorf(ctx, "internal.notification.usecase.ListPending: %v", err)
		return notification.ListPendingOutput{}, notification.ErrStoreUnavailable
	}

	return notification.ListPendingOutput{
		Notifications: notifications,
		Paginator: paginator.Paginator{
			Total:       total,
			Count:       int64(len(notifications)),
			PerPage:     q.Limit,
			CurrentPage: q.Page,
		},
	}, nil
}
