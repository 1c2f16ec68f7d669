package notification

import (
	"context"

	"fanout-srv/internal/model"
)

// UseCase is the read-side of the persisted notification store. This service
// only consumes it for the admission snapshot; creation and CRUD live in the
// producing services.
type UseCase interface {
	// ListPending returns the scope's pending notifications, newest first.
	ListPending(ctx context.Context, sc model.Scope, input ListPendingInput) (ListPendingOutput, error)
}
