package usecase

import (
	"context"
	"errors"
	"testing"

	"fanout-srv/internal/model"
	"fanout-srv/internal/notification"
	"fanout-srv/internal/notification/repository"
	"fanout-srv/pkg/paginator"
)

// noopLogger implements log.Logger for testing
type noopLogger struct{}

func (m *noopLogger) Debug(ctx context.Context, arg ...any)                   {}
func (m *noopLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (m *noopLogger) Info(ctx context.Context, arg ...any)                    {}
func (m *noopLogger) Infof(ctx context.Context, template string, arg ...any)  {}
func (m *noopLogger) Warn(ctx context.Context, arg ...any)                    {}
func (m *noopLogger) Warnf(ctx context.Context, template string, arg ...any)  {}
func (m *noopLogger) Error(ctx context.Context, arg ...any)                   {}
func (m *noopLogger) Errorf(ctx context.Context, template string, arg ...any) {}
func (m *noopLogger) Fatal(ctx context.Context, arg ...any)                   {}
func (m *noopLogger) Fatalf(ctx context.Context, template string, arg ...any) {}

type fakeRepo struct {
	notifications []model.Notification
	total         int64
	err           error

	gotOpts repository.ListPendingOptions
}

func (f *fakeRepo) ListPending(ctx context.Context, sc model.Scope, opts repository.ListPendingOptions) ([]model.Notification, int64, error) {
	f.gotOpts = opts
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.notifications, f.total, nil
}

func TestListPending(t *testing.T) {
	repo := &fakeRepo{
		notifications: []model.Notification{
			{ID: "n1", TenantID: "acme", UserID: "u1", Event: "notification.created"},
			{ID: "n2", TenantID: "acme", UserID: "u1", Event: "notification.created"},
		},
		total: 12,
	}
	uc := New(&noopLogger{}, repo)

	out, err := uc.ListPending(context.Background(), model.Scope{UserID: "u1", TenantID: "acme"}, notification.ListPendingInput{
		PaginateQuery: paginator.PaginateQuery{Page: 2, Limit: 5},
	})
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}

	if repo.gotOpts.Limit != 5 || repo.gotOpts.Offset != 5 {
		t.Errorf("unexpected query options %+v", repo.gotOpts)
	}
	if out.Paginator.Total != 12 || out.Paginator.Count != 2 || out.Paginator.CurrentPage != 2 {
		t.Errorf("unexpected paginator %+v", out.Paginator)
	}
}

func TestListPendingAppliesDefaults(t *testing.T) {
	repo := &fakeRepo{}
	uc := New(&noopLogger{}, repo)

	_, err := uc.ListPending(context.Background(), model.Scope{UserID: "u1", TenantID: "acme"}, notification.ListPendingInput{})
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if repo.gotOpts.Limit != paginator.DefaultLimit || repo.gotOpts.Offset != 0 {
		t.Errorf("expected default pagination, got %+v", repo.gotOpts)
	}
}

func TestListPendingStoreFailure(t *testing.T) {
	repo := &fakeRepo{err: errors.New("connection refused")}
	uc := New(&noopLogger{}, repo)

	_, err := uc.ListPending(context.Background(), model.Scope{UserID: "u1", TenantID: "acme"}, notification.ListPendingInput{})
	if !errors.Is(err, notification.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
}
