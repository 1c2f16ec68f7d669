package usecase

import (
	"fanout-srv/internal/notification"
	"fanout-srv/internal/notification/repository"
	"fanout-srv/pkg/log"
)

type implUseCase struct {
	repo   repository.Repository
	logger log.Logger
}

// New creates the notification read use case.
func New(logger log.Logger, repo repository.Repository) notification.UseCase {
	return &implUseCase{
		repo:   repo,
		logger: logger,
	}
}
