package http

import (
	"fanout-srv/internal/fanout"
	"fanout-srv/internal/notification"
	"fanout-srv/pkg/jwt"
	"fanout-srv/pkg/log"
)

type Handler struct {
	uc      fanout.UseCase
	notifUC notification.UseCase
	jwtMgr  jwt.Manager
	logger  log.Logger

	internalKey   string
	snapshotLimit int64
}

func New(uc fanout.UseCase, notifUC notification.UseCase, jwtMgr jwt.Manager, logger log.Logger, internalKey string, snapshotLimit int64) *Handler {
	return &Handler{
		uc:            uc,
		notifUC:       notifUC,
		jwtMgr:        jwtMgr,
		logger:        logger,
		internalKey:   internalKey,
		snapshotLimit: snapshotLimit,
	}
}
