package http

import (
	"strings"

	"fanout-srv/internal/fanout"
	"fanout-srv/internal/model"
	"fanout-srv/internal/notification"
	"fanout-srv/pkg/paginator"

	"github.com/gin-gonic/gin"
)

// processAdmissionRequest authenticates the admission request and checks the
// requested tenant against the authenticated one. Rejection happens here,
// before any transport upgrade or membership write.
func (h *Handler) processAdmissionRequest(c *gin.Context) (model.Scope, error) {
	token := c.Query("token")
	if token == "" {
		if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			token = strings.TrimPrefix(auth, "Bearer ")
		}
	}

	payload, err := h.jwtMgr.Verify(token)
	if err != nil {
		h.logger.Warnf(c.Request.Context(), "token verification failed: %v", err)
		return model.Scope{}, fanout.ErrInvalidToken
	}

	sc := model.Scope{
		UserID:   payload.UserID,
		TenantID: payload.TenantID,
		Username: payload.Username,
		Role:     payload.Role,
	}

	if !sc.SameTenant(c.Param("tenant_id")) {
		return model.Scope{}, fanout.ErrTenantMismatch
	}
	return sc, nil
}

// buildSnapshot reads the scope's pending notifications and wraps them in the
// initial frame pushed ahead of any live event.
func (h *Handler) buildSnapshot(c *gin.Context, sc model.Scope) ([]fanout.Message, error) {
	out, err := h.notifUC.ListPending(c.Request.Context(), sc, notification.ListPendingInput{
		PaginateQuery: paginator.PaginateQuery{Page: 1, Limit: h.snapshotLimit},
	})
	if err != nil {
		return nil, err
	}

	notifications := out.Notifications
	if notifications == nil {
		notifications = []model.Notification{}
	}

	msg, err := fanout.NewMessage(fanout.EventSnapshot, fanout.Snapshot{
		IsInitial:     true,
		Notifications: notifications,
		Paginator:     out.Paginator,
	})
	if err != nil {
		return nil, err
	}
	return []fanout.Message{msg}, nil
}
