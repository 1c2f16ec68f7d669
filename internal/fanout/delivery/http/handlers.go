package http

import (
	"net/http"

	"fanout-srv/internal/fanout"
	"fanout-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// HandlePersonalStream admits a personal notification stream: authenticate,
// persist membership, push the pending snapshot, then upgrade to WebSocket.
func (h *Handler) HandlePersonalStream(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.processAdmissionRequest(c)
	if err != nil {
		response.HttpError(c, h.mapError(err))
		return
	}

	desc, err := h.uc.CreatePersonalSession(ctx, sc)
	if err != nil {
		h.logger.Errorf(ctx, "create personal session: %v", err)
		response.HttpError(c, h.mapError(err))
		return
	}

	h.admit(c, desc)
}

// HandleAnnouncementStream admits a stream over the tenant's announcement
// channel set.
func (h *Handler) HandleAnnouncementStream(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.processAdmissionRequest(c)
	if err != nil {
		response.HttpError(c, h.mapError(err))
		return
	}

	desc, err := h.uc.CreateAnnouncementSession(ctx, sc)
	if err != nil {
		h.logger.Errorf(ctx, "create announcement session: %v", err)
		response.HttpError(c, h.mapError(err))
		return
	}

	h.admit(c, desc)
}

// admit builds the snapshot and hands the exchange to the use case for the
// transport upgrade.
func (h *Handler) admit(c *gin.Context, desc fanout.SessionDescriptor) {
	ctx := c.Request.Context()

	initial, err := h.buildSnapshot(c, fanoutScope(desc))
	if err != nil {
		h.logger.Errorf(ctx, "build snapshot: %v", err)
		response.HttpError(c, h.mapError(err))
		return
	}

	if _, err := h.uc.InitializeConnection(ctx, c.Writer, c.Request, desc, initial); err != nil {
		h.logger.Errorf(ctx, "initialize connection: %v", err)
		// The upgrader writes its own HTTP error on handshake failure; only
		// respond if nothing went out yet.
		if !c.Writer.Written() {
			response.HttpError(c, h.mapError(err))
		}
		return
	}
	// The session owns the connection from here on.
}

// HandlePublish is the producer API: it routes a message to a user's personal
// channel or to the tenant's general announcement channel.
func (h *Handler) HandlePublish(c *gin.Context) {
	ctx := c.Request.Context()

	if c.GetHeader(internalKeyHeader) != h.internalKey {
		response.Unauthorized(c)
		return
	}

	var req publishReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HttpError(c, newBadRequestError(err.Error()))
		return
	}

	input, err := req.toInput()
	if err != nil {
		response.HttpError(c, newBadRequestError(err.Error()))
		return
	}

	delivered, err := h.uc.Publish(ctx, input)
	if err != nil {
		h.logger.Errorf(ctx, "publish: %v", err)
		response.HttpError(c, h.mapError(err))
		return
	}

	c.JSON(http.StatusOK, response.NewOKResp(publishResp{Delivered: delivered}))
}
