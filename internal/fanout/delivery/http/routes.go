package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the streaming admission routes.
// Note: auth is enforced inside the handler because the browser WebSocket
// API cannot set custom headers; the token arrives as a query parameter.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	tenants := r.Group("/tenants/:tenant_id")
	{
		tenants.GET("/notifications/ws", h.HandlePersonalStream)
		tenants.GET("/announcements/ws", h.HandleAnnouncementStream)
	}
}

// RegisterInternalRoutes registers the producer API, guarded by the internal
// service key.
func (h *Handler) RegisterInternalRoutes(r *gin.RouterGroup) {
	r.POST("/publish", h.HandlePublish)
}
