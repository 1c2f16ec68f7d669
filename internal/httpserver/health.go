package httpserver

import (
	"context"
	"net/http"
	"time"

	"fanout-srv/config/postgre"
	"fanout-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 3 * time.Second

type healthStatus struct {
	Status         string `json:"status"`
	Redis          string `json:"redis"`
	Postgres       string `json:"postgres"`
	ActiveSessions int    `json:"active_sessions"`
	ActiveChannels int    `json:"active_channels"`
}

// handleHealthCheck reports dependency health plus live hub counters.
func (srv *HTTPServer) handleHealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status := healthStatus{Status: "ok", Redis: "ok", Postgres: "ok"}

	if err := srv.redis.Ping(ctx); err != nil {
		srv.logger.Errorf(ctx, "httpserver.handleHealthCheck.redis: %v", err)
		status.Status = "degraded"
		status.Redis = "unreachable"
	}
	if err := postgre.HealthCheck(ctx, srv.db); err != nil {
		srv.logger.Errorf(ctx, "httpserver.handleHealthCheck.postgres: %v", err)
		status.Status = "degraded"
		status.Postgres = "unreachable"
	}

	if stats, err := srv.fanoutUC.GetStats(ctx); err == nil {
		status.ActiveSessions = stats.ActiveSessions
		status.ActiveChannels = stats.ActiveChannels
	}

	if status.Status != "ok" {
		c.JSON(http.StatusServiceUnavailable, response.NewOKResp(status))
		return
	}
	response.OK(c, status)
}

// handleLiveCheck answers liveness probes without touching dependencies.
func (srv *HTTPServer) handleLiveCheck(c *gin.Context) {
	response.OK(c, gin.H{"status": "ok"})
}

// handleStats exposes the process-local delivery counters.
func (srv *HTTPServer) handleStats(c *gin.Context) {
	stats, err := srv.fanoutUC.GetStats(c.Request.Context())
	if err != nil {
		srv.logger.Errorf(c.Request.Context(), "httpserver.handleStats: %v", err)
		c.JSON(http.StatusInternalServerError, response.NewOKResp(nil))
		return
	}
	response.OK(c, stats)
}
