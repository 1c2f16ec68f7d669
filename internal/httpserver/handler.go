package httpserver

import (
	fanoutHTTP "fanout-srv/internal/fanout/delivery/http"
	fanoutSub "fanout-srv/internal/fanout/delivery/redis"
	fanoutStore "fanout-srv/internal/fanout/repository/redis"
	fanoutUC "fanout-srv/internal/fanout/usecase"
	"fanout-srv/internal/middleware"
	notifPostgre "fanout-srv/internal/notification/repository/postgre"
	notifUC "fanout-srv/internal/notification/usecase"
	pkgJWT "fanout-srv/pkg/jwt"
)

const apiPrefix = "/api/v1"

func (srv *HTTPServer) mapHandlers() error {
	srv.gin.Use(middleware.Recovery(srv.logger))
	srv.gin.Use(middleware.RequestLogger(srv.logger))
	srv.gin.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	// Repositories
	store := fanoutStore.New(srv.redis, srv.logger, srv.fanoutCfg.MembershipTTL)
	notifRepo := notifPostgre.New(srv.db, srv.logger)

	// Use cases
	srv.fanoutUC = fanoutUC.New(srv.logger, store, srv.wsCfg, srv.fanoutCfg)
	notificationUC := notifUC.New(srv.logger, notifRepo)

	// Deliveries
	srv.subscriber = fanoutSub.New(store, srv.fanoutUC, srv.logger)

	jwtManager := pkgJWT.New(srv.jwtSecretKey)
	h := fanoutHTTP.New(srv.fanoutUC, notificationUC, jwtManager, srv.logger, srv.internalKey, srv.fanoutCfg.SnapshotLimit)

	api := srv.gin.Group(apiPrefix)
	h.RegisterRoutes(api)

	internal := srv.gin.Group("/internal" + apiPrefix)
	h.RegisterInternalRoutes(internal)

	srv.gin.GET("/health", srv.handleHealthCheck)
	srv.gin.GET("/live", srv.handleLiveCheck)
	srv.gin.GET("/stats", srv.handleStats)

	return nil
}
