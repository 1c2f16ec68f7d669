package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const shutdownTimeout = 10 * time.Second

// Run starts the HTTP server and the pub/sub subscriber, then blocks until
// SIGINT or SIGTERM. Shutdown order matters: stop accepting new connections,
// close active sessions, then tear down the subscriber.
func (srv *HTTPServer) Run() error {
	ctx := context.Background()

	if err := srv.mapHandlers(); err != nil {
		srv.logger.Fatalf(ctx, "httpserver.Run.mapHandlers: %v", err)
		return err
	}

	// Real-time delivery is degraded without subscriptions, but locally
	// connected sessions can still exchange messages through the hub.
	if err := srv.subscriber.Start(); err != nil {
		srv.logger.Errorf(ctx, "httpserver.Run.subscriber.Start: %v, continuing without real-time delivery", err)
	}

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", srv.host, srv.port),
		Handler: srv.gin,
	}

	errCh := make(chan error, 1)
	go func() {
		srv.logger.Infof(ctx, "httpserver.Run: listening on %s", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		srv.logger.Errorf(ctx, "httpserver.Run: server error: %v", err)
		return err
	case sig := <-quit:
		srv.logger.Infof(ctx, "httpserver.Run: received signal %s, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		srv.logger.Errorf(ctx, "httpserver.Run: http shutdown: %v", err)
	}
	if err := srv.fanoutUC.Shutdown(shutdownCtx); err != nil {
		srv.logger.Errorf(ctx, "httpserver.Run: fanout shutdown: %v", err)
	}
	if err := srv.subscriber.Shutdown(shutdownCtx); err != nil {
		srv.logger.Errorf(ctx, "httpserver.Run: subscriber shutdown: %v", err)
	}

	srv.logger.Info(ctx, "httpserver.Run: shutdown complete")
	return nil
}
