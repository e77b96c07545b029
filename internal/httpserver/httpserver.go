package httpserver

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const shutdownTimeout = 10 * time.Second

// Run maps the handlers, starts the realtime hub and the Redis
// subscriber, serves HTTP, and blocks until SIGINT or SIGTERM.
func (srv *HTTPServer) Run() error {
	if err := srv.mapHandlers(); err != nil {
		srv.logger.Errorf(context.Background(), "internal.httpserver.Run.mapHandlers: %v", err)
		return err
	}

	go srv.rtUC.Run()

	if err := srv.rtSubscriber.Start(); err != nil {
		srv.logger.Errorf(context.Background(), "internal.httpserver.Run.subscriber: %v", err)
		return err
	}

	addr := fmt.Sprintf("%s:%d", srv.host, srv.port)
	errCh := make(chan error, 1)
	go func() {
		srv.logger.Infof(context.Background(), "HTTP server listening on %s", addr)
		if err := srv.gin.Run(addr); err != nil {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		srv.logger.Errorf(context.Background(), "internal.httpserver.Run.gin: %v", err)
		return err
	case sig := <-quit:
		srv.logger.Infof(context.Background(), "received signal %s, shutting down", sig)
	}

	return srv.shutdown()
}

func (srv *HTTPServer) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.rtSubscriber.Shutdown(ctx); err != nil {
		srv.logger.Warnf(ctx, "internal.httpserver.shutdown.subscriber: %v", err)
	}

	if err := srv.rtUC.Shutdown(ctx); err != nil {
		srv.logger.Warnf(ctx, "internal.httpserver.shutdown.realtime: %v", err)
		return err
	}

	srv.logger.Info(ctx, "shutdown complete")
	return nil
}
