// Package server boots the HTTP API: configuration, logging, database,
// cache and storage, then serves until interrupted.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/handcraftedhaven/haven/app/routes"
	"github.com/handcraftedhaven/haven/config"
	"github.com/handcraftedhaven/haven/pkg/cache"
	"github.com/handcraftedhaven/haven/pkg/database"
	"github.com/handcraftedhaven/haven/pkg/logger"
	"github.com/handcraftedhaven/haven/pkg/router"
	"github.com/handcraftedhaven/haven/pkg/storage"
)

const shutdownTimeout = 10 * time.Second

// Boot wires every subsystem without starting the listener. The CLI calls
// this for commands that need a live database but no HTTP server.
func Boot() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	if err := logger.Connect(); err != nil {
		logger.Warn("mongo log sink unavailable", "error", err)
	}
	if err := database.Connect(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		logger.Warn("cache unavailable, serving without it", "error", err)
	}
	storage.Connect()
	return nil
}

// Run boots the application and serves HTTP until SIGINT/SIGTERM, then
// drains in-flight requests before returning.
func Run() error {
	if err := Boot(); err != nil {
		return err
	}
	defer logger.Close()

	r := router.New()
	routes.Register(r)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// NewRouter builds the fully wired router without a listener, for tests
// and tooling that need the route table.
func NewRouter() *router.Router {
	r := router.New()
	routes.Register(r)
	return r
}
