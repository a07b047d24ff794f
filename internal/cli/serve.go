package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"

	httpAdapter "github.com/terranova/density/pkg/adapters/http"
	"github.com/terranova/density/pkg/adapters/memory"
	"github.com/terranova/density/pkg/adapters/redis"
	"github.com/terranova/density/pkg/session"
)

// ShutdownTimeout bounds the graceful shutdown of the HTTP server.
const ShutdownTimeout = 5 * time.Second

// NewSessions builds the preview cache: Redis with a distributed lock when
// server.redis is set, process memory otherwise.
func (a *App) NewSessions() *session.Manager {
	opts := []session.Option{
		session.WithTTL(a.Config.Server.CacheTTL),
		session.WithLogger(a.Logger),
	}
	if addr := a.Config.Server.Redis; addr != "" {
		client := goredis.NewClient(&goredis.Options{Addr: addr})
		opts = append(opts, session.WithLocker(redis.NewLocker(client, "density:")))
		return session.NewManager(redis.NewFromClient(client), opts...)
	}
	return session.NewManager(memory.NewStore(), opts...)
}

// NewServer wires the HTTP transport over the app.
func (a *App) NewServer() *httpAdapter.Server {
	opts := []httpAdapter.Option{
		httpAdapter.WithSessions(a.NewSessions()),
		httpAdapter.WithSource(a.Source),
		httpAdapter.WithLogger(a.Logger),
	}
	if a.Metrics != nil {
		opts = append(opts, httpAdapter.WithMetrics(a.Metrics))
	}
	return httpAdapter.NewServer(a.Engine, opts...)
}

// Serve runs the HTTP API on addr until ctx is done, then shuts it down
// gracefully. With server.watch set the pack is reloaded on change.
func Serve(ctx context.Context, app *App, addr string) error {
	api := app.NewServer()
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if app.Config.Server.Watch {
		go func() {
			if err := api.Watch(ctx); err != nil {
				app.Logger.Warn("Pack watch stopped", "err", err)
			}
		}()
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		app.Logger.Info("Density server listening", "address", addr, "pack", app.Config.Pack)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		app.Logger.Info("Start shutdown")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown did not complete in %v: %w", ShutdownTimeout, err)
		}
		app.Logger.Info("Density server stopped gracefully")
		return nil
	}
}
