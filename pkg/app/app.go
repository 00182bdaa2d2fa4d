// Package app assembles a runnable surrealblog server from a Config and provides the
// command line entry point.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/surrealdb/surrealblog/pkg/logger"
	"github.com/surrealdb/surrealblog/pkg/pubsub"
	"github.com/surrealdb/surrealblog/pkg/resolver"
	"github.com/surrealdb/surrealblog/pkg/seed"
	"github.com/surrealdb/surrealblog/pkg/server"
	"github.com/surrealdb/surrealblog/pkg/store"
)

// App holds the wired components of one server instance.
type App struct {
	config   Config
	logger   logger.Logger
	logFile  io.Closer
	store    *store.Store
	bus      *pubsub.Bus
	resolver *resolver.Resolver
	server   *server.Server
}

type Option func(*App)

// WithLogger replaces the logger built from the config.
func WithLogger(l logger.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}

// New validates config, seeds the store and wires the components.
func New(config Config, opts ...Option) (*App, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	a := &App{config: config}
	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		l, closer, err := newLogger(config)
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
		a.logger, a.logFile = l, closer
	}

	a.store = store.New()
	if config.Demo {
		if err := seed.Load(a.store, seed.Demo()); err != nil {
			return nil, a.fail(fmt.Errorf("failed to load demo data: %w", err))
		}
	}
	if config.SeedFile != "" {
		doc, err := seed.ReadFile(config.SeedFile)
		if err != nil {
			return nil, a.fail(err)
		}
		if err := seed.Load(a.store, doc); err != nil {
			return nil, a.fail(fmt.Errorf("failed to load %s: %w", config.SeedFile, err))
		}
	}

	a.bus = pubsub.NewBus(
		pubsub.WithBufferSize(config.BufferSize),
		pubsub.WithLogger(a.logger),
	)
	a.resolver = resolver.New(a.store, a.bus, resolver.WithLogger(a.logger))
	a.server = server.New(a.resolver,
		server.WithLogger(a.logger),
		server.WithDefaultFormat(config.Format),
		server.WithCountInterval(config.CountInterval),
	)

	a.logger.Info("Store ready",
		"users", a.store.Users.Len(),
		"posts", a.store.Posts.Len(),
		"comments", a.store.Comments.Len())
	return a, nil
}

func (a *App) fail(err error) error {
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
	return err
}

// Resolver returns the resolver serving this app.
func (a *App) Resolver() *resolver.Resolver {
	return a.resolver
}

// Handler returns the HTTP handler serving this app.
func (a *App) Handler() http.Handler {
	return a.server
}

// Run listens on the configured address and serves until ctx is done.
func (a *App) Run(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", a.config.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.config.Addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully: in-flight HTTP requests
// get ShutdownTimeout to finish, WebSocket connections are closed and live queries end.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler: a.server,
	}

	a.logger.Info("Starting surrealblog server", "addr", ln.Addr().String(), "format", a.config.Format)

	serverErr := make(chan error, 1)
	go func() {
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		err := httpServer.Shutdown(shutdownCtx)
		a.close()
		return err
	case err := <-serverErr:
		a.close()
		return err
	}
}

func (a *App) close() {
	a.server.Close()
	a.bus.Close()
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil {
			a.logger.Warn("Failed to close log file", "error", err)
		}
	}
}
