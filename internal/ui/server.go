// Package ui provides the web dashboard and mounts the REST API next to it.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/shopdash/internal/api"
	"github.com/leapstack-labs/shopdash/internal/auth"
	"github.com/leapstack-labs/shopdash/internal/client"
	"github.com/leapstack-labs/shopdash/internal/notifier"
	"github.com/leapstack-labs/shopdash/internal/ui/features/common"
	"github.com/leapstack-labs/shopdash/internal/ui/router"
	"github.com/leapstack-labs/shopdash/pkg/core"
)

// Server is the main UI server.
type Server struct {
	repo            core.Repository
	sessions        *auth.SessionResolver
	resolver        auth.Resolver
	port            int
	origin          string
	dev             bool
	staticDir       string
	shutdownTimeout time.Duration
	logger          *slog.Logger
	notifier        *notifier.Notifier
	reloader        *router.Reloader
}

// Config holds configuration for the UI server.
type Config struct {
	Repo          core.Repository
	Port          int
	Origin        string
	Dev           bool
	SessionSecret string
	// Tokens maps API bearer tokens to user IDs.
	Tokens map[string]string
	// StaticDir is watched for changes in dev mode.
	StaticDir       string
	ShutdownTimeout time.Duration
	Logger          *slog.Logger
}

// NewServer creates a new UI server instance.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	sessions := auth.NewSessionResolver(auth.NewCookieStore(cfg.SessionSecret))
	return &Server{
		repo:            cfg.Repo,
		sessions:        sessions,
		resolver:        auth.Chain{sessions, auth.NewTokenResolver(cfg.Tokens)},
		port:            cfg.Port,
		origin:          cfg.Origin,
		dev:             cfg.Dev,
		staticDir:       cfg.StaticDir,
		shutdownTimeout: timeout,
		logger:          logger,
		notifier:        notifier.New(),
		reloader:        router.NewReloader(),
	}
}

// Handler builds the complete HTTP handler: API under /api and the dashboard pages.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
		auth.Middleware(s.resolver),
	)

	apiHandlers := api.NewHandlers(s.repo, s.notifier, s.logger)
	api.SetupRoutes(r, apiHandlers)

	// Page handlers reach the API in-process; the request context carries the user.
	apiRouter := chi.NewRouter()
	api.SetupRoutes(apiRouter, apiHandlers)

	deps := &common.Deps{
		Repo:     s.repo,
		API:      client.New("", client.WithHandler(apiRouter)),
		Sessions: s.sessions.Store(),
		Notifier: s.notifier,
		Origin:   s.origin,
		IsDev:    s.dev,
		Logger:   s.logger,
	}
	if err := router.SetupRoutes(r, deps, s.sessions, s.reloader); err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Serve starts the UI server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting dashboard", "addr", fmt.Sprintf("http://localhost:%d", s.port), "dev", s.dev)

	handler, err := s.Handler()
	if err != nil {
		return err
	}

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Reload browsers when static assets change
	if s.dev && s.staticDir != "" {
		eg.Go(func() error {
			return s.watchFiles(egctx)
		})
	}

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		s.logger.Debug("shutting down dashboard...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// IsDev returns true if running in development mode.
func (s *Server) IsDev() bool {
	return s.dev
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// watchFiles watches the static directory and reloads connected browsers.
func (s *Server) watchFiles(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watchDirRecursive(watcher, s.staticDir); err != nil {
		s.logger.Error("failed to watch static directory", "error", err)
		// Don't fail - continue without watching
	}

	// Debounce timer
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isAssetChange(event) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.logger.Debug("static asset changed, reloading browsers", "file", event.Name)
				s.reloader.Trigger()
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}

// isAssetChange reports whether event touched a served asset.
func isAssetChange(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	switch filepath.Ext(event.Name) {
	case ".css", ".js", ".svg", ".png", ".ico":
		return true
	}
	return false
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
