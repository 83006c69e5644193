// Package httpserver exposes the kanban REST API over HTTP: auth and card
// routes under a configurable prefix, plus health, metrics and a banner.
package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/kanban/internal/logging"
	"github.com/dmitrijs2005/kanban/internal/server/config"
	"github.com/dmitrijs2005/kanban/internal/server/services"
	"github.com/go-chi/chi/v5"
)

const shutdownTimeout = 10 * time.Second

// Pinger reports store connectivity. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HTTPServer struct {
	config  *config.Config
	logger  logging.Logger
	users   *services.UserService
	cards   *services.CardService
	store   Pinger
	metrics *metrics
	router  chi.Router
}

func NewHTTPServer(cfg *config.Config, l logging.Logger, us *services.UserService, cs *services.CardService, store Pinger) *HTTPServer {
	s := &HTTPServer{
		config:  cfg,
		logger:  l.With("module", "http_server"),
		users:   us,
		cards:   cs,
		store:   store,
		metrics: newMetrics(),
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler, for tests and embedding.
func (s *HTTPServer) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.config.ListenAddr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
