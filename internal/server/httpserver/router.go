package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (s *HTTPServer) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.middleware)
	r.Use(cors(s.config.CORSOrigin))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentTypeTextPlain)
		_, _ = w.Write([]byte(bannerText))
	})
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	prefix := "/" + strings.Trim(s.config.APIPrefix, "/")
	if prefix == "/" {
		prefix = ""
	}

	r.Route(prefix+"/auth", func(r chi.Router) {
		r.Post("/signup", s.handle(s.handleSignup))
		r.Post("/login", s.handle(s.handleLogin))
		r.Post("/logout", s.handle(s.handleLogout))
		r.Post("/refresh", s.handle(s.handleRefresh))
		r.With(s.RequireAuth).Get("/me", s.handle(s.handleMe))
	})

	r.Route(prefix+"/cards", func(r chi.Router) {
		r.Use(s.RequireAuth)
		r.Post("/", s.handle(s.handleCreateCard))
		r.Get("/", s.handle(s.handleListCards))
		r.Get("/{id}", s.handle(s.handleGetCard))
		r.Put("/{id}", s.handle(s.handleUpdateCard))
		r.Delete("/{id}", s.handle(s.handleDeleteCard))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: msgEndpointNotFound})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: msgMethodNotAllowed})
	})

	return r
}

type healthResponse struct {
	OK        bool   `json:"ok"`
	Service   string `json:"service"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		OK:        true,
		Service:   healthServiceName,
		Message:   msgServiceHealthy,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	}
	if err := s.store.PingContext(r.Context()); err != nil {
		s.logger.Warn(r.Context(), "health check failed", "error", err)
		resp.OK = false
		resp.Message = msgServiceUnhealthy
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
