package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/kanban/internal/common"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	maxBodyBytes         = 1 << 20
	msgInternal          = "Internal server error"
	msgInvalidJSON       = "Invalid JSON body"
	msgUnauthorized      = "Unauthorized"
	msgAccessMissing     = "Unauthorized: access token missing"
	msgEndpointNotFound  = "Not found"
	msgMethodNotAllowed  = "Method not allowed"
	msgServiceUnhealthy  = "Service is unhealthy"
	msgServiceHealthy    = "Service is healthy"
	healthServiceName    = "API"
	bannerText           = "Kanban backend is good to go!"
	contentTypeJSON      = "application/json; charset=utf-8"
	contentTypeTextPlain = "text/plain; charset=utf-8"
)

// handlerFunc is an http.HandlerFunc that reports failure by returning an
// error instead of writing it.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// handle adapts h and translates a returned error into a response.
func (s *HTTPServer) handle(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			s.writeError(w, r, err)
		}
	}
}

func statusFor(code common.Code) int {
	switch code {
	case common.CodeValidation:
		return http.StatusBadRequest
	case common.CodeConflict:
		return http.StatusConflict
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := common.CodeOf(err)
	status := statusFor(code)
	reqID := middleware.GetReqID(r.Context())

	resp := errorResponse{Error: common.MessageOf(err)}
	if status == http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", "request_id", reqID, "method", r.Method, "path", r.URL.Path, "error", err)
		resp.Error = msgInternal
		if !s.config.IsProduction() {
			resp.Details = err.Error()
		}
	} else {
		s.logger.Debug(r.Context(), "request rejected", "request_id", reqID, "status", status, "error", err)
	}
	if resp.Error == "" {
		resp.Error = http.StatusText(status)
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads a single JSON object from the request body. An empty body
// decodes to the zero value.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return &common.Error{Code: common.CodeValidation, Message: msgInvalidJSON, Cause: err}
	}
	return nil
}
