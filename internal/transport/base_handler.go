package transport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	app "github.com/clubware/club-management/internal"
	"github.com/clubware/club-management/internal/datastore"
	"github.com/clubware/club-management/pkg/logger"
)

// Envelope is the uniform response wrapper. Every handler answers with this
// shape; list endpoints additionally carry count, total and pagination.
type Envelope struct {
	Success    bool                  `json:"success"`
	Data       interface{}           `json:"data,omitempty"`
	Message    string                `json:"message,omitempty"`
	Error      string                `json:"error,omitempty"`
	Details    []app.ValidationError `json:"details,omitempty"`
	Count      *int                  `json:"count,omitempty"`
	Total      *int                  `json:"total,omitempty"`
	Pagination *Pagination           `json:"pagination,omitempty"`
}

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

func (h *BaseHandler) writeEnvelope(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteData writes a successful response carrying a single resource.
func (h *BaseHandler) WriteData(w http.ResponseWriter, status int, data interface{}) {
	h.writeEnvelope(w, status, Envelope{Success: true, Data: data})
}

// WriteMessage writes a successful response with a human-readable message.
func (h *BaseHandler) WriteMessage(w http.ResponseWriter, status int, data interface{}, message string) {
	h.writeEnvelope(w, status, Envelope{Success: true, Data: data, Message: message})
}

// WriteList writes a successful list response. count is the size of the
// returned slice, total the size of the full filtered set. pagination may be
// nil for unpaginated lists.
func (h *BaseHandler) WriteList(w http.ResponseWriter, data interface{}, count, total int, pagination *Pagination) {
	h.writeEnvelope(w, http.StatusOK, Envelope{
		Success:    true,
		Data:       data,
		Count:      &count,
		Total:      &total,
		Pagination: pagination,
	})
}

// WriteError writes a plain error response.
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.Logger.Error("http error", "status", status, "message", message)
	h.writeEnvelope(w, status, Envelope{Success: false, Error: message})
}

// HandleServiceError maps any error escaping a service onto the envelope.
// AppErrors keep their status and field details; unknown errors and store
// failures answer 500 without leaking internals.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := app.IsAppError(err); ok {
		env := Envelope{Success: false, Error: appErr.Message}
		if ve, ok := appErr.Details.(app.ValidationErrors); ok {
			env.Details = ve.Errors
		}
		if appErr.StatusCode >= http.StatusInternalServerError {
			h.Logger.Error("internal error", "error", appErr.Error(), "code", appErr.Code)
			env.Error = "Internal server error"
		} else {
			h.Logger.Warn("request rejected", "code", appErr.Code, "error", appErr.GetDetailedMessage())
		}
		h.writeEnvelope(w, appErr.StatusCode, env)
		return
	}

	if errors.Is(err, datastore.ErrNotFound) {
		h.writeEnvelope(w, http.StatusNotFound, Envelope{Success: false, Error: "Resource not found"})
		return
	}

	h.Logger.Error("unhandled error", "error", err)
	h.writeEnvelope(w, http.StatusInternalServerError, Envelope{Success: false, Error: "Internal server error"})
}
