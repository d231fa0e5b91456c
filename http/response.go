package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sagarc03/stowgate"
)

// ErrorResponse is the failure envelope of the API.
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// NotFoundResponse is returned for unmatched routes.
type NotFoundResponse struct {
	Error string `json:"error"`
	Path  string `json:"path"`
}

// WriteError writes a JSON error response
func WriteError(w http.ResponseWriter, code int, message string) {
	if err := WriteJSON(w, code, ErrorResponse{OK: false, Error: message}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// HandleError writes appropriate error response based on error type
func HandleError(w http.ResponseWriter, err error) {
	code, message := classifyError(err)
	if code >= http.StatusInternalServerError {
		slog.Error("request error", "error", err, "status", code)
	} else {
		slog.Warn("request rejected", "error", err, "status", code)
	}
	WriteError(w, code, message)
}

func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, stowgate.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, stowgate.ErrContentTypeRequired):
		return http.StatusBadRequest, "contentType required"
	case errors.Is(err, stowgate.ErrBadKey):
		return http.StatusBadRequest, "bad key"
	case errors.Is(err, stowgate.ErrInvalidInput):
		return http.StatusBadRequest, "invalid input"
	case errors.Is(err, stowgate.ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge, "file too large"
	case errors.Is(err, stowgate.ErrNotConfigured):
		return http.StatusInternalServerError, "object store not bound"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, code int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(data)
}

// WriteNotFound writes the catch-all 404 body for path.
func WriteNotFound(w http.ResponseWriter, path string) {
	if err := WriteJSON(w, http.StatusNotFound, NotFoundResponse{Error: "Not Found", Path: path}); err != nil {
		slog.Error("failed to encode not found response", "error", err)
	}
}
