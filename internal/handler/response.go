package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/hackhub/internal/apperror"
)

// apiResponse is the envelope every endpoint returns. Success responses
// carry data, failures carry a human-readable message the frontend can
// show directly.
type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// writeJSON sends a JSON response with the given status code. Headers
// must be set before the first body write.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeData wraps payload in the success envelope.
func writeData(w http.ResponseWriter, status int, payload any) {
	writeJSON(w, status, apiResponse{Success: true, Data: payload})
}

// writeMessage sends a success envelope with only a message.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, apiResponse{Success: true, Message: msg})
}

// writeError maps a domain error to an HTTP status code. The service
// layer's messages are written for end users, so they are passed through
// verbatim; anything untyped becomes a generic 500.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
		}

		writeJSON(w, status, apiResponse{Success: false, Message: appErr.Message})
		return
	}

	writeJSON(w, http.StatusInternalServerError, apiResponse{
		Success: false,
		Message: "An internal error occurred",
	})
}

// decodeBody reads a JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// badRequest reports an unparseable request body.
func badRequest(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, apiResponse{
		Success: false,
		Message: "Invalid request body",
	})
}
