// Package handlers provides HTTP response helpers shared by the domain handlers.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/google/uuid"
)

var (
	// ErrInternal is the only message clients see for unrecognized errors.
	ErrInternal    = errors.New("internal server error")
	ErrInvalidID   = errors.New("invalid id")
	ErrInvalidBody = errors.New("invalid request body")
)

// request errors every handler may surface
var requestErrors = []error{ErrInvalidID, ErrInvalidBody}

// FieldError is implemented by errors that carry per-field messages.
type FieldError interface {
	error
	Fields() map[string]string
}

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// RespondJSON writes data as JSON with the given status.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondNoContent writes a 204 with no body.
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// RespondError logs err in full and writes a JSON error body. The body
// carries the message of the first entry in known that err matches, or
// ErrInternal when none does. Field errors are passed through with their fields.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error, known ...error) {
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logger.Log(context.Background(), level, "handler error", "error", err, "status", status)

	body := errorBody{Error: Public(err, known...)}

	var fe FieldError
	if errors.As(err, &fe) {
		body.Error = fe.Error()
		body.Fields = fe.Fields()
	}

	RespondJSON(w, status, body)
}

// PathID parses the {id} path value as a UUID.
func PathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	return id, nil
}

// Public returns the client-safe message for err.
func Public(err error, known ...error) string {
	for _, k := range slices.Concat(known, requestErrors) {
		if errors.Is(err, k) {
			return k.Error()
		}
	}
	return ErrInternal.Error()
}
