package actors

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound   = errors.New("actor not found")
	ErrReferenced = errors.New("cannot delete actor: still referenced by one or more films")
)

// MapHTTPStatus converts domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrReferenced) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
