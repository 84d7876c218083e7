package films

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/film-catalog/internal/actors"
	"github.com/JaimeStill/film-catalog/internal/directors"
	"github.com/JaimeStill/film-catalog/internal/posters"
)

var (
	ErrNotFound       = errors.New("film not found")
	ErrAssetStore     = errors.New("poster asset store failure")
	ErrPosterRequired = errors.New("poster is required")
	ErrActorsRequired = errors.New("at least one actor is required")
	ErrFileTooLarge   = errors.New("poster exceeds maximum upload size")
	ErrPosterMissing  = errors.New("poster file not found")
)

// publicErrors are the sentinels whose messages may reach clients.
var publicErrors = []error{
	ErrNotFound,
	ErrAssetStore,
	ErrPosterRequired,
	ErrActorsRequired,
	ErrFileTooLarge,
	ErrPosterMissing,
	actors.ErrNotFound,
	directors.ErrNotFound,
	posters.ErrEmptyPoster,
	posters.ErrInvalidPoster,
}

// MapHTTPStatus converts domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrPosterMissing),
		errors.Is(err, actors.ErrNotFound),
		errors.Is(err, directors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrPosterRequired),
		errors.Is(err, ErrActorsRequired),
		errors.Is(err, posters.ErrEmptyPoster),
		errors.Is(err, posters.ErrInvalidPoster):
		return http.StatusBadRequest
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrAssetStore):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
