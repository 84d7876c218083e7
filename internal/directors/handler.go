package directors

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/film-catalog/pkg/handlers"
	"github.com/JaimeStill/film-catalog/pkg/routes"
	"github.com/JaimeStill/film-catalog/pkg/validation"
)

var publicErrors = []error{ErrNotFound, ErrReferenced}

// Handler exposes director operations over HTTP.
type Handler struct {
	sys       System
	logger    *slog.Logger
	validator *validation.Validator
}

// NewHandler creates an director Handler.
func NewHandler(sys System, logger *slog.Logger, v *validation.Validator) *Handler {
	return &Handler{
		sys:       sys,
		logger:    logger.With("handler", "directors"),
		validator: v,
	}
}

// Routes returns the director route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/directors",
		Description: "Director management",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "POST", Pattern: "", Handler: h.Create},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	directors, err := h.sys.List(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, directors)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	director, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err, publicErrors...)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, director)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	cmd, ok := h.decode(w, r)
	if !ok {
		return
	}

	director, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err, publicErrors...)
		return
	}
	handlers.RespondJSON(w, http.StatusCreated, director)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	cmd, ok := h.decode(w, r)
	if !ok {
		return
	}

	director, err := h.sys.Update(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err, publicErrors...)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, director)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err, publicErrors...)
		return
	}
	handlers.RespondNoContent(w)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := handlers.PathID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (Command, bool) {
	var cmd Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %v", handlers.ErrInvalidBody, err))
		return cmd, false
	}
	if err := h.validator.Struct(r.Context(), cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return cmd, false
	}
	return cmd, true
}
