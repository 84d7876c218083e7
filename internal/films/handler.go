package films

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/JaimeStill/film-catalog/pkg/handlers"
	"github.com/JaimeStill/film-catalog/pkg/routes"
	"github.com/JaimeStill/film-catalog/pkg/validation"
)

// formOverhead is the body allowance for the non-file form fields.
const formOverhead = 1 << 20

// Handler exposes film operations over HTTP. Writes are multipart forms
// carrying the poster file next to the film fields.
type Handler struct {
	sys           System
	logger        *slog.Logger
	validator     *validation.Validator
	maxUploadSize int64
}

// NewHandler creates a film Handler. maxUploadSize bounds multipart bodies.
func NewHandler(sys System, logger *slog.Logger, v *validation.Validator, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "films"),
		validator:     v,
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the film route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/films",
		Description: "Film aggregate management",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "POST", Pattern: "", Handler: h.Create},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "PUT", Pattern: "/{id}", Handler: h.Update},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
			{Method: "GET", Pattern: "/{id}/poster", Handler: h.Poster},
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	films, err := h.sys.List(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, films)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	film, err := h.sys.Find(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, film)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	cmd, ok := h.parse(w, r)
	if !ok {
		return
	}

	film, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		h.fail(w, err)
		return
	}
	handlers.RespondJSON(w, http.StatusCreated, film)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	cmd, ok := h.parse(w, r)
	if !ok {
		return
	}

	film, err := h.sys.Update(r.Context(), id, UpdateCommand(cmd))
	if err != nil {
		h.fail(w, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, film)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		h.fail(w, err)
		return
	}
	handlers.RespondNoContent(w)
}

func (h *Handler) Poster(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	data, err := h.sys.Poster(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}

	w.Header().Set("Content-Type", mimetype.Detect(data).String())
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	handlers.RespondError(w, h.logger, MapHTTPStatus(err), err, publicErrors...)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := handlers.PathID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return uuid.Nil, false
	}
	return id, true
}

// parse reads the multipart film form. The poster part is optional here;
// Create enforces its presence.
func (h *Handler) parse(w http.ResponseWriter, r *http.Request) (CreateCommand, bool) {
	var cmd CreateCommand

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+formOverhead)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge, publicErrors...)
			return cmd, false
		}
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %v", handlers.ErrInvalidBody, err))
		return cmd, false
	}

	fields := make(map[string]string)

	cmd.Title = strings.TrimSpace(r.FormValue("title"))
	cmd.Description = strings.TrimSpace(r.FormValue("description"))

	if v := r.FormValue("release_date"); v != "" {
		date, err := ParseDate(v)
		if err != nil {
			fields["release_date"] = "must be a date in YYYY-MM-DD format"
		}
		cmd.ReleaseDate = date
	}

	if v := r.FormValue("director_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			fields["director_id"] = "must be a valid UUID"
		}
		cmd.DirectorID = id
	}

	for _, v := range formList(r, "actor_ids") {
		id, err := uuid.Parse(v)
		if err != nil {
			fields["actor_ids"] = "must contain valid UUIDs"
			continue
		}
		cmd.ActorIDs = append(cmd.ActorIDs, id)
	}

	if len(fields) > 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, validation.NewError(fields))
		return cmd, false
	}

	if err := h.validator.Struct(r.Context(), cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return cmd, false
	}

	upload, err := readPoster(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: poster: %v", handlers.ErrInvalidBody, err))
		return cmd, false
	}
	if upload != nil && int64(len(upload.Data)) > h.maxUploadSize {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge, publicErrors...)
		return cmd, false
	}
	cmd.Poster = upload

	return cmd, true
}

func readPoster(r *http.Request) (*Upload, error) {
	file, header, err := r.FormFile("poster")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return &Upload{Filename: header.Filename, Data: data}, nil
}

// formList returns every value of key, splitting comma separated entries.
func formList(r *http.Request, key string) []string {
	var out []string
	for _, v := range r.MultipartForm.Value[key] {
		for part := range strings.SplitSeq(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
