// Package posters stores film poster images in blob storage under generated
// names. It knows nothing about films; callers keep the stored name.
package posters

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/JaimeStill/film-catalog/pkg/metrics"
	"github.com/JaimeStill/film-catalog/pkg/storage"
)

var (
	ErrEmptyPoster   = errors.New("poster is empty")
	ErrInvalidPoster = errors.New("poster must be an image")
	ErrNameExhausted = errors.New("could not allocate a unique poster name")
)

// maxNameAttempts bounds stored-name regeneration on collision.
const maxNameAttempts = 3

// System persists poster payloads.
type System interface {
	// Store writes data and returns the stored name, "<uuid>_<original name>".
	Store(ctx context.Context, data []byte, originalName string) (string, error)
	// Delete removes a stored poster. Missing posters are not an error.
	Delete(ctx context.Context, storedName string) error
	// Retrieve returns the poster bytes or storage.ErrNotFound.
	Retrieve(ctx context.Context, storedName string) ([]byte, error)
}

type assets struct {
	store  storage.System
	logger *slog.Logger
	newID  func() uuid.UUID
}

// New creates a poster System over store.
func New(store storage.System, logger *slog.Logger) System {
	return &assets{
		store:  store,
		logger: logger.With("system", "posters"),
		newID:  uuid.New,
	}
}

func (a *assets) Store(ctx context.Context, data []byte, originalName string) (name string, err error) {
	defer func() {
		metrics.PosterOperations.WithLabelValues("store", metrics.Status(err)).Inc()
	}()

	if len(data) == 0 {
		return "", ErrEmptyPoster
	}

	if mt := mimetype.Detect(data); !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrInvalidPoster, mt.String())
	}

	name, err = a.allocate(ctx, originalName)
	if err != nil {
		return "", err
	}

	if err := a.store.Store(ctx, name, data); err != nil {
		return "", fmt.Errorf("store poster %s: %w", name, err)
	}

	metrics.PosterBytes.Add(float64(len(data)))
	a.logger.Info("poster stored", "name", name, "size", len(data))
	return name, nil
}

func (a *assets) Delete(ctx context.Context, storedName string) (err error) {
	defer func() {
		metrics.PosterOperations.WithLabelValues("delete", metrics.Status(err)).Inc()
	}()

	if err := a.store.Delete(ctx, storedName); err != nil {
		return fmt.Errorf("delete poster %s: %w", storedName, err)
	}

	a.logger.Info("poster deleted", "name", storedName)
	return nil
}

func (a *assets) Retrieve(ctx context.Context, storedName string) (data []byte, err error) {
	defer func() {
		metrics.PosterOperations.WithLabelValues("retrieve", metrics.Status(err)).Inc()
	}()

	data, err = a.store.Retrieve(ctx, storedName)
	if err != nil {
		return nil, fmt.Errorf("retrieve poster %s: %w", storedName, err)
	}
	return data, nil
}

func (a *assets) allocate(ctx context.Context, originalName string) (string, error) {
	base := sanitizeFilename(originalName)

	for range maxNameAttempts {
		name := a.newID().String() + "_" + base

		exists, err := a.store.Exists(ctx, name)
		if err != nil {
			return "", fmt.Errorf("check poster name: %w", err)
		}
		if !exists {
			return name, nil
		}
		a.logger.Warn("poster name collision", "name", name)
	}
	return "", ErrNameExhausted
}

func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == ".." {
		return "poster"
	}

	replacer := strings.NewReplacer(
		" ", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	return replacer.Replace(name)
}
