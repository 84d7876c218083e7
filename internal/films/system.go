package films

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/film-catalog/internal/actors"
	"github.com/JaimeStill/film-catalog/internal/directors"
	"github.com/JaimeStill/film-catalog/internal/posters"
	"github.com/JaimeStill/film-catalog/pkg/storage"
)

// System defines film aggregate operations.
type System interface {
	List(ctx context.Context) ([]Film, error)
	Find(ctx context.Context, id uuid.UUID) (*Film, error)
	Create(ctx context.Context, cmd CreateCommand) (*Film, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Film, error)
	// Delete removes the poster and then the film. A poster failure keeps the film.
	Delete(ctx context.Context, id uuid.UUID) error
	// Poster returns the poster bytes of a film.
	Poster(ctx context.Context, id uuid.UUID) ([]byte, error)
}

// DirectorFinder resolves director ids.
type DirectorFinder interface {
	Find(ctx context.Context, id uuid.UUID) (*directors.Director, error)
}

// ActorFinder resolves actor ids.
type ActorFinder interface {
	Find(ctx context.Context, id uuid.UUID) (*actors.Actor, error)
}

// PosterStore persists poster assets.
type PosterStore interface {
	Store(ctx context.Context, data []byte, originalName string) (string, error)
	Delete(ctx context.Context, storedName string) error
	Retrieve(ctx context.Context, storedName string) ([]byte, error)
}

type service struct {
	store     Store
	directors DirectorFinder
	actors    ActorFinder
	posters   PosterStore
	logger    *slog.Logger
}

// New creates the film System.
func New(store Store, directors DirectorFinder, actors ActorFinder, posters PosterStore, logger *slog.Logger) System {
	return &service{
		store:     store,
		directors: directors,
		actors:    actors,
		posters:   posters,
		logger:    logger.With("system", "films"),
	}
}

func (s *service) List(ctx context.Context) ([]Film, error) {
	return s.store.List(ctx)
}

func (s *service) Find(ctx context.Context, id uuid.UUID) (*Film, error) {
	return s.store.Find(ctx, id)
}

func (s *service) Create(ctx context.Context, cmd CreateCommand) (*Film, error) {
	if cmd.Poster == nil || len(cmd.Poster.Data) == 0 {
		return nil, ErrPosterRequired
	}

	cast, err := s.resolve(ctx, cmd.DirectorID, cmd.ActorIDs)
	if err != nil {
		return nil, err
	}

	poster, err := s.posters.Store(ctx, cmd.Poster.Data, cmd.Poster.Filename)
	if err != nil {
		return nil, assetError(err)
	}

	id, err := s.store.Insert(ctx, Record{
		Title:       cmd.Title,
		Description: cmd.Description,
		ReleaseDate: cmd.ReleaseDate,
		Poster:      poster,
		DirectorID:  cmd.DirectorID,
		Actors:      cast,
	})
	if err != nil {
		s.discardPoster(ctx, poster, "orphaned poster after failed insert")
		return nil, fmt.Errorf("create film: %w", err)
	}

	s.logger.Info("film created", "id", id, "poster", poster)
	return s.store.Find(ctx, id)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Film, error) {
	current, err := s.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	cast, err := s.resolve(ctx, cmd.DirectorID, cmd.ActorIDs)
	if err != nil {
		return nil, err
	}

	poster := current.Poster
	replaced := cmd.Poster != nil && len(cmd.Poster.Data) > 0
	if replaced {
		poster, err = s.posters.Store(ctx, cmd.Poster.Data, cmd.Poster.Filename)
		if err != nil {
			return nil, assetError(err)
		}
	}

	err = s.store.Save(ctx, id, Record{
		Title:       cmd.Title,
		Description: cmd.Description,
		ReleaseDate: cmd.ReleaseDate,
		Poster:      poster,
		DirectorID:  cmd.DirectorID,
		Actors:      cast,
	})
	if err != nil {
		if replaced {
			s.discardPoster(ctx, poster, "orphaned poster after failed save")
		}
		return nil, fmt.Errorf("update film: %w", err)
	}

	// The previous poster goes only once the row points at its replacement.
	if replaced && current.Poster != "" {
		if err := s.posters.Delete(ctx, current.Poster); err != nil {
			s.logger.Warn("previous poster not removed", "id", id, "poster", current.Poster, "error", err)
		}
	}

	s.logger.Info("film updated", "id", id, "poster", poster)
	return s.store.Find(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	film, err := s.store.Find(ctx, id)
	if err != nil {
		return err
	}

	if film.Poster != "" {
		if err := s.posters.Delete(ctx, film.Poster); err != nil {
			return fmt.Errorf("%w: delete poster %s: %w", ErrAssetStore, film.Poster, err)
		}
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("film deleted", "id", id)
	return nil
}

func (s *service) Poster(ctx context.Context, id uuid.UUID) ([]byte, error) {
	film, err := s.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := s.posters.Retrieve(ctx, film.Poster)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrPosterMissing, film.Poster)
		}
		return nil, assetError(err)
	}
	return data, nil
}

// resolve checks the director and every actor, returning the deduplicated cast.
// Nothing is written until every reference resolves.
func (s *service) resolve(ctx context.Context, directorID uuid.UUID, actorIDs []uuid.UUID) (ActorSet, error) {
	cast := NewActorSet(actorIDs...)
	if len(cast) == 0 {
		return nil, ErrActorsRequired
	}

	if _, err := s.directors.Find(ctx, directorID); err != nil {
		if errors.Is(err, directors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", directors.ErrNotFound, directorID)
		}
		return nil, fmt.Errorf("resolve director: %w", err)
	}

	for _, actorID := range cast {
		if _, err := s.actors.Find(ctx, actorID); err != nil {
			if errors.Is(err, actors.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", actors.ErrNotFound, actorID)
			}
			return nil, fmt.Errorf("resolve actor: %w", err)
		}
	}

	return cast, nil
}

// discardPoster removes a poster the database never committed. Failures are logged.
func (s *service) discardPoster(ctx context.Context, poster, msg string) {
	if err := s.posters.Delete(context.WithoutCancel(ctx), poster); err != nil {
		s.logger.Error(msg, "poster", poster, "error", err)
	}
}

// assetError keeps poster rejections as client errors and wraps everything
// else as an asset store failure.
func assetError(err error) error {
	if errors.Is(err, posters.ErrEmptyPoster) || errors.Is(err, posters.ErrInvalidPoster) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrAssetStore, err)
}
