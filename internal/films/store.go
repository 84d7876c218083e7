package films

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/film-catalog/internal/actors"
	"github.com/JaimeStill/film-catalog/pkg/query"
	"github.com/JaimeStill/film-catalog/pkg/repository"
)

// Store persists film rows and their actor relations. Insert, Save and
// Delete each run in a single transaction.
type Store interface {
	List(ctx context.Context) ([]Film, error)
	Find(ctx context.Context, id uuid.UUID) (*Film, error)
	Insert(ctx context.Context, rec Record) (uuid.UUID, error)
	// Save replaces the film row and reconciles its actor relations with rec.Actors.
	Save(ctx context.Context, id uuid.UUID, rec Record) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewStore creates the Postgres film Store.
func NewStore(db *sql.DB, logger *slog.Logger) Store {
	return &pgStore{
		db:     db,
		logger: logger.With("system", "films.store"),
	}
}

func (s *pgStore) List(ctx context.Context) ([]Film, error) {
	q, args := query.NewBuilder(filmProjection, defaultSort).
		Join(directorProjection, "d.id = f.director_id").
		Build()

	films, err := repository.QueryMany(ctx, s.db, q, args, scanFilm)
	if err != nil {
		return nil, fmt.Errorf("query films: %w", err)
	}

	castQ, castArgs := query.NewBuilder(castProjection, query.SortField{}).
		Join(actorProjection, "a.id = fa.actor_id").
		OrderBy(castSort...).
		Build()

	cast, err := repository.QueryMany(ctx, s.db, castQ, castArgs, scanCastMember)
	if err != nil {
		return nil, fmt.Errorf("query cast: %w", err)
	}

	index := make(map[uuid.UUID]int, len(films))
	for i, f := range films {
		index[f.ID] = i
		films[i].Actors = []actors.Actor{}
	}
	for _, c := range cast {
		if i, ok := index[c.FilmID]; ok {
			films[i].Actors = append(films[i].Actors, c.Actor)
		}
	}

	return films, nil
}

func (s *pgStore) Find(ctx context.Context, id uuid.UUID) (*Film, error) {
	q, args := query.NewBuilder(filmProjection, defaultSort).
		Join(directorProjection, "d.id = f.director_id").
		WhereEquals("ID", id).
		Build()

	film, err := repository.QueryOne(ctx, s.db, q, args, scanFilm)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound)
	}

	castQ, castArgs := query.NewBuilder(castProjection, query.SortField{}).
		Join(actorProjection, "a.id = fa.actor_id").
		WhereEquals("FilmID", id).
		OrderBy(castSort...).
		Build()

	cast, err := repository.QueryMany(ctx, s.db, castQ, castArgs, scanCastMember)
	if err != nil {
		return nil, fmt.Errorf("query cast: %w", err)
	}

	film.Actors = make([]actors.Actor, 0, len(cast))
	for _, c := range cast {
		film.Actors = append(film.Actors, c.Actor)
	}
	return &film, nil
}

func (s *pgStore) Insert(ctx context.Context, rec Record) (uuid.UUID, error) {
	q := `
		INSERT INTO films (title, description, poster, release_date, director_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	id, err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) (uuid.UUID, error) {
		id, err := repository.QueryOne(ctx, tx, q, []any{
			rec.Title, rec.Description, rec.Poster, rec.ReleaseDate.Time, rec.DirectorID,
		}, scanID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("insert film: %w", err)
		}

		if err := addCast(ctx, tx, id, rec.Actors); err != nil {
			return uuid.Nil, err
		}
		return id, nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.logger.Info("film inserted", "id", id, "actors", len(rec.Actors))
	return id, nil
}

func (s *pgStore) Save(ctx context.Context, id uuid.UUID, rec Record) error {
	q := `
		UPDATE films
		SET title = $2, description = $3, poster = $4, release_date = $5,
			director_id = $6, updated_at = NOW()
		WHERE id = $1`

	_, err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(ctx, tx, q,
			id, rec.Title, rec.Description, rec.Poster, rec.ReleaseDate.Time, rec.DirectorID,
		)
		if err != nil {
			return struct{}{}, repository.MapError(err, ErrNotFound)
		}

		current, err := repository.QueryMany(ctx, tx,
			`SELECT actor_id FROM film_actors WHERE film_id = $1 FOR UPDATE`,
			[]any{id}, scanID,
		)
		if err != nil {
			return struct{}{}, fmt.Errorf("query current cast: %w", err)
		}

		added, removed := ActorSet(current).Diff(rec.Actors)

		for _, actorID := range removed {
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM film_actors WHERE film_id = $1 AND actor_id = $2`, id, actorID,
			); err != nil {
				return struct{}{}, fmt.Errorf("remove cast member %s: %w", actorID, err)
			}
		}

		if err := addCast(ctx, tx, id, added); err != nil {
			return struct{}{}, err
		}

		s.logger.Debug("cast reconciled", "id", id, "added", len(added), "removed", len(removed))
		return struct{}{}, nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("film saved", "id", id)
	return nil
}

func (s *pgStore) Delete(ctx context.Context, id uuid.UUID) error {
	err := repository.ExecExpectOne(ctx, s.db, `DELETE FROM films WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("delete film: %w", err)
	}

	s.logger.Info("film deleted", "id", id)
	return nil
}

func addCast(ctx context.Context, tx *sql.Tx, filmID uuid.UUID, actorIDs []uuid.UUID) error {
	for _, actorID := range actorIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO film_actors (film_id, actor_id) VALUES ($1, $2)`, filmID, actorID,
		); err != nil {
			return fmt.Errorf("add cast member %s: %w", actorID, err)
		}
	}
	return nil
}
