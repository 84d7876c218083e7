package actors

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/film-catalog/pkg/metrics"
	"github.com/JaimeStill/film-catalog/pkg/query"
	"github.com/JaimeStill/film-catalog/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates the Postgres-backed actor System.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "actors"),
	}
}

func (r *repo) List(ctx context.Context) ([]Actor, error) {
	q, args := query.NewBuilder(projection, defaultSort).
		OrderBy(defaultSort, query.SortField{Field: "FirstName"}).
		Build()

	actors, err := repository.QueryMany(ctx, r.db, q, args, scanActor)
	if err != nil {
		return nil, fmt.Errorf("query actors: %w", err)
	}
	return actors, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Actor, error) {
	q, args := query.NewBuilder(projection, defaultSort).
		WhereEquals("ID", id).
		Build()

	actor, err := repository.QueryOne(ctx, r.db, q, args, scanActor)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound)
	}
	return &actor, nil
}

func (r *repo) Create(ctx context.Context, cmd Command) (*Actor, error) {
	q := `
		INSERT INTO actors (first_name, last_name, nationality)
		VALUES ($1, $2, $3)
		RETURNING id, first_name, last_name, nationality, created_at, updated_at`

	actor, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Actor, error) {
		return repository.QueryOne(ctx, tx, q, []any{cmd.FirstName, cmd.LastName, cmd.Nationality}, scanActor)
	})
	if err != nil {
		return nil, fmt.Errorf("insert actor: %w", err)
	}

	r.logger.Info("actor created", "id", actor.ID, "name", actor.FirstName+" "+actor.LastName)
	return &actor, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd Command) (*Actor, error) {
	q := `
		UPDATE actors
		SET first_name = $2, last_name = $3, nationality = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING id, first_name, last_name, nationality, created_at, updated_at`

	actor, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Actor, error) {
		return repository.QueryOne(ctx, tx, q, []any{id, cmd.FirstName, cmd.LastName, cmd.Nationality}, scanActor)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound)
	}

	r.logger.Info("actor updated", "id", actor.ID)
	return &actor, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := repository.GuardedDelete(ctx, r.db, `DELETE FROM actors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete actor: %w", err)
	}

	if res.Referenced() {
		metrics.GuardedDeletes.WithLabelValues("actor", "referenced").Inc()
		r.logger.Info("actor delete refused", "id", id, "referenced_by", res.Reference.Table)
		return ErrReferenced
	}

	if res.Rows == 0 {
		metrics.GuardedDeletes.WithLabelValues("actor", "not_found").Inc()
		return ErrNotFound
	}

	metrics.GuardedDeletes.WithLabelValues("actor", "deleted").Inc()
	r.logger.Info("actor deleted", "id", id)
	return nil
}
