package directors

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

// New creates the Postgres-backed director System.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "directors"),
	}
}

func (r *repo) List(ctx context.Context) ([]Director, error) {
	q, args := query.NewBuilder(projection, defaultSort).
		OrderBy(defaultSort, query.SortField{Field: "FirstName"}).
		Build()

	directors, err := repository.QueryMany(ctx, r.db, q, args, scanDirector)
	if err != nil {
		return nil, fmt.Errorf("query directors: %w", err)
	}
	return directors, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Director, error) {
	q, args := query.NewBuilder(projection, defaultSort).
		WhereEquals("ID", id).
		Build()

	director, err := repository.QueryOne(ctx, r.db, q, args, scanDirector)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound)
	}
	return &director, nil
}

func (r *repo) Create(ctx context.Context, cmd Command) (*Director, error) {
	q := `
		INSERT INTO directors (first_name, last_name, nationality)
		VALUES ($1, $2, $3)
		RETURNING id, first_name, last_name, nationality, created_at, updated_at`

	director, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Director, error) {
		return repository.QueryOne(ctx, tx, q, []any{cmd.FirstName, cmd.LastName, cmd.Nationality}, scanDirector)
	})
	if err != nil {
		return nil, fmt.Errorf("insert director: %w", err)
	}

	r.logger.Info("director created", "id", director.ID, "name", director.FirstName+" "+director.LastName)
	return &director, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd Command) (*Director, error) {
	q := `
		UPDATE directors
		SET first_name = $2, last_name = $3, nationality = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING id, first_name, last_name, nationality, created_at, updated_at`

	director, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Director, error) {
		return repository.QueryOne(ctx, tx, q, []any{id, cmd.FirstName, cmd.LastName, cmd.Nationality}, scanDirector)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound)
	}

	r.logger.Info("director updated", "id", director.ID)
	return &director, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := repository.GuardedDelete(ctx, r.db, `DELETE FROM directors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete director: %w", err)
	}

	switch {
	case res.Referenced():
		metrics.GuardedDeletes.WithLabelValues("director", "referenced").Inc()
		r.logger.Info("director delete refused",
			"id", id,
			"referenced_by", res.Reference.Table,
			"constraint", res.Reference.Constraint,
		)
		return ErrReferenced
	case res.Rows == 0:
		metrics.GuardedDeletes.WithLabelValues("director", "not_found").Inc()
		return ErrNotFound
	}

	metrics.GuardedDeletes.WithLabelValues("director", "deleted").Inc()
	r.logger.Info("director deleted", "id", id)
	return nil
}
