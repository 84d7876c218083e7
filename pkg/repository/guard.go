package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Reference identifies the row that blocked a delete.
type Reference struct {
	Table      string
	Constraint string
}

// DeleteResult is the outcome of a guarded delete. A non-nil Reference
// means the delete was refused by a foreign key and nothing was removed.
type DeleteResult struct {
	Rows      int64
	Reference *Reference
}

// Referenced reports whether the delete was blocked by a referencing row.
func (r DeleteResult) Referenced() bool {
	return r.Reference != nil
}

// GuardedDelete runs a DELETE and reports a foreign key violation as a
// Reference instead of an error. Any other failure is returned as an error.
func GuardedDelete(ctx context.Context, db Executor, q string, args ...any) (DeleteResult, error) {
	result, err := db.ExecContext(ctx, q, args...)
	if err != nil {
		if ref, ok := foreignKeyReference(err); ok {
			return DeleteResult{Reference: ref}, nil
		}
		return DeleteResult{}, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return DeleteResult{}, err
	}
	return DeleteResult{Rows: n}, nil
}

func foreignKeyReference(err error) (*Reference, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != codeForeignKeyViolation {
		return nil, false
	}
	return &Reference{
		Table:      pgErr.TableName,
		Constraint: pgErr.ConstraintName,
	}, true
}
