package directors

import (
	"context"

	"github.com/google/uuid"
)

// System defines director operations.
type System interface {
	List(ctx context.Context) ([]Director, error)
	Find(ctx context.Context, id uuid.UUID) (*Director, error)
	Create(ctx context.Context, cmd Command) (*Director, error)
	Update(ctx context.Context, id uuid.UUID, cmd Command) (*Director, error)
	// Delete fails with ErrReferenced while any film names the director.
	Delete(ctx context.Context, id uuid.UUID) error
}
