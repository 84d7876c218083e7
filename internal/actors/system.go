package actors

import (
	"context"

	"github.com/google/uuid"
)

// System defines actor operations.
type System interface {
	List(ctx context.Context) ([]Actor, error)
	Find(ctx context.Context, id uuid.UUID) (*Actor, error)
	Create(ctx context.Context, cmd Command) (*Actor, error)
	Update(ctx context.Context, id uuid.UUID, cmd Command) (*Actor, error)
	// Delete removes an actor. It returns ErrReferenced when a film still
	// casts the actor and ErrNotFound when no actor has the id.
	Delete(ctx context.Context, id uuid.UUID) error
}
