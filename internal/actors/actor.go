// Package actors manages the actors that films reference. Deleting an
// actor still cast in a film is refused.
package actors

import (
	"time"

	"github.com/google/uuid"
)

// Actor is a performer that can be cast in films.
type Actor struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Nationality string    `json:"nationality"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Command carries the attributes for creating or replacing an actor.
type Command struct {
	FirstName   string `json:"first_name" validate:"required,max=100"`
	LastName    string `json:"last_name" validate:"required,max=100"`
	Nationality string `json:"nationality" validate:"required,max=100"`
}
