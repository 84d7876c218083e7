// Package directors manages film directors. Every film names exactly one
// director, so a director with films cannot be deleted.
package directors

import (
	"time"

	"github.com/google/uuid"
)

type Director struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Nationality string    `json:"nationality"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Command carries the attributes for creating or replacing a director.
type Command struct {
	FirstName   string `json:"first_name" validate:"required,max=100"`
	LastName    string `json:"last_name" validate:"required,max=100"`
	Nationality string `json:"nationality" validate:"required,max=100"`
}
