// Package films owns the film aggregate: a film row, its director, its
// actor set and its poster asset. The System resolves every reference
// before mutating anything, then writes the poster and the database rows.
// Poster writes are not part of the database transaction.
package films

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/film-catalog/internal/actors"
	"github.com/JaimeStill/film-catalog/internal/directors"
)

// Film is a fully resolved film aggregate.
type Film struct {
	ID          uuid.UUID          `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Poster      string             `json:"poster"`
	ReleaseDate Date               `json:"release_date"`
	Director    directors.Director `json:"director"`
	Actors      []actors.Actor     `json:"actors"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// Upload is a poster payload with the client's file name.
type Upload struct {
	Filename string
	Data     []byte
}

// CreateCommand carries a new film. Poster and at least one actor are required.
type CreateCommand struct {
	Title       string      `json:"title" validate:"required,max=255"`
	Description string      `json:"description" validate:"required"`
	ReleaseDate Date        `json:"release_date" validate:"required"`
	ActorIDs    []uuid.UUID `json:"actor_ids" validate:"required,min=1"`
	DirectorID  uuid.UUID   `json:"director_id" validate:"required"`
	Poster      *Upload     `json:"-"`
}

// UpdateCommand replaces a film's attributes and references wholesale.
// A nil or empty Poster keeps the current poster.
type UpdateCommand struct {
	Title       string      `json:"title" validate:"required,max=255"`
	Description string      `json:"description" validate:"required"`
	ReleaseDate Date        `json:"release_date" validate:"required"`
	ActorIDs    []uuid.UUID `json:"actor_ids" validate:"required,min=1"`
	DirectorID  uuid.UUID   `json:"director_id" validate:"required"`
	Poster      *Upload     `json:"-"`
}

// Record is the persisted shape of a film handed to the Store.
type Record struct {
	Title       string
	Description string
	ReleaseDate Date
	Poster      string
	DirectorID  uuid.UUID
	Actors      ActorSet
}

// DateLayout is the wire format of release dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without time of day.
type Date struct {
	time.Time
}

// NewDate returns the Date for the given year, month and day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ActorSet is an ordered set of actor ids. Order is first occurrence.
type ActorSet []uuid.UUID

// NewActorSet collapses duplicate ids, keeping the first occurrence.
func NewActorSet(ids ...uuid.UUID) ActorSet {
	set := make(ActorSet, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(set, id) {
			set = append(set, id)
		}
	}
	return set
}

// Contains reports whether id is in the set.
func (s ActorSet) Contains(id uuid.UUID) bool {
	return slices.Contains(s, id)
}

// Diff compares s with next. added holds ids only in next, removed holds
// ids only in s. Ids present in both appear in neither.
func (s ActorSet) Diff(next ActorSet) (added, removed []uuid.UUID) {
	for _, id := range next {
		if !s.Contains(id) {
			added = append(added, id)
		}
	}
	for _, id := range s {
		if !next.Contains(id) {
			removed = append(removed, id)
		}
	}
	return added, removed
}
