package films

import (
	"github.com/google/uuid"

	"github.com/JaimeStill/film-catalog/internal/actors"
	"github.com/JaimeStill/film-catalog/pkg/query"
	"github.com/JaimeStill/film-catalog/pkg/repository"
)

var filmProjection = query.
	NewProjectionMap("public", "films", "f").
	Project("id", "ID").
	Project("title", "Title").
	Project("description", "Description").
	Project("poster", "Poster").
	Project("release_date", "ReleaseDate").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var directorProjection = query.
	NewProjectionMap("public", "directors", "d").
	Project("id", "DirectorID").
	Project("first_name", "DirectorFirstName").
	Project("last_name", "DirectorLastName").
	Project("nationality", "DirectorNationality").
	Project("created_at", "DirectorCreatedAt").
	Project("updated_at", "DirectorUpdatedAt")

var castProjection = query.
	NewProjectionMap("public", "film_actors", "fa").
	Project("film_id", "FilmID")

var actorProjection = query.
	NewProjectionMap("public", "actors", "a").
	Project("id", "ActorID").
	Project("first_name", "ActorFirstName").
	Project("last_name", "ActorLastName").
	Project("nationality", "ActorNationality").
	Project("created_at", "ActorCreatedAt").
	Project("updated_at", "ActorUpdatedAt")

var (
	defaultSort = query.SortField{Field: "Title"}
	castSort    = []query.SortField{{Field: "ActorLastName"}, {Field: "ActorFirstName"}}
)

func scanFilm(s repository.Scanner) (Film, error) {
	var f Film
	d := &f.Director
	err := s.Scan(
		&f.ID, &f.Title, &f.Description, &f.Poster,
		&f.ReleaseDate.Time, &f.CreatedAt, &f.UpdatedAt,
		&d.ID, &d.FirstName, &d.LastName, &d.Nationality,
		&d.CreatedAt, &d.UpdatedAt,
	)
	return f, err
}

// castMember is one film_actors row joined with its actor.
type castMember struct {
	FilmID uuid.UUID
	Actor  actors.Actor
}

func scanCastMember(s repository.Scanner) (castMember, error) {
	var c castMember
	a := &c.Actor
	err := s.Scan(
		&c.FilmID,
		&a.ID, &a.FirstName, &a.LastName, &a.Nationality,
		&a.CreatedAt, &a.UpdatedAt,
	)
	return c, err
}

func scanID(s repository.Scanner) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.Scan(&id)
	return id, err
}
