package actors

import (
	"github.com/JaimeStill/film-catalog/pkg/query"
	"github.com/JaimeStill/film-catalog/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "actors", "a").
	Project("id", "ID").
	Project("first_name", "FirstName").
	Project("last_name", "LastName").
	Project("nationality", "Nationality").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{Field: "LastName"}

func scanActor(s repository.Scanner) (Actor, error) {
	var a Actor
	err := s.Scan(
		&a.ID, &a.FirstName, &a.LastName,
		&a.Nationality, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}
