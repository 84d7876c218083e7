package api

import (
	"github.com/JaimeStill/film-catalog/internal/actors"
	"github.com/JaimeStill/film-catalog/internal/directors"
	"github.com/JaimeStill/film-catalog/internal/films"
	"github.com/JaimeStill/film-catalog/internal/posters"
)

// Domain holds the catalog systems.
type Domain struct {
	Actors    actors.System
	Directors directors.System
	Posters   posters.System
	Films     films.System
}

// NewDomain builds the catalog systems. The film aggregate resolves its
// references through the actor and director systems.
func NewDomain(runtime *Runtime) *Domain {
	db := runtime.Database.Connection()

	actorsSys := actors.New(db, runtime.Logger)
	directorsSys := directors.New(db, runtime.Logger)
	postersSys := posters.New(runtime.Storage, runtime.Logger)

	filmsSys := films.New(
		films.NewStore(db, runtime.Logger),
		directorsSys,
		actorsSys,
		postersSys,
		runtime.Logger,
	)

	return &Domain{
		Actors:    actorsSys,
		Directors: directorsSys,
		Posters:   postersSys,
		Films:     filmsSys,
	}
}
