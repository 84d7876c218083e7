package api

import (
	"net/http"

	"github.com/JaimeStill/film-catalog/internal/actors"
	"github.com/JaimeStill/film-catalog/internal/directors"
	"github.com/JaimeStill/film-catalog/internal/films"
	"github.com/JaimeStill/film-catalog/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, runtime *Runtime, domain *Domain) {
	actorsHandler := actors.NewHandler(domain.Actors, runtime.Logger, runtime.Validator)
	directorsHandler := directors.NewHandler(domain.Directors, runtime.Logger, runtime.Validator)
	filmsHandler := films.NewHandler(domain.Films, runtime.Logger, runtime.Validator, runtime.MaxUploadSize)

	routes.Register(
		mux,
		actorsHandler.Routes(),
		directorsHandler.Routes(),
		filmsHandler.Routes(),
	)
}
