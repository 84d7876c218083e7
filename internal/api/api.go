// Package api assembles the catalog HTTP module mounted under the API base path.
package api

import (
	"net/http"

	"github.com/JaimeStill/film-catalog/internal/config"
	"github.com/JaimeStill/film-catalog/internal/infrastructure"
	"github.com/JaimeStill/film-catalog/pkg/middleware"
	"github.com/JaimeStill/film-catalog/pkg/module"
)

// NewModule builds the API module with its domain systems and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) *module.Module {
	runtime := NewRuntime(infra, cfg.Storage.MaxUploadSizeBytes())
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	registerRoutes(mux, runtime, domain)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.TrimSlash())
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.Metrics())

	return m
}
