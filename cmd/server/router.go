package main

import (
	"net/http"

	"github.com/JaimeStill/film-catalog/internal/infrastructure"
	"github.com/JaimeStill/film-catalog/pkg/metrics"
	"github.com/JaimeStill/film-catalog/pkg/module"
)

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	metrics.Init()
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	})

	router.HandleNative("GET /metrics", metrics.Handler().ServeHTTP)

	return router
}
