package main

import (
	"time"

	"github.com/JaimeStill/film-catalog/internal/api"
	"github.com/JaimeStill/film-catalog/internal/config"
	"github.com/JaimeStill/film-catalog/internal/infrastructure"
)

// Server coordinates the lifecycle of all subsystems.
type Server struct {
	infra *infrastructure.Infrastructure
	http  *httpServer
}

// NewServer builds the infrastructure, mounts the API module and prepares the listener.
func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra)
	router.Mount(api.NewModule(cfg, infra))

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"api", cfg.API.BasePath,
	)

	return &Server{
		infra: infra,
		http:  newHTTPServer(&cfg.Server, router, infra.Logger),
	}, nil
}

// Start begins all subsystems. Readiness is reported once startup hooks finish.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("all subsystems ready")
	}()

	return nil
}

// Shutdown stops all subsystems within timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}
