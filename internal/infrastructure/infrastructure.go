// Package infrastructure assembles the shared systems every catalog module
// depends on.
package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/film-catalog/internal/config"
	"github.com/JaimeStill/film-catalog/pkg/database"
	"github.com/JaimeStill/film-catalog/pkg/lifecycle"
	"github.com/JaimeStill/film-catalog/pkg/logging"
	"github.com/JaimeStill/film-catalog/pkg/storage"
	"github.com/JaimeStill/film-catalog/pkg/validation"
)

// Infrastructure holds the systems shared by the domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Validator *validation.Validator
}

// New builds the shared systems from cfg without starting them.
func New(cfg *config.Config) (*Infrastructure, error) {
	logger := logging.New(&cfg.Logging)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Validator: validation.New(),
	}, nil
}

// Start registers the database and poster storage with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}
