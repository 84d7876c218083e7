// Package database owns the PostgreSQL connection pool used by the catalog.
// Connections go through the pgx stdlib driver so stores can stay on database/sql.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/JaimeStill/film-catalog/pkg/lifecycle"
)

// System exposes the connection pool and ties it to the service lifecycle.
type System interface {
	Connection() *sql.DB
	Start(lc *lifecycle.Coordinator) error
}

type database struct {
	conn   *sql.DB
	logger *slog.Logger
	cfg    *Config
}

// New opens a pool for cfg. No connection is made until Start pings it.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	conn, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	return &database{
		conn:   conn,
		logger: logger.With("system", "database"),
		cfg:    cfg,
	}, nil
}

// Open creates a configured *sql.DB without registering lifecycle hooks.
func Open(cfg *Config) (*sql.DB, error) {
	conn, err := sql.Open("pgx", cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return conn, nil
}

func (d *database) Connection() *sql.DB {
	return d.conn
}

func (d *database) Start(lc *lifecycle.Coordinator) error {
	d.logger.Info("starting database", "host", d.cfg.Host, "name", d.cfg.Name)

	lc.OnStartup(func() {
		ctx, cancel := context.WithTimeout(lc.Context(), d.cfg.ConnTimeoutDuration())
		defer cancel()

		if err := d.conn.PingContext(ctx); err != nil {
			d.logger.Error("database ping failed", "error", err)
			return
		}
		d.logger.Info("database connection established")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		if err := d.conn.Close(); err != nil {
			d.logger.Error("database close failed", "error", err)
			return
		}
		d.logger.Info("database connection closed")
	})

	return nil
}
