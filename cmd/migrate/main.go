// Command migrate applies or reverts the catalog schema.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/JaimeStill/film-catalog/internal/config"
	"github.com/JaimeStill/film-catalog/internal/migrations"
	"github.com/JaimeStill/film-catalog/pkg/database"
	"github.com/JaimeStill/film-catalog/pkg/logging"
)

func main() {
	var (
		dir     = flag.String("config", ".", "directory holding config.toml")
		up      = flag.Bool("up", false, "apply all pending migrations")
		down    = flag.Bool("down", false, "revert all migrations")
		version = flag.Bool("version", false, "print the current schema version")
	)
	flag.Parse()

	if *up == *down && !*version {
		fmt.Println("usage: migrate [-config <dir>] -up | -down | -version")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load(*dir)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	logger := logging.New(&cfg.Logging)

	db, err := database.Open(&cfg.Database)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	m, err := migrations.New(db, logger)
	if err != nil {
		log.Fatalf("migrations init failed: %v", err)
	}

	switch {
	case *up:
		err = m.Up()
	case *down:
		err = m.Down()
	default:
		var (
			v     uint
			dirty bool
		)
		v, dirty, err = m.Version()
		if err == nil {
			fmt.Printf("version %d (dirty: %t)\n", v, dirty)
		}
	}
	if err != nil {
		log.Fatal(err)
	}
}
