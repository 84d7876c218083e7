package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/JaimeStill/film-catalog/internal/config"
	"github.com/JaimeStill/film-catalog/pkg/database"
)

func main() {
	var (
		dir  = flag.String("config", ".", "directory holding config.toml")
		all  = flag.Bool("all", false, "run all seeders")
		name = flag.String("seeder", "", "run a single seeder by name")
		file = flag.String("file", "", "external catalog seed file (overrides embedded)")
		list = flag.Bool("list", false, "list available seeders")
	)
	flag.Parse()

	if *list {
		fmt.Println("Available seeders:")
		for _, s := range listSeeders() {
			fmt.Printf("  - %s: %s\n", s.Name(), s.Description())
		}
		return
	}

	var selected []Seeder
	switch {
	case *all:
		selected = listSeeders()
	case *name != "":
		s, ok := getSeeder(*name)
		if !ok {
			log.Fatalf("seeder not found: %s", *name)
		}
		selected = []Seeder{s}
	default:
		fmt.Println("usage: seed [-config <dir>] [-all | -seeder <name>] [-file <path>] [-list]")
		flag.PrintDefaults()
		return
	}

	if *file != "" {
		if s, ok := getSeeder("catalog"); ok {
			s.(*CatalogSeeder).SetFile(*file)
		}
	}

	cfg, err := config.Load(*dir)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	db, err := database.Open(&cfg.Database)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnTimeoutDuration())
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := runSeeders(context.Background(), db, selected...); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	fmt.Printf("%d seeder(s) completed successfully\n", len(selected))
}
