// Package main provides the seed command for populating the catalog with
// initial data. Seeders run individually or together in one transaction.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"maps"
	"slices"
)

// Seeder populates one slice of catalog data.
type Seeder interface {
	Name() string
	Description() string
	// Seed runs inside tx so several seeders commit or fail together.
	Seed(ctx context.Context, tx *sql.Tx) error
}

var seeders = map[string]Seeder{}

// registerSeeder adds a seeder to the registry. Seeders self-register via init().
func registerSeeder(s Seeder) {
	seeders[s.Name()] = s
}

func getSeeder(name string) (Seeder, bool) {
	s, ok := seeders[name]
	return s, ok
}

// listSeeders returns the registered seeders ordered by name.
func listSeeders() []Seeder {
	result := make([]Seeder, 0, len(seeders))
	for _, name := range slices.Sorted(maps.Keys(seeders)) {
		result = append(result, seeders[name])
	}
	return result
}

// runSeeders executes the given seeders in order within a single transaction.
func runSeeders(ctx context.Context, db *sql.DB, list ...Seeder) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, s := range list {
		if err := s.Seed(ctx, tx); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
