// Package main provides the seed command for populating the document store
// with sample catalog data. Each seeder owns one kind and writes through that
// kind's repository, so seeded documents pass the same validation as
// dashboard edits.
package main

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/JaimeStill/tour-desk/internal/resource"
)

//go:embed seeds/*.json
var seedFiles embed.FS

// Seeder defines the interface for catalog seeders.
type Seeder interface {
	// Name returns the name of the kind this seeder populates.
	Name() string

	Kind() resource.Kind

	Description() string

	// Seed writes the seeder's documents from data into repo.
	Seed(ctx context.Context, repo *resource.Repository, data SeedData) (int, error)
}

// SeedData is the seed file layout: one array of documents per kind name.
type SeedData map[string]json.RawMessage

var seeders = map[string]Seeder{}

// registerSeeder adds a seeder to the global registry.
func registerSeeder(s Seeder) {
	seeders[s.Name()] = s
}

func getSeeder(name string) (Seeder, bool) {
	s, ok := seeders[name]
	return s, ok
}

// listSeeders returns all registered seeders sorted by name.
func listSeeders() []Seeder {
	result := make([]Seeder, 0, len(seeders))
	for _, s := range seeders {
		result = append(result, s)
	}
	slices.SortFunc(result, func(a, b Seeder) int {
		switch {
		case a.Name() < b.Name():
			return -1
		case a.Name() > b.Name():
			return 1
		}
		return 0
	})
	return result
}

// loadSeedData reads path, or the embedded catalog when path is empty.
func loadSeedData(path string) (SeedData, error) {
	var content []byte
	var err error

	if path != "" {
		content, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	} else {
		content, err = seedFiles.ReadFile("seeds/catalog.json")
		if err != nil {
			return nil, fmt.Errorf("read embedded seed file: %w", err)
		}
	}

	var data SeedData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	return data, nil
}

// runSeeder seeds one kind. A kind that already holds documents is skipped
// unless force is set, which keeps repeated runs from duplicating data.
func runSeeder(ctx context.Context, repos map[string]*resource.Repository, data SeedData, name string, force bool) (int, error) {
	seeder, ok := getSeeder(name)
	if !ok {
		return 0, fmt.Errorf("seeder not found: %s", name)
	}

	repo, ok := repos[name]
	if !ok {
		return 0, fmt.Errorf("no repository for %s", name)
	}

	if !force {
		existing, err := repo.List(ctx)
		if err != nil {
			return 0, fmt.Errorf("seed %s: %w", name, err)
		}
		if len(existing) > 0 {
			return 0, nil
		}
	}

	n, err := seeder.Seed(ctx, repo, data)
	if err != nil {
		return n, fmt.Errorf("seed %s: %w", name, err)
	}
	return n, nil
}
