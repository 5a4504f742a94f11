package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/JaimeStill/tour-desk/internal/config"
	"github.com/JaimeStill/tour-desk/internal/infrastructure"
	"github.com/JaimeStill/tour-desk/internal/resource"
)

func main() {
	var (
		all   = flag.Bool("all", false, "Run all seeders")
		kinds = flag.String("kinds", "", "Comma-separated kinds to seed")
		file  = flag.String("file", "", "External seed file (overrides embedded)")
		force = flag.Bool("force", false, "Seed kinds that already hold documents")
		list  = flag.Bool("list", false, "List available seeders")
	)
	flag.Parse()

	if *list {
		fmt.Println("Available seeders:")
		for _, s := range listSeeders() {
			fmt.Printf("  - %s: %s\n", s.Name(), s.Description())
		}
		return
	}

	var names []string
	switch {
	case *all:
		for _, s := range listSeeders() {
			names = append(names, s.Name())
		}
	case *kinds != "":
		for name := range strings.SplitSeq(*kinds, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
	default:
		fmt.Println("usage: seed [-all|-kinds services,packages] [-file <path>] [-force] [-list]")
		flag.PrintDefaults()
		return
	}

	if err := run(names, *file, *force); err != nil {
		log.Fatal(err)
	}
}

func run(names []string, file string, force bool) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("env file load failed: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	data, err := loadSeedData(file)
	if err != nil {
		return err
	}

	ctx := context.Background()

	infra, err := infrastructure.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("infrastructure init failed: %w", err)
	}
	if err := infra.Start(); err != nil {
		return fmt.Errorf("infrastructure start failed: %w", err)
	}
	infra.Lifecycle.WaitForStartup()
	defer infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration())

	repos := map[string]*resource.Repository{}
	for _, s := range listSeeders() {
		repos[s.Name()] = resource.NewRepository(s.Kind(), infra.Store, infra.Logger)
	}

	for _, name := range names {
		n, err := runSeeder(ctx, repos, data, name, force)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d documents seeded\n", name, n)
	}

	return nil
}
