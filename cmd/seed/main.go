package main

import (
	"context"
	_ "embed"
	"flag"
	"log"
	"os"

	"github.com/pageza/recipeswipe/config"
	"github.com/pageza/recipeswipe/internal/database"
	"github.com/pageza/recipeswipe/internal/service"
)

//go:embed seed.yaml
var defaultSeed []byte

func main() {
	file := flag.String("file", "", "YAML seed file (defaults to the bundled fixture)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db, cfg.MigrationsDir); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	data := defaultSeed
	if *file != "" {
		if data, err = os.ReadFile(*file); err != nil {
			log.Fatalf("Failed to read seed file: %v", err)
		}
	}
	seed, err := ParseSeedFile(data)
	if err != nil {
		log.Fatal(err)
	}

	auth := service.NewAuthService(db, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, nil)
	recipes := service.NewRecipeService(db, nil, cfg.DiscoverLimit)

	n, err := Seed(context.Background(), db, auth, recipes, seed)
	if err != nil {
		log.Fatalf("Seeding stopped after %d recipes: %v", n, err)
	}
	log.Printf("Successfully seeded %d users and %d recipes", len(seed.Users), n)
}
