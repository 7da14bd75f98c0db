package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipeswipe/config"
	"github.com/pageza/recipeswipe/internal/database"
	"github.com/pageza/recipeswipe/internal/server"
	"github.com/pageza/recipeswipe/internal/service"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	if err := database.Migrate(db, cfg.MigrationsDir); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	rdb, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	if rdb != nil {
		defer rdb.Close()
	} else {
		log.Println("Redis not configured, using in-process caches and rate limits")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store service.ObjectStore
	s3, err := config.NewS3Config(ctx, cfg)
	switch {
	case errors.Is(err, config.ErrStorageDisabled):
	case err != nil:
		log.Fatalf("Failed to configure image storage: %v", err)
	default:
		store = s3
	}

	srv := server.New(cfg, db, rdb, store)

	log.Println("Starting server...")
	if err := srv.Start(ctx, cfg.Addr()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}
