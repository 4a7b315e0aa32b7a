package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/isc-ai/engine/config"
	"github.com/isc-ai/engine/credentials"
	"github.com/isc-ai/engine/gemini"
	"github.com/isc-ai/engine/media"
	"github.com/isc-ai/engine/router"
	"github.com/isc-ai/engine/stores"
	"github.com/isc-ai/engine/stream"
)

func main() {
	// Load .env file if it exists (not present in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	if cfg.GoogleCloudProject == "" || cfg.SearchAPIKey == "" {
		log.Println("Warning: missing GCP project id or search API key")
	}

	credentials.Ensure(cfg)

	store, err := stores.NewStore(stores.NewStoreConfig(cfg.DBType, cfg.DBConnection, cfg.DailyLimit))
	if err != nil {
		log.Fatalf("Failed to create usage store: %v", err)
	}
	defer store.Close()

	// Purge yesterday's counters shortly after each UTC midnight.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("5 0 * * *", func() {
		if err := store.PurgeStale(); err != nil {
			log.Printf("Usage purge error: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule usage purge: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	handlers := &router.Handlers{
		Config:    cfg,
		Gate:      store,
		Sessions:  router.NewAuthServiceChecker(cfg.AuthURL),
		Generator: gemini.NewClient(cfg),
		Media:     media.NewSearcher(cfg.SearchAPIKey),
		Composer:  stream.NewComposer(),
		Logger:    log.Default(),
	}

	r := router.New(handlers)
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
