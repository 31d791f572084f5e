package main

import (
	"context"
	"log"
	"time"

	"subcontrol-be/internal/bootstrap"
	"subcontrol-be/internal/config"
	"subcontrol-be/internal/pkg/logger"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Error: %v", err)
	}
	if cfg.Store.Backend == config.StoreMemory {
		log.Fatal("Error: the memory store seeds itself on start; set STORE_BACKEND to file or postgres")
	}

	factory, closeStore, err := bootstrap.OpenStore(cfg, logger.NewConsoleLogger())
	if err != nil {
		log.Fatal("Error: Failed to open store:", err)
	}
	defer closeStore()

	log.Println("Seeding demo data...")
	seeded, err := bootstrap.SeedStore(context.Background(), factory, bootstrap.DemoState(time.Now()))
	if err != nil {
		log.Fatalf("Error: seeding failed: %v", err)
	}
	if !seeded {
		log.Println("Store already has customers, skipping...")
		return
	}
	log.Println("Seeding completed!")
}
