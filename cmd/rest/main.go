package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"subcontrol-be/internal/bootstrap"
	"subcontrol-be/internal/config"
	"subcontrol-be/internal/server"
	"subcontrol-be/internal/tracer"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.Auth.JwtSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// 2. Tracing
	shutdownTracer := tracer.InitTracer(cfg.App.OtelEnabled, cfg.App.OtelEndpoint)
	defer shutdownTracer(context.Background())

	// 3. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(cfg)
	if err != nil {
		log.Fatalf("Failed to bootstrap: %v", err)
	}
	defer container.Close()

	// 4. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		if err := srv.Run(); err != nil {
			container.Logger.Error("SERVER", "Server stopped", map[string]interface{}{"error": err.Error()})
		}
	}()

	// 5. Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		container.Logger.Error("SERVER", "Graceful shutdown failed", map[string]interface{}{"error": err.Error()})
	}
}
