package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/insightdrift/insightdrift/internal/config"
	store "github.com/insightdrift/insightdrift/internal/repository"
	"github.com/insightdrift/insightdrift/internal/service"
	handler "github.com/insightdrift/insightdrift/internal/transport/http"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting insightdrift...")
	log.Printf("Public HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Internal HTTP Port: %d", cfg.InternalPort)
	log.Printf("Database: %s", cfg.DatabaseURL)

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Initialize service
	svc := service.New(db, cfg)

	if cfg.SeedDemoExperiment {
		if err := svc.EnsureDemoExperiment(context.Background()); err != nil {
			log.Fatalf("Failed to seed demo experiment: %v", err)
		}
	}

	// Create servers
	publicServer := handler.NewPublicServer(svc)
	internalServer := handler.NewInternalServer(svc)

	// Start public server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := publicServer.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start public server: %v", err)
		}
	}()

	// Start internal server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.InternalPort)
		if err := internalServer.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start internal server: %v", err)
		}
	}()

	log.Printf("Public API started on port %d", cfg.HTTPPort)
	log.Printf("Internal API started on port %d", cfg.InternalPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down insightdrift...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := publicServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown public server gracefully: %v", err)
	}
	if err := internalServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown internal server gracefully: %v", err)
	}

	log.Println("insightdrift stopped")
}
