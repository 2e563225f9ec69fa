package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/marktivo/growth-os/internal/api"
	"github.com/marktivo/growth-os/internal/config"
	"github.com/marktivo/growth-os/internal/dataset"
	"github.com/marktivo/growth-os/internal/store"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Select the batch store
	var st store.Store
	switch cfg.Store.Type {
	case "redis":
		redisStore, err := store.NewRedisStore(ctx, cfg.Store)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		st = redisStore
		log.Printf("Using Redis batch store at %s", cfg.Store.RedisAddr)
	default:
		st = store.NewMemoryStore()
		log.Println("Using in-memory batch store")
	}
	defer st.Close()

	// Generate the initial batch so the API has data from the first request
	batch, err := dataset.Generate(cfg.Generation.Seed, cfg)
	if err != nil {
		log.Fatalf("Failed to generate initial batch: %v", err)
	}
	if err := st.Save(ctx, batch); err != nil {
		log.Fatalf("Failed to save initial batch: %v", err)
	}
	log.Printf("Initial batch %s generated (seed=%d, window=%d days)",
		batch.ID, batch.Seed, batch.WindowDays)

	handlers := api.NewHandlers(st, cfg)
	router := api.SetupRoutes(handlers)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// Setup graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
