package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/npardra/clientdash/pkg/config"
	"github.com/npardra/clientdash/pkg/geo"
	"github.com/npardra/clientdash/pkg/loader"
	"github.com/npardra/clientdash/pkg/server"
)

func main() {
	log.Println("🚀 Starting clientdash server...")

	// Optional .env for local development; real deployments set the
	// environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("📄 Loaded settings from .env")
	}

	cfg := loader.Config{
		URI:      os.Getenv(config.EnvMongoURI),
		Database: os.Getenv(config.EnvMongoDB),
	}
	mongoLoader, err := loader.NewMongo(cfg)
	if err != nil {
		// Missing connection settings are fatal at startup, never defaulted.
		log.Fatalf("❌ %v", err)
	}
	log.Printf("⚙️  Configuration: database %q", cfg.Database)

	log.Println("🌍 Building country reference table for nationality resolution...")
	resolver := geo.NewResolver()

	handler := server.NewHandler(mongoLoader, resolver)
	port := getPort()

	router := mux.NewRouter()
	server.SetupRoutes(router, handler, port)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
	}

	go func() {
		log.Printf("📊 Dashboard API listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Server failed: %v", err)
		}
	}()

	// Block until we receive a shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("⚠️  Forced shutdown: %v", err)
	}
	log.Println("✅ Server stopped")
}

func getPort() string {
	if port := os.Getenv(config.EnvPort); port != "" {
		return port
	}
	return config.DefaultPort
}
