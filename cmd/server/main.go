// Package main implements the entry point for the service review API
// server, which handles provider services, user applications to them, and
// cookie-based session authentication.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/servicereview/service-review-api/internal/config"
	"github.com/servicereview/service-review-api/internal/platform/logger"
	"github.com/servicereview/service-review-api/internal/platform/mongodb"
)

// main is the entry point for the service review API server.
// It initializes configuration, sets up logging, establishes the database
// connection, injects dependencies, and starts the HTTP server.
func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

// run loads configuration, wires the application together, and blocks
// until the server shuts down.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database", cfg.Database.Name)

	client, err := mongodb.Connect(context.Background(), cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	slog.Info("Connected to MongoDB", "database", cfg.Database.Name)

	app, err := newApplication(cfg, appLogger, client)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	router := app.setupRouter()
	return app.startHTTPServer(context.Background(), router)
}
