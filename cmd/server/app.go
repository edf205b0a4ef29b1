package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/servicereview/service-review-api/internal/config"
	"github.com/servicereview/service-review-api/internal/platform/mongodb"
	"github.com/servicereview/service-review-api/internal/service/auth"
	"github.com/servicereview/service-review-api/internal/service/workflow"
	"github.com/servicereview/service-review-api/internal/store"
)

// application holds the wired dependencies shared by the router and the
// HTTP server lifecycle.
type application struct {
	config *config.Config
	logger *slog.Logger
	client *mongo.Client

	serviceStore     store.ServiceStore
	applicationStore store.ApplicationStore
	jwtService       auth.JWTService
	workflow         workflow.ApplicationWorkflow
}

// newApplication wires the stores and services against the connected
// client. All dependencies flow in from here; nothing reaches for
// process-wide state.
func newApplication(
	cfg *config.Config,
	logger *slog.Logger,
	client *mongo.Client,
) (*application, error) {
	db := client.Database(cfg.Database.Name)

	serviceStore := mongodb.NewMongoServiceStore(db, logger)
	applicationStore := mongodb.NewMongoApplicationStore(db, logger)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	wf := workflow.NewApplicationWorkflow(serviceStore, applicationStore, logger)

	return &application{
		config:           cfg,
		logger:           logger,
		client:           client,
		serviceStore:     serviceStore,
		applicationStore: applicationStore,
		jwtService:       jwtService,
		workflow:         wf,
	}, nil
}

// cleanup releases resources on shutdown.
func (app *application) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.client.Disconnect(ctx); err != nil {
		app.logger.Error("Failed to disconnect from database", "error", err)
		return
	}
	app.logger.Info("Disconnected from database")
}
