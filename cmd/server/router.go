package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/servicereview/service-review-api/internal/api"
	apiMiddleware "github.com/servicereview/service-review-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Reads are public; every mutating route sits behind the
// session gate.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(app.jwtService, app.config.Auth.CookieSecure, app.logger)
	serviceHandler := api.NewServiceHandler(app.serviceStore, app.logger)
	applicationHandler := api.NewApplicationHandler(app.workflow, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	// Session endpoints (public)
	r.Post("/jwt", authHandler.IssueSession)
	r.Post("/logout", authHandler.ClearSession)

	// Service endpoints
	r.Route("/services", func(r chi.Router) {
		r.Get("/", serviceHandler.List)
		r.Get("/{id}", serviceHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireSession)
			r.Post("/", serviceHandler.Create)
			r.Delete("/{id}", serviceHandler.Delete)
		})
	})

	// Application endpoints
	r.Route("/service-application", func(r chi.Router) {
		r.Get("/", applicationHandler.ListByApplicant)
		r.Get("/services/{service_id}", applicationHandler.ListByService)
		r.Get("/{id}", applicationHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireSession)
			r.Post("/", applicationHandler.Create)
			r.Patch("/{id}", applicationHandler.UpdateStatus)
			r.Delete("/{id}", applicationHandler.Delete)
		})
	})

	// Liveness message kept for the paired front end
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("Service review System")); err != nil {
			app.logger.Error("Failed to write liveness response", "error", err)
		}
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
