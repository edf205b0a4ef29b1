package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/servicereview/service-review-api/internal/api/shared"
	"github.com/servicereview/service-review-api/internal/domain"
	"github.com/servicereview/service-review-api/internal/platform/logger"
	"github.com/servicereview/service-review-api/internal/store"
)

// ServiceHandler handles service-related HTTP requests.
type ServiceHandler struct {
	services store.ServiceStore
	logger   *slog.Logger
}

// NewServiceHandler creates a new ServiceHandler.
func NewServiceHandler(services store.ServiceStore, log *slog.Logger) *ServiceHandler {
	if log == nil {
		log = slog.Default()
	}

	return &ServiceHandler{
		services: services,
		logger:   log.With(slog.String("component", "service_handler")),
	}
}

// List handles GET /services?email=&search= requests.
// Both query parameters are optional; together they AND-combine.
func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	filter := store.ServiceFilter{
		OwnerEmail: r.URL.Query().Get("email"),
		SearchText: r.URL.Query().Get("search"),
	}

	services, err := h.services.List(r.Context(), filter)
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.Debug("listed services", slog.Int("count", len(services)))
	shared.RespondWithJSON(w, r, http.StatusOK, services)
}

// Get handles GET /services/{id} requests.
func (h *ServiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	svc, err := h.services.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, svc)
}

// Create handles POST /services requests.
// The body is stored verbatim; providers own the document shape.
func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var svc domain.Service
	if err := shared.DecodeJSON(r, &svc); err != nil {
		log.Warn("invalid service request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest,
			CodeValidationFailed, "Invalid request format")
		return
	}

	id, err := h.services.Create(r.Context(), &svc)
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.Debug("service created", slog.String("service_id", id))
	shared.RespondWithJSON(w, r, http.StatusCreated, InsertResponse{InsertedID: id})
}

// Delete handles DELETE /services/{id} requests.
func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.services.Delete(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DeleteResponse{DeletedCount: deleted})
}
