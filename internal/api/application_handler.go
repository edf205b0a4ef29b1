package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/servicereview/service-review-api/internal/api/shared"
	"github.com/servicereview/service-review-api/internal/domain"
	"github.com/servicereview/service-review-api/internal/platform/logger"
	"github.com/servicereview/service-review-api/internal/service/workflow"
)

// ApplicationHandler handles application-related HTTP requests.
type ApplicationHandler struct {
	workflow workflow.ApplicationWorkflow
	logger   *slog.Logger
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(wf workflow.ApplicationWorkflow, log *slog.Logger) *ApplicationHandler {
	if log == nil {
		log = slog.Default()
	}

	return &ApplicationHandler{
		workflow: wf,
		logger:   log.With(slog.String("component", "application_handler")),
	}
}

// ListByApplicant handles GET /service-application?email= requests.
// Each application is enriched with the referenced service's display
// fields when the reference resolves.
func (h *ApplicationHandler) ListByApplicant(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	email := r.URL.Query().Get("email")

	apps, err := h.workflow.ListByApplicant(r.Context(), email)
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.Debug("listed applications by applicant",
		slog.String("applicant_email", email),
		slog.Int("count", len(apps)))
	shared.RespondWithJSON(w, r, http.StatusOK, apps)
}

// ListByService handles GET /service-application/services/{service_id} requests.
func (h *ApplicationHandler) ListByService(w http.ResponseWriter, r *http.Request) {
	serviceID := chi.URLParam(r, "service_id")

	apps, err := h.workflow.ListByService(r.Context(), serviceID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, apps)
}

// Get handles GET /service-application/{id} requests, enriched like the
// listing endpoint.
func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	app, err := h.workflow.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, app)
}

// Create handles POST /service-application requests.
// The body must carry a service_id referencing an existing service.
func (h *ApplicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var app domain.Application
	if err := shared.DecodeJSON(r, &app); err != nil {
		log.Warn("invalid application request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest,
			CodeValidationFailed, "Invalid request format")
		return
	}

	id, err := h.workflow.Create(r.Context(), &app)
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.Debug("application created", slog.String("application_id", id))
	shared.RespondWithJSON(w, r, http.StatusCreated, InsertResponse{InsertedID: id})
}

// UpdateStatus handles PATCH /service-application/{id} requests.
func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id := chi.URLParam(r, "id")

	var req UpdateStatusRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid status request format",
			slog.String("error", err.Error()),
			slog.String("application_id", id))
		shared.RespondWithError(w, r, http.StatusBadRequest,
			CodeValidationFailed, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest,
			CodeValidationFailed, "Validation error", err)
		return
	}

	res, err := h.workflow.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		respondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, res)
}

// Delete handles DELETE /service-application/{id} requests.
func (h *ApplicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.workflow.Delete(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DeleteResponse{DeletedCount: deleted})
}
