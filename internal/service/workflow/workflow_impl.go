package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/servicereview/service-review-api/internal/domain"
	"github.com/servicereview/service-review-api/internal/platform/logger"
	"github.com/servicereview/service-review-api/internal/store"
)

// enrichConcurrency bounds the per-application service lookups fanned out
// while enriching a listing.
const enrichConcurrency = 8

// Verify interface compliance at compile time
var _ ApplicationWorkflow = (*applicationWorkflowImpl)(nil)

// applicationWorkflowImpl implements the ApplicationWorkflow interface.
type applicationWorkflowImpl struct {
	services     store.ServiceStore
	applications store.ApplicationStore
	logger       *slog.Logger
}

// NewApplicationWorkflow creates a new ApplicationWorkflow implementation.
func NewApplicationWorkflow(
	services store.ServiceStore,
	applications store.ApplicationStore,
	log *slog.Logger,
) ApplicationWorkflow {
	if services == nil {
		panic("services cannot be nil")
	}
	if applications == nil {
		panic("applications cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &applicationWorkflowImpl{
		services:     services,
		applications: applications,
		logger:       log.With(slog.String("component", "application_workflow")),
	}
}

// ListByApplicant implements ApplicationWorkflow.ListByApplicant.
func (w *applicationWorkflowImpl) ListByApplicant(
	ctx context.Context,
	email string,
) ([]*domain.Application, error) {
	log := logger.FromContextOrDefault(ctx, w.logger)

	apps, err := w.applications.FindByApplicant(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications by applicant: %w", err)
	}

	w.enrichAll(ctx, apps)

	log.Debug("listed applications by applicant",
		slog.String("applicant_email", email),
		slog.Int("count", len(apps)))
	return apps, nil
}

// ListByService implements ApplicationWorkflow.ListByService.
func (w *applicationWorkflowImpl) ListByService(
	ctx context.Context,
	serviceID string,
) ([]*domain.Application, error) {
	apps, err := w.applications.FindByService(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications by service: %w", err)
	}
	return apps, nil
}

// Get implements ApplicationWorkflow.Get.
// Looks up the application collection, then enriches from the referenced
// service like the listing path does.
func (w *applicationWorkflowImpl) Get(ctx context.Context, id string) (*domain.Application, error) {
	app, err := w.applications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	w.enrich(ctx, app)
	return app, nil
}

// Create implements ApplicationWorkflow.Create.
// The insert and the counter adjustment are two store operations, but the
// adjustment is a single atomic increment, so concurrent creations against
// one service cannot lose counter updates.
func (w *applicationWorkflowImpl) Create(
	ctx context.Context,
	app *domain.Application,
) (string, error) {
	log := logger.FromContextOrDefault(ctx, w.logger)

	if err := app.Validate(); err != nil {
		log.Warn("application validation failed",
			slog.String("error", err.Error()),
			slog.String("applicant_email", app.ApplicantEmail))
		return "", err
	}
	if app.Status == "" {
		app.Status = domain.StatusPending
	}

	// Reject dangling references up front; the counter increment below
	// would otherwise silently target a nonexistent document.
	if _, err := w.services.GetByID(ctx, app.ServiceID); err != nil {
		if errors.Is(err, store.ErrInvalidID) || store.IsNotFoundError(err) {
			log.Warn("application references unknown service",
				slog.String("service_id", app.ServiceID))
			return "", store.ErrServiceNotFound
		}
		return "", fmt.Errorf("failed to verify referenced service: %w", err)
	}

	id, err := w.applications.Create(ctx, app)
	if err != nil {
		return "", fmt.Errorf("failed to create application: %w", err)
	}

	if err := w.services.IncrementApplicationCount(ctx, app.ServiceID, 1); err != nil {
		// The application exists; the counter is best-effort from here.
		log.Error("failed to increment application count",
			slog.String("error", err.Error()),
			slog.String("service_id", app.ServiceID),
			slog.String("application_id", id))
	}

	log.Info("application created",
		slog.String("application_id", id),
		slog.String("service_id", app.ServiceID))
	return id, nil
}

// UpdateStatus implements ApplicationWorkflow.UpdateStatus.
func (w *applicationWorkflowImpl) UpdateStatus(
	ctx context.Context,
	id string,
	rawStatus string,
) (store.UpdateResult, error) {
	log := logger.FromContextOrDefault(ctx, w.logger)

	status, err := domain.ParseStatus(rawStatus)
	if err != nil {
		log.Warn("invalid application status",
			slog.String("application_id", id),
			slog.String("status", rawStatus))
		return store.UpdateResult{}, err
	}

	current, err := w.applications.GetByID(ctx, id)
	if err != nil {
		return store.UpdateResult{}, err
	}

	from := current.Status
	if from == "" {
		from = domain.StatusPending
	}
	if !from.CanTransitionTo(status) {
		log.Warn("invalid status transition",
			slog.String("application_id", id),
			slog.String("from", string(from)),
			slog.String("to", string(status)))
		return store.UpdateResult{}, fmt.Errorf("%w: %s -> %s",
			domain.ErrInvalidTransition, from, status)
	}

	res, err := w.applications.UpdateStatus(ctx, id, status)
	if err != nil {
		return store.UpdateResult{}, fmt.Errorf("failed to update application status: %w", err)
	}
	return res, nil
}

// Delete implements ApplicationWorkflow.Delete.
func (w *applicationWorkflowImpl) Delete(ctx context.Context, id string) (int64, error) {
	log := logger.FromContextOrDefault(ctx, w.logger)

	// Fetch first: the service reference is needed for the decrement and
	// is gone once the document is deleted.
	app, err := w.applications.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}

	deleted, err := w.applications.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete application: %w", err)
	}

	if deleted > 0 && app.ServiceID != "" {
		if err := w.services.IncrementApplicationCount(ctx, app.ServiceID, -1); err != nil {
			log.Error("failed to decrement application count",
				slog.String("error", err.Error()),
				slog.String("service_id", app.ServiceID),
				slog.String("application_id", id))
		}
	}

	log.Info("application deleted",
		slog.String("application_id", id),
		slog.Int64("deleted_count", deleted))
	return deleted, nil
}

// enrichAll resolves service references for a batch of applications
// concurrently. Each lookup is isolated: one failure logs and leaves that
// application unenriched without affecting the rest.
func (w *applicationWorkflowImpl) enrichAll(ctx context.Context, apps []*domain.Application) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)

	for _, app := range apps {
		app := app
		g.Go(func() error {
			w.enrich(gctx, app)
			return nil
		})
	}

	// Goroutines never return errors; Wait only synchronizes.
	_ = g.Wait()
}

// enrich copies the referenced service's display fields onto one
// application. Missing references and lookup failures are logged and
// skipped, never surfaced.
func (w *applicationWorkflowImpl) enrich(ctx context.Context, app *domain.Application) {
	log := logger.FromContextOrDefault(ctx, w.logger)

	if app.ServiceID == "" {
		return
	}

	svc, err := w.services.GetByID(ctx, app.ServiceID)
	if err != nil {
		if store.IsNotFoundError(err) || errors.Is(err, store.ErrInvalidID) {
			log.Warn("service not found during enrichment",
				slog.String("service_id", app.ServiceID),
				slog.String("application_id", app.ID.Hex()))
		} else {
			log.Error("failed to fetch service during enrichment",
				slog.String("error", err.Error()),
				slog.String("service_id", app.ServiceID),
				slog.String("application_id", app.ID.Hex()))
		}
		return
	}

	app.Enrichment = svc.Snapshot()
}
