// Package workflow implements the application workflow: creation with
// counter maintenance, read-time enrichment with service fields, status
// transitions, and deletion. It orchestrates the service and application
// stores; it holds no state of its own.
package workflow

import (
	"context"

	"github.com/servicereview/service-review-api/internal/domain"
	"github.com/servicereview/service-review-api/internal/store"
)

// ApplicationWorkflow provides the cross-record operations over
// applications and the services they reference.
type ApplicationWorkflow interface {
	// ListByApplicant returns the applicant's applications, each enriched
	// with the referenced service's display fields when the reference
	// resolves. A dangling or failed lookup never drops the application;
	// it only omits the derived fields.
	ListByApplicant(ctx context.Context, email string) ([]*domain.Application, error)

	// ListByService returns the applications referencing a service,
	// unenriched.
	ListByService(ctx context.Context, serviceID string) ([]*domain.Application, error)

	// Get retrieves one application by id, enriched like ListByApplicant.
	// Returns store.ErrApplicationNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Application, error)

	// Create validates and inserts an application, then atomically
	// increments the referenced service's applicationCount.
	// Returns domain.ErrMissingServiceID when service_id is absent and
	// store.ErrServiceNotFound when it references no existing service.
	// An empty status defaults to pending.
	Create(ctx context.Context, app *domain.Application) (string, error)

	// UpdateStatus moves an application to a new status, enforcing the
	// pending → {approved, rejected} state machine. Returns
	// domain.ErrInvalidStatus for unknown values and
	// domain.ErrInvalidTransition for moves out of a terminal state.
	UpdateStatus(ctx context.Context, id string, status string) (store.UpdateResult, error)

	// Delete removes an application and atomically decrements the
	// referenced service's applicationCount, floored at zero.
	// Returns store.ErrApplicationNotFound if the application does not exist.
	Delete(ctx context.Context, id string) (int64, error)
}
