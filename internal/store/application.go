package store

import (
	"context"

	"github.com/servicereview/service-review-api/internal/domain"
)

// UpdateResult reports how many documents an update matched and modified.
// The counts are surfaced to clients in the driver's acknowledgement shape.
type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// ApplicationStore defines the interface for application data persistence.
type ApplicationStore interface {
	// FindByApplicant returns all applications with the given
	// applicant_email, unenriched. Returns an empty slice, never nil.
	FindByApplicant(ctx context.Context, email string) ([]*domain.Application, error)

	// FindByService returns all applications referencing the given
	// service id, unenriched. Returns an empty slice, never nil.
	FindByService(ctx context.Context, serviceID string) ([]*domain.Application, error)

	// GetByID retrieves an application by its id, unenriched.
	// Returns ErrApplicationNotFound if it does not exist and
	// ErrInvalidID if the id is not a valid document id.
	GetByID(ctx context.Context, id string) (*domain.Application, error)

	// Create inserts the application exactly as supplied and returns the
	// assigned id. Field-level validation is the workflow's concern.
	Create(ctx context.Context, app *domain.Application) (string, error)

	// UpdateStatus sets the status field on the application. A zero
	// MatchedCount means the application does not exist.
	UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) (UpdateResult, error)

	// Delete removes an application by id and returns the number of
	// documents deleted (0 or 1).
	Delete(ctx context.Context, id string) (int64, error)
}
