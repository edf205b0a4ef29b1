package store

import (
	"context"

	"github.com/servicereview/service-review-api/internal/domain"
)

// ServiceFilter restricts a service listing. Zero values mean "no
// restriction"; both fields set combine with AND semantics.
type ServiceFilter struct {
	// OwnerEmail restricts results to services whose userEmail matches exactly.
	OwnerEmail string

	// SearchText restricts results to services whose title, company name,
	// or category case-insensitively contains the text (OR-combined).
	SearchText string
}

// ServiceStore defines the interface for service data persistence.
type ServiceStore interface {
	// List returns the services matching the filter, all services for the
	// zero filter. Returns an empty slice, never nil, when nothing matches.
	List(ctx context.Context, filter ServiceFilter) ([]*domain.Service, error)

	// GetByID retrieves a service by its id.
	// Returns ErrServiceNotFound if the service does not exist and
	// ErrInvalidID if the id is not a valid document id.
	GetByID(ctx context.Context, id string) (*domain.Service, error)

	// Create inserts the service exactly as supplied and returns the
	// assigned id. No field validation is performed; providers own the
	// document shape.
	Create(ctx context.Context, svc *domain.Service) (string, error)

	// Delete removes a service by id and returns the number of documents
	// deleted (0 or 1). Deleting an absent id is not an error. Does not
	// cascade to applications referencing the service; enrichment
	// tolerates the resulting dangling references.
	Delete(ctx context.Context, id string) (int64, error)

	// IncrementApplicationCount atomically adjusts applicationCount by
	// delta. A negative delta never drives the counter below zero.
	// Incrementing an absent service is a silent no-op.
	IncrementApplicationCount(ctx context.Context, id string, delta int) error
}
