// Package mocks provides in-memory test doubles for the store interfaces
// and the session service, so handler and workflow tests run without a
// MongoDB deployment.
package mocks

import (
	"context"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/servicereview/service-review-api/internal/domain"
	"github.com/servicereview/service-review-api/internal/store"
)

// MemServiceStore is a mutex-guarded in-memory ServiceStore.
type MemServiceStore struct {
	mu       sync.Mutex
	services map[string]*domain.Service

	// Err, when set, is returned by every method. Used to exercise
	// store-failure paths.
	Err error
}

// NewMemServiceStore creates an empty in-memory service store.
func NewMemServiceStore() *MemServiceStore {
	return &MemServiceStore{services: make(map[string]*domain.Service)}
}

var _ store.ServiceStore = (*MemServiceStore)(nil)

func validateID(id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return store.ErrInvalidID
	}
	return nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// List implements store.ServiceStore.List with the same filter semantics
// as the MongoDB implementation.
func (m *MemServiceStore) List(
	ctx context.Context,
	filter store.ServiceFilter,
) ([]*domain.Service, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []*domain.Service{}
	for _, svc := range m.services {
		if filter.OwnerEmail != "" && svc.UserEmail != filter.OwnerEmail {
			continue
		}
		if filter.SearchText != "" &&
			!containsFold(svc.ServiceTitle, filter.SearchText) &&
			!containsFold(svc.CompanyName, filter.SearchText) &&
			!containsFold(svc.Category, filter.SearchText) {
			continue
		}
		copied := *svc
		out = append(out, &copied)
	}
	return out, nil
}

// GetByID implements store.ServiceStore.GetByID.
func (m *MemServiceStore) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if err := validateID(id); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	svc, ok := m.services[id]
	if !ok {
		return nil, store.ErrServiceNotFound
	}
	copied := *svc
	return &copied, nil
}

// Create implements store.ServiceStore.Create.
func (m *MemServiceStore) Create(ctx context.Context, svc *domain.Service) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if svc.ID.IsZero() {
		svc.ID = primitive.NewObjectID()
	}
	id := svc.ID.Hex()
	copied := *svc
	m.services[id] = &copied
	return id, nil
}

// Delete implements store.ServiceStore.Delete.
func (m *MemServiceStore) Delete(ctx context.Context, id string) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	if err := validateID(id); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.services[id]; !ok {
		return 0, nil
	}
	delete(m.services, id)
	return 1, nil
}

// IncrementApplicationCount implements store.ServiceStore.IncrementApplicationCount.
// The mutex makes the adjustment atomic, mirroring the $inc semantics.
func (m *MemServiceStore) IncrementApplicationCount(
	ctx context.Context,
	id string,
	delta int,
) error {
	if m.Err != nil {
		return m.Err
	}
	if err := validateID(id); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	svc, ok := m.services[id]
	if !ok {
		return nil
	}
	if delta < 0 && svc.ApplicationCount == 0 {
		return nil
	}
	svc.ApplicationCount += delta
	return nil
}

// MemApplicationStore is a mutex-guarded in-memory ApplicationStore.
type MemApplicationStore struct {
	mu           sync.Mutex
	applications map[string]*domain.Application

	// Err, when set, is returned by every method.
	Err error
}

// NewMemApplicationStore creates an empty in-memory application store.
func NewMemApplicationStore() *MemApplicationStore {
	return &MemApplicationStore{applications: make(map[string]*domain.Application)}
}

var _ store.ApplicationStore = (*MemApplicationStore)(nil)

// FindByApplicant implements store.ApplicationStore.FindByApplicant.
func (m *MemApplicationStore) FindByApplicant(
	ctx context.Context,
	email string,
) ([]*domain.Application, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []*domain.Application{}
	for _, app := range m.applications {
		if app.ApplicantEmail == email {
			copied := *app
			out = append(out, &copied)
		}
	}
	return out, nil
}

// FindByService implements store.ApplicationStore.FindByService.
func (m *MemApplicationStore) FindByService(
	ctx context.Context,
	serviceID string,
) ([]*domain.Application, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []*domain.Application{}
	for _, app := range m.applications {
		if app.ServiceID == serviceID {
			copied := *app
			out = append(out, &copied)
		}
	}
	return out, nil
}

// GetByID implements store.ApplicationStore.GetByID.
func (m *MemApplicationStore) GetByID(
	ctx context.Context,
	id string,
) (*domain.Application, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if err := validateID(id); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	app, ok := m.applications[id]
	if !ok {
		return nil, store.ErrApplicationNotFound
	}
	copied := *app
	return &copied, nil
}

// Create implements store.ApplicationStore.Create.
func (m *MemApplicationStore) Create(
	ctx context.Context,
	app *domain.Application,
) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if app.ID.IsZero() {
		app.ID = primitive.NewObjectID()
	}
	id := app.ID.Hex()
	copied := *app
	m.applications[id] = &copied
	return id, nil
}

// UpdateStatus implements store.ApplicationStore.UpdateStatus.
func (m *MemApplicationStore) UpdateStatus(
	ctx context.Context,
	id string,
	status domain.ApplicationStatus,
) (store.UpdateResult, error) {
	if m.Err != nil {
		return store.UpdateResult{}, m.Err
	}
	if err := validateID(id); err != nil {
		return store.UpdateResult{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	app, ok := m.applications[id]
	if !ok {
		return store.UpdateResult{}, nil
	}
	res := store.UpdateResult{MatchedCount: 1}
	if app.Status != status {
		app.Status = status
		res.ModifiedCount = 1
	}
	return res, nil
}

// Delete implements store.ApplicationStore.Delete.
func (m *MemApplicationStore) Delete(ctx context.Context, id string) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	if err := validateID(id); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.applications[id]; !ok {
		return 0, nil
	}
	delete(m.applications, id)
	return 1, nil
}
