package workflow

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/servicereview/service-review-api/internal/domain"
	"github.com/servicereview/service-review-api/internal/mocks"
	"github.com/servicereview/service-review-api/internal/store"
)

func newTestWorkflow(t *testing.T) (ApplicationWorkflow, *mocks.MemServiceStore, *mocks.MemApplicationStore) {
	t.Helper()
	services := mocks.NewMemServiceStore()
	applications := mocks.NewMemApplicationStore()
	return NewApplicationWorkflow(services, applications, nil), services, applications
}

func seedService(t *testing.T, services *mocks.MemServiceStore) string {
	t.Helper()
	id, err := services.Create(context.Background(), &domain.Service{
		UserEmail:    "provider@x.com",
		ServiceTitle: "Pipe Fitting",
		CompanyName:  "Acme",
		Category:     "plumbing",
	})
	require.NoError(t, err)
	return id
}

func TestCreate(t *testing.T) {
	t.Parallel()

	t.Run("inserts and increments counter", func(t *testing.T) {
		t.Parallel()
		wf, services, _ := newTestWorkflow(t)
		serviceID := seedService(t, services)

		id, err := wf.Create(context.Background(), &domain.Application{
			ServiceID:      serviceID,
			ApplicantEmail: "a@x.com",
		})
		require.NoError(t, err)
		require.NotEmpty(t, id)

		svc, err := services.GetByID(context.Background(), serviceID)
		require.NoError(t, err)
		assert.Equal(t, 1, svc.ApplicationCount)
	})

	t.Run("defaults status to pending", func(t *testing.T) {
		t.Parallel()
		wf, services, applications := newTestWorkflow(t)
		serviceID := seedService(t, services)

		id, err := wf.Create(context.Background(), &domain.Application{ServiceID: serviceID})
		require.NoError(t, err)

		stored, err := applications.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPending, stored.Status)
	})

	t.Run("missing service_id writes nothing", func(t *testing.T) {
		t.Parallel()
		wf, services, applications := newTestWorkflow(t)
		serviceID := seedService(t, services)

		_, err := wf.Create(context.Background(), &domain.Application{ApplicantEmail: "a@x.com"})
		assert.ErrorIs(t, err, domain.ErrMissingServiceID)

		apps, err := applications.FindByApplicant(context.Background(), "a@x.com")
		require.NoError(t, err)
		assert.Empty(t, apps)

		svc, err := services.GetByID(context.Background(), serviceID)
		require.NoError(t, err)
		assert.Equal(t, 0, svc.ApplicationCount)
	})

	t.Run("dangling service reference rejected", func(t *testing.T) {
		t.Parallel()
		wf, _, applications := newTestWorkflow(t)

		_, err := wf.Create(context.Background(), &domain.Application{
			ServiceID:      primitive.NewObjectID().Hex(),
			ApplicantEmail: "a@x.com",
		})
		assert.ErrorIs(t, err, store.ErrServiceNotFound)

		apps, err := applications.FindByApplicant(context.Background(), "a@x.com")
		require.NoError(t, err)
		assert.Empty(t, apps)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		t.Parallel()
		wf, services, _ := newTestWorkflow(t)
		serviceID := seedService(t, services)

		_, err := wf.Create(context.Background(), &domain.Application{
			ServiceID: serviceID,
			Status:    "done",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})
}

func TestCreateConcurrent(t *testing.T) {
	t.Parallel()

	wf, services, _ := newTestWorkflow(t)
	serviceID := seedService(t, services)

	const n = 50
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = wf.Create(context.Background(), &domain.Application{
				ServiceID:      serviceID,
				ApplicantEmail: "a@x.com",
			})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	// Every creation's increment must land; none may be lost.
	svc, err := services.GetByID(context.Background(), serviceID)
	require.NoError(t, err)
	assert.Equal(t, n, svc.ApplicationCount)
}

func TestListByApplicant(t *testing.T) {
	t.Parallel()

	t.Run("enriches from referenced service", func(t *testing.T) {
		t.Parallel()
		wf, services, _ := newTestWorkflow(t)
		serviceID := seedService(t, services)

		_, err := wf.Create(context.Background(), &domain.Application{
			ServiceID:      serviceID,
			ApplicantEmail: "a@x.com",
		})
		require.NoError(t, err)

		apps, err := wf.ListByApplicant(context.Background(), "a@x.com")
		require.NoError(t, err)
		require.Len(t, apps, 1)
		require.NotNil(t, apps[0].Enrichment)
		assert.Equal(t, "Pipe Fitting", apps[0].Enrichment.ServiceTitle)
		assert.Equal(t, "Acme", apps[0].Enrichment.CompanyName)
	})

	t.Run("dangling reference keeps the application", func(t *testing.T) {
		t.Parallel()
		wf, services, applications := newTestWorkflow(t)
		serviceID := seedService(t, services)

		_, err := wf.Create(context.Background(), &domain.Application{
			ServiceID:      serviceID,
			ApplicantEmail: "a@x.com",
		})
		require.NoError(t, err)

		// Service deleted after the application was created.
		_, err = services.Delete(context.Background(), serviceID)
		require.NoError(t, err)

		// A second application against a live service still enriches.
		otherService := seedService(t, services)
		_, err = applications.Create(context.Background(), &domain.Application{
			ServiceID:      otherService,
			ApplicantEmail: "a@x.com",
			Status:         domain.StatusPending,
		})
		require.NoError(t, err)

		apps, err := wf.ListByApplicant(context.Background(), "a@x.com")
		require.NoError(t, err)
		require.Len(t, apps, 2)

		var enriched, bare int
		for _, app := range apps {
			if app.Enrichment != nil {
				enriched++
			} else {
				bare++
			}
		}
		assert.Equal(t, 1, enriched)
		assert.Equal(t, 1, bare)
	})

	t.Run("empty result is empty slice", func(t *testing.T) {
		t.Parallel()
		wf, _, _ := newTestWorkflow(t)

		apps, err := wf.ListByApplicant(context.Background(), "nobody@x.com")
		require.NoError(t, err)
		assert.NotNil(t, apps)
		assert.Empty(t, apps)
	})
}

func TestGet(t *testing.T) {
	t.Parallel()

	t.Run("returns enriched application", func(t *testing.T) {
		t.Parallel()
		wf, services, _ := newTestWorkflow(t)
		serviceID := seedService(t, services)

		id, err := wf.Create(context.Background(), &domain.Application{
			ServiceID:      serviceID,
			ApplicantEmail: "a@x.com",
		})
		require.NoError(t, err)

		app, err := wf.Get(context.Background(), id)
		require.NoError(t, err)
		require.NotNil(t, app.Enrichment)
		assert.Equal(t, "Pipe Fitting", app.Enrichment.ServiceTitle)
	})

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()
		wf, _, _ := newTestWorkflow(t)

		_, err := wf.Get(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(t, err, store.ErrApplicationNotFound)
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Parallel()

	create := func(t *testing.T) (ApplicationWorkflow, string) {
		t.Helper()
		wf, services, _ := newTestWorkflow(t)
		serviceID := seedService(t, services)
		id, err := wf.Create(context.Background(), &domain.Application{
			ServiceID:      serviceID,
			ApplicantEmail: "a@x.com",
		})
		require.NoError(t, err)
		return wf, id
	}

	t.Run("pending to approved", func(t *testing.T) {
		t.Parallel()
		wf, id := create(t)

		res, err := wf.UpdateStatus(context.Background(), id, "approved")
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.MatchedCount)
		assert.Equal(t, int64(1), res.ModifiedCount)

		app, err := wf.Get(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusApproved, app.Status)
	})

	t.Run("terminal state is frozen", func(t *testing.T) {
		t.Parallel()
		wf, id := create(t)

		_, err := wf.UpdateStatus(context.Background(), id, "rejected")
		require.NoError(t, err)

		_, err = wf.UpdateStatus(context.Background(), id, "approved")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("same status is idempotent", func(t *testing.T) {
		t.Parallel()
		wf, id := create(t)

		_, err := wf.UpdateStatus(context.Background(), id, "approved")
		require.NoError(t, err)

		res, err := wf.UpdateStatus(context.Background(), id, "approved")
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.MatchedCount)
		assert.Equal(t, int64(0), res.ModifiedCount)
	})

	t.Run("unknown status value", func(t *testing.T) {
		t.Parallel()
		wf, id := create(t)

		_, err := wf.UpdateStatus(context.Background(), id, "accepted")
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})

	t.Run("unknown application", func(t *testing.T) {
		t.Parallel()
		wf, _, _ := newTestWorkflow(t)

		_, err := wf.UpdateStatus(context.Background(), primitive.NewObjectID().Hex(), "approved")
		assert.ErrorIs(t, err, store.ErrApplicationNotFound)
	})
}

func TestDelete(t *testing.T) {
	t.Parallel()

	t.Run("deletes and decrements counter", func(t *testing.T) {
		t.Parallel()
		wf, services, _ := newTestWorkflow(t)
		serviceID := seedService(t, services)

		id, err := wf.Create(context.Background(), &domain.Application{
			ServiceID:      serviceID,
			ApplicantEmail: "a@x.com",
		})
		require.NoError(t, err)

		deleted, err := wf.Delete(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)

		svc, err := services.GetByID(context.Background(), serviceID)
		require.NoError(t, err)
		assert.Equal(t, 0, svc.ApplicationCount)
	})

	t.Run("counter never goes negative", func(t *testing.T) {
		t.Parallel()
		wf, services, applications := newTestWorkflow(t)
		serviceID := seedService(t, services)

		// Application inserted directly, bypassing the workflow, so the
		// counter was never incremented for it.
		id, err := applications.Create(context.Background(), &domain.Application{
			ServiceID:      serviceID,
			ApplicantEmail: "a@x.com",
			Status:         domain.StatusPending,
		})
		require.NoError(t, err)

		_, err = wf.Delete(context.Background(), id)
		require.NoError(t, err)

		svc, err := services.GetByID(context.Background(), serviceID)
		require.NoError(t, err)
		assert.Equal(t, 0, svc.ApplicationCount)
	})

	t.Run("unknown application", func(t *testing.T) {
		t.Parallel()
		wf, _, _ := newTestWorkflow(t)

		_, err := wf.Delete(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(t, err, store.ErrApplicationNotFound)
	})
}

func TestNewApplicationWorkflow(t *testing.T) {
	t.Parallel()

	t.Run("panics on nil service store", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() {
			NewApplicationWorkflow(nil, mocks.NewMemApplicationStore(), nil)
		})
	})

	t.Run("panics on nil application store", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() {
			NewApplicationWorkflow(mocks.NewMemServiceStore(), nil, nil)
		})
	})
}

func TestCreateStoreFailure(t *testing.T) {
	t.Parallel()

	wf, services, applications := newTestWorkflow(t)
	serviceID := seedService(t, services)
	applications.Err = errors.New("connection reset")

	_, err := wf.Create(context.Background(), &domain.Application{
		ServiceID:      serviceID,
		ApplicantEmail: "a@x.com",
	})
	require.Error(t, err)

	// A failed insert must not move the counter.
	applications.Err = nil
	svc, err := services.GetByID(context.Background(), serviceID)
	require.NoError(t, err)
	assert.Equal(t, 0, svc.ApplicationCount)
}
