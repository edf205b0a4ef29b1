package mongodb

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/servicereview/service-review-api/internal/domain"
	"github.com/servicereview/service-review-api/internal/platform/logger"
	"github.com/servicereview/service-review-api/internal/store"
)

// MongoApplicationStore implements the store.ApplicationStore interface
// using a MongoDB collection as the storage backend.
type MongoApplicationStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewMongoApplicationStore creates a new MongoDB implementation of the
// ApplicationStore interface. The database handle must be initialized and
// managed by the caller. If logger is nil, a default logger will be used.
func NewMongoApplicationStore(db *mongo.Database, log *slog.Logger) *MongoApplicationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &MongoApplicationStore{
		coll:   db.Collection(ApplicationsCollection),
		logger: log.With(slog.String("component", "application_store")),
	}
}

// Ensure MongoApplicationStore implements store.ApplicationStore interface
var _ store.ApplicationStore = (*MongoApplicationStore)(nil)

func (s *MongoApplicationStore) find(
	ctx context.Context,
	query bson.M,
	log *slog.Logger,
) ([]*domain.Application, error) {
	cursor, err := s.coll.Find(ctx, query)
	if err != nil {
		log.Error("failed to find applications", slog.String("error", err.Error()))
		return nil, err
	}

	apps := []*domain.Application{}
	if err := cursor.All(ctx, &apps); err != nil {
		log.Error("failed to decode applications", slog.String("error", err.Error()))
		return nil, err
	}
	return apps, nil
}

// FindByApplicant implements store.ApplicationStore.FindByApplicant.
func (s *MongoApplicationStore) FindByApplicant(
	ctx context.Context,
	email string,
) ([]*domain.Application, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	apps, err := s.find(ctx, bson.M{"applicant_email": email}, log)
	if err != nil {
		return nil, err
	}

	log.Debug("found applications by applicant",
		slog.String("applicant_email", email),
		slog.Int("count", len(apps)))
	return apps, nil
}

// FindByService implements store.ApplicationStore.FindByService.
// The service_id reference is stored as the hex string the client supplied.
func (s *MongoApplicationStore) FindByService(
	ctx context.Context,
	serviceID string,
) ([]*domain.Application, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	apps, err := s.find(ctx, bson.M{"service_id": serviceID}, log)
	if err != nil {
		return nil, err
	}

	log.Debug("found applications by service",
		slog.String("service_id", serviceID),
		slog.Int("count", len(apps)))
	return apps, nil
}

// GetByID implements store.ApplicationStore.GetByID.
// Looks up the application collection; the referenced service is resolved
// separately by the workflow's enrichment step.
func (s *MongoApplicationStore) GetByID(
	ctx context.Context,
	id string,
) (*domain.Application, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var app domain.Application
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&app)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			log.Debug("application not found", slog.String("application_id", id))
			return nil, store.ErrApplicationNotFound
		}
		log.Error("failed to get application by ID",
			slog.String("error", err.Error()),
			slog.String("application_id", id))
		return nil, err
	}

	return &app, nil
}

// Create implements store.ApplicationStore.Create.
func (s *MongoApplicationStore) Create(
	ctx context.Context,
	app *domain.Application,
) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	res, err := s.coll.InsertOne(ctx, app)
	if err != nil {
		log.Error("failed to create application",
			slog.String("error", err.Error()),
			slog.String("service_id", app.ServiceID),
			slog.String("applicant_email", app.ApplicantEmail))
		return "", err
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", store.NewStoreError("application", "create",
			"unexpected inserted id type", nil)
	}

	log.Info("application created",
		slog.String("application_id", oid.Hex()),
		slog.String("service_id", app.ServiceID))
	return oid.Hex(), nil
}

// UpdateStatus implements store.ApplicationStore.UpdateStatus.
// Single-field $set; transition rules are enforced by the workflow before
// this call.
func (s *MongoApplicationStore) UpdateStatus(
	ctx context.Context,
	id string,
	status domain.ApplicationStatus,
) (store.UpdateResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	oid, err := parseObjectID(id)
	if err != nil {
		return store.UpdateResult{}, err
	}

	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		log.Error("failed to update application status",
			slog.String("error", err.Error()),
			slog.String("application_id", id),
			slog.String("status", string(status)))
		return store.UpdateResult{}, err
	}

	log.Info("application status updated",
		slog.String("application_id", id),
		slog.String("status", string(status)),
		slog.Int64("matched_count", res.MatchedCount))
	return store.UpdateResult{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}

// Delete implements store.ApplicationStore.Delete.
func (s *MongoApplicationStore) Delete(ctx context.Context, id string) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	oid, err := parseObjectID(id)
	if err != nil {
		return 0, err
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		log.Error("failed to delete application",
			slog.String("error", err.Error()),
			slog.String("application_id", id))
		return 0, err
	}

	log.Info("application deleted",
		slog.String("application_id", id),
		slog.Int64("deleted_count", res.DeletedCount))
	return res.DeletedCount, nil
}
