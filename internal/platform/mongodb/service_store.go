package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/servicereview/service-review-api/internal/domain"
	"github.com/servicereview/service-review-api/internal/platform/logger"
	"github.com/servicereview/service-review-api/internal/store"
)

// MongoServiceStore implements the store.ServiceStore interface using a
// MongoDB collection as the storage backend.
type MongoServiceStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewMongoServiceStore creates a new MongoDB implementation of the
// ServiceStore interface. The database handle must be initialized and
// managed by the caller. If logger is nil, a default logger will be used.
func NewMongoServiceStore(db *mongo.Database, log *slog.Logger) *MongoServiceStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &MongoServiceStore{
		coll:   db.Collection(ServicesCollection),
		logger: log.With(slog.String("component", "service_store")),
	}
}

// Ensure MongoServiceStore implements store.ServiceStore interface
var _ store.ServiceStore = (*MongoServiceStore)(nil)

// parseObjectID converts a route-level id string into an ObjectID,
// mapping malformed input to store.ErrInvalidID.
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", store.ErrInvalidID, id)
	}
	return oid, nil
}

// List implements store.ServiceStore.List.
// The owner restriction matches userEmail exactly; the search text matches
// title, company name, or category case-insensitively. Both AND-combine.
func (s *MongoServiceStore) List(
	ctx context.Context,
	filter store.ServiceFilter,
) ([]*domain.Service, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := bson.M{}
	if filter.OwnerEmail != "" {
		query["userEmail"] = filter.OwnerEmail
	}
	if filter.SearchText != "" {
		contains := primitive.Regex{
			Pattern: regexp.QuoteMeta(filter.SearchText),
			Options: "i",
		}
		query["$or"] = bson.A{
			bson.M{"serviceTitle": contains},
			bson.M{"companyName": contains},
			bson.M{"category": contains},
		}
	}

	cursor, err := s.coll.Find(ctx, query)
	if err != nil {
		log.Error("failed to list services",
			slog.String("error", err.Error()),
			slog.String("owner_email", filter.OwnerEmail),
			slog.String("search_text", filter.SearchText))
		return nil, err
	}

	services := []*domain.Service{}
	if err := cursor.All(ctx, &services); err != nil {
		log.Error("failed to decode services", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("listed services",
		slog.Int("count", len(services)),
		slog.String("owner_email", filter.OwnerEmail),
		slog.String("search_text", filter.SearchText))
	return services, nil
}

// GetByID implements store.ServiceStore.GetByID.
// Returns store.ErrServiceNotFound if the service does not exist.
func (s *MongoServiceStore) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var svc domain.Service
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&svc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			log.Debug("service not found", slog.String("service_id", id))
			return nil, store.ErrServiceNotFound
		}
		log.Error("failed to get service by ID",
			slog.String("error", err.Error()),
			slog.String("service_id", id))
		return nil, err
	}

	return &svc, nil
}

// Create implements store.ServiceStore.Create.
// The document is inserted exactly as supplied; the store assigns the id.
func (s *MongoServiceStore) Create(ctx context.Context, svc *domain.Service) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	res, err := s.coll.InsertOne(ctx, svc)
	if err != nil {
		log.Error("failed to create service",
			slog.String("error", err.Error()),
			slog.String("user_email", svc.UserEmail))
		return "", err
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", store.NewStoreError("service", "create",
			"unexpected inserted id type", nil)
	}

	log.Info("service created",
		slog.String("service_id", oid.Hex()),
		slog.String("user_email", svc.UserEmail))
	return oid.Hex(), nil
}

// Delete implements store.ServiceStore.Delete.
// Does not cascade to applications; dangling references are handled at
// enrichment time.
func (s *MongoServiceStore) Delete(ctx context.Context, id string) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	oid, err := parseObjectID(id)
	if err != nil {
		return 0, err
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		log.Error("failed to delete service",
			slog.String("error", err.Error()),
			slog.String("service_id", id))
		return 0, err
	}

	log.Info("service deleted",
		slog.String("service_id", id),
		slog.Int64("deleted_count", res.DeletedCount))
	return res.DeletedCount, nil
}

// IncrementApplicationCount implements store.ServiceStore.IncrementApplicationCount.
// The adjustment is a single atomic $inc, so concurrent application
// creations against one service cannot lose updates. Decrements filter on
// a positive counter so the count never goes negative.
func (s *MongoServiceStore) IncrementApplicationCount(
	ctx context.Context,
	id string,
	delta int,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	filter := bson.M{"_id": oid}
	if delta < 0 {
		filter["applicationCount"] = bson.M{"$gt": 0}
	}

	res, err := s.coll.UpdateOne(ctx, filter, bson.M{
		"$inc": bson.M{"applicationCount": delta},
	})
	if err != nil {
		log.Error("failed to adjust application count",
			slog.String("error", err.Error()),
			slog.String("service_id", id),
			slog.Int("delta", delta))
		return err
	}

	if res.MatchedCount == 0 {
		// Absent service or already-zero counter on decrement.
		log.Debug("application count adjustment matched no service",
			slog.String("service_id", id),
			slog.Int("delta", delta))
		return nil
	}

	log.Debug("application count adjusted",
		slog.String("service_id", id),
		slog.Int("delta", delta))
	return nil
}
