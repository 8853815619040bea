package auditRepo

import (
	"context"
	"fmt"
	"time"

	"forotrix/database"
	"forotrix/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoAuditRepo implements AuditRepository using MongoDB.
type MongoAuditRepo struct {
	coll *mongo.Collection
}

// NewMongoAuditRepo creates a new AuditRepository backed by the "auditlogs" collection.
func NewMongoAuditRepo() AuditRepository {
	repo := &MongoAuditRepo{coll: database.Collection("auditlogs")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create audit indexes: %v\n", err)
	}
	return repo
}

func (r *MongoAuditRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "actorId", Value: 1}}},
		{Keys: bson.D{{Key: "action", Value: 1}}},
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoAuditRepo) Create(ctx context.Context, record *models.AuditRecord) error {
	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to store audit record: %w", err)
	}
	return nil
}
