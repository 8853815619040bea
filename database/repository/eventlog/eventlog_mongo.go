package eventRepo

import (
	"context"
	"fmt"
	"time"

	"forotrix/database"
	"forotrix/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoEventLogRepo implements EventLogRepository using MongoDB.
type MongoEventLogRepo struct {
	coll *mongo.Collection
}

// NewMongoEventLogRepo creates a new EventLogRepository backed by the "eventlogs" collection.
func NewMongoEventLogRepo() EventLogRepository {
	repo := &MongoEventLogRepo{coll: database.Collection("eventlogs")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create event log indexes: %v\n", err)
	}
	return repo
}

func (r *MongoEventLogRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "visitorId", Value: 1}}},
		{Keys: bson.D{{Key: "sessionId", Value: 1}}},
		{Keys: bson.D{{Key: "type", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoEventLogRepo) Create(ctx context.Context, event *models.EventLog) error {
	if _, err := r.coll.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("failed to store event log: %w", err)
	}
	return nil
}
