package commentRepo

import (
	"context"
	"fmt"
	"time"

	"forotrix/database"
	"forotrix/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCommentRepo implements CommentRepository using MongoDB.
type MongoCommentRepo struct {
	coll *mongo.Collection
}

// NewMongoCommentRepo creates a new CommentRepository backed by the "comments" collection.
func NewMongoCommentRepo() CommentRepository {
	repo := &MongoCommentRepo{coll: database.Collection("comments")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create comment indexes: %v\n", err)
	}
	return repo
}

func (r *MongoCommentRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "ad", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "author", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoCommentRepo) ListByAd(ctx context.Context, adID string, skip, limit int64) ([]models.Comment, int64, error) {
	filter := bson.M{"ad": adID}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("comment list query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.Comment
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("failed to decode comments: %w", err)
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("comment count failed: %w", err)
	}
	return items, total, nil
}

func (r *MongoCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	if _, err := r.coll.InsertOne(ctx, comment); err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *MongoCommentRepo) DeleteByAuthor(ctx context.Context, authorID string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"author": authorID}); err != nil {
		return fmt.Errorf("failed to delete comments for author %s: %w", authorID, err)
	}
	return nil
}
