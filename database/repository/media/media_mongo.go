package mediaRepo

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

// MongoMediaRepo implements MediaRepository using MongoDB.
type MongoMediaRepo struct {
	coll *mongo.Collection
}

// NewMongoMediaRepo creates a new MediaRepository backed by the "media" collection.
func NewMongoMediaRepo() MediaRepository {
	repo := &MongoMediaRepo{coll: database.Collection("media")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create media indexes: %v\n", err)
	}
	return repo
}

func (r *MongoMediaRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "owner", Value: 1}}},
		{Keys: bson.D{{Key: "ad", Value: 1}}},
		{Keys: bson.D{{Key: "publicId", Value: 1}, {Key: "owner", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoMediaRepo) findOne(ctx context.Context, filter bson.M) (*models.Media, error) {
	var media models.Media
	if err := r.coll.FindOne(ctx, filter).Decode(&media); err != nil {
		return nil, fmt.Errorf("failed to fetch media: %w", err)
	}
	return &media, nil
}

func (r *MongoMediaRepo) GetOwned(ctx context.Context, id, ownerID string) (*models.Media, error) {
	return r.findOne(ctx, bson.M{"id": id, "owner": ownerID})
}

func (r *MongoMediaRepo) GetByPublicID(ctx context.Context, publicID, ownerID string) (*models.Media, error) {
	return r.findOne(ctx, bson.M{"publicId": publicID, "owner": ownerID})
}

func (r *MongoMediaRepo) findMany(ctx context.Context, filter bson.M) ([]models.Media, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("media query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.Media
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode media: %w", err)
	}
	return items, nil
}

func (r *MongoMediaRepo) GetByIDs(ctx context.Context, ids []string) ([]models.Media, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.findMany(ctx, bson.M{"id": bson.M{"$in": ids}})
}

func (r *MongoMediaRepo) GetOwnedByIDs(ctx context.Context, ownerID string, ids []string) ([]models.Media, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.findMany(ctx, bson.M{"id": bson.M{"$in": ids}, "owner": ownerID})
}

func (r *MongoMediaRepo) ListByAd(ctx context.Context, adID string) ([]models.Media, error) {
	return r.findMany(ctx, bson.M{"ad": adID})
}

func (r *MongoMediaRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Media, error) {
	return r.findMany(ctx, bson.M{"owner": ownerID})
}

func (r *MongoMediaRepo) Create(ctx context.Context, media *models.Media) error {
	if _, err := r.coll.InsertOne(ctx, media); err != nil {
		return fmt.Errorf("failed to create media: %w", err)
	}
	return nil
}

func (r *MongoMediaRepo) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete media with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("media with id %s: %w", id, mongo.ErrNoDocuments)
	}
	return nil
}

func (r *MongoMediaRepo) SetAd(ctx context.Context, ids []string, adID string) error {
	if len(ids) == 0 {
		return nil
	}
	update := bson.M{"$set": bson.M{"ad": adID, "updatedAt": time.Now().UTC()}}
	if _, err := r.coll.UpdateMany(ctx, bson.M{"id": bson.M{"$in": ids}}, update); err != nil {
		return fmt.Errorf("failed to attach media to ad %s: %w", adID, err)
	}
	return nil
}

func (r *MongoMediaRepo) ClearAd(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	update := bson.M{"$unset": bson.M{"ad": ""}, "$set": bson.M{"updatedAt": time.Now().UTC()}}
	if _, err := r.coll.UpdateMany(ctx, bson.M{"id": bson.M{"$in": ids}}, update); err != nil {
		return fmt.Errorf("failed to detach media: %w", err)
	}
	return nil
}
