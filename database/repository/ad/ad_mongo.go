package adRepo

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

// MongoAdRepo implements AdRepository using MongoDB.
type MongoAdRepo struct {
	coll *mongo.Collection
}

// NewMongoAdRepo creates a new AdRepository backed by the "ads" collection.
func NewMongoAdRepo() AdRepository {
	repo := &MongoAdRepo{coll: database.Collection("ads")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create ad indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoAdRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "owner", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "city", Value: 1}}},
		{Keys: bson.D{{Key: "plan", Value: 1}}},
		{Keys: bson.D{{Key: "services", Value: 1}}},
		{Keys: bson.D{{Key: "age", Value: 1}}},
		{Keys: bson.D{{Key: "highlighted", Value: 1}, {Key: "createdAt", Value: -1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoAdRepo) findOne(ctx context.Context, filter bson.M) (*models.Ad, error) {
	var ad models.Ad
	if err := r.coll.FindOne(ctx, filter).Decode(&ad); err != nil {
		return nil, fmt.Errorf("failed to fetch ad: %w", err)
	}
	return &ad, nil
}

func (r *MongoAdRepo) GetByID(ctx context.Context, id string) (*models.Ad, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoAdRepo) GetOwned(ctx context.Context, id, ownerID string) (*models.Ad, error) {
	return r.findOne(ctx, bson.M{"id": id, "owner": ownerID})
}

func (r *MongoAdRepo) GetPublished(ctx context.Context, id string) (*models.Ad, error) {
	return r.findOne(ctx, bson.M{"id": id, "status": models.AdStatusPublished})
}

func (r *MongoAdRepo) Create(ctx context.Context, ad *models.Ad) error {
	if _, err := r.coll.InsertOne(ctx, ad); err != nil {
		return fmt.Errorf("failed to create ad: %w", err)
	}
	return nil
}

// updateDocument builds the $set/$unset pair for persisting an ad. The
// optional fields carry omitempty bson tags, so a plain `$set: ad` would drop
// cleared values from the marshaled struct and leave stale data behind;
// cleared fields must be unset explicitly.
func updateDocument(ad *models.Ad) bson.M {
	set := bson.M{
		"owner":       ad.Owner,
		"title":       ad.Title,
		"description": ad.Description,
		"services":    ad.Services,
		"tags":        ad.Tags,
		"highlighted": ad.Highlighted,
		"images":      ad.Images,
		"status":      ad.Status,
		"plan":        ad.Plan,
		"updatedAt":   ad.UpdatedAt,
	}
	unset := bson.M{}

	setOrUnset := func(key string, value interface{}, empty bool) {
		if empty {
			unset[key] = ""
			return
		}
		set[key] = value
	}
	setOrUnset("city", ad.City, ad.City == "")
	setOrUnset("age", ad.Age, ad.Age == 0)
	setOrUnset("priceFrom", ad.PriceFrom, ad.PriceFrom == 0)
	setOrUnset("priceTo", ad.PriceTo, ad.PriceTo == 0)
	setOrUnset("profileType", ad.ProfileType, ad.ProfileType == "")
	setOrUnset("metadata", ad.Metadata, ad.Metadata == nil)

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update
}

func (r *MongoAdRepo) Update(ctx context.Context, ad *models.Ad) error {
	filter := bson.M{"id": ad.ID}
	result, err := r.coll.UpdateOne(ctx, filter, updateDocument(ad))
	if err != nil {
		return fmt.Errorf("failed to update ad with id %s: %w", ad.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("ad with id %s: %w", ad.ID, mongo.ErrNoDocuments)
	}
	return nil
}

func (r *MongoAdRepo) Delete(ctx context.Context, id, ownerID string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "owner": ownerID})
	if err != nil {
		return fmt.Errorf("failed to delete ad with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("ad with id %s: %w", id, mongo.ErrNoDocuments)
	}
	return nil
}

func (r *MongoAdRepo) List(ctx context.Context, filters ListFilters, page, limit int) (*ListResult, error) {
	safePage, safeLimit, skip := ClampPagination(page, limit)
	query := BuildListQuery(filters)

	opts := options.Find().
		SetSort(BuildListSort(filters.Weekly)).
		SetSkip(skip).
		SetLimit(int64(safeLimit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("ad list query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.Ad
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode ads: %w", err)
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ad count failed: %w", err)
	}

	facetCursor, err := r.coll.Aggregate(ctx, BuildCityFacetPipeline(filters))
	if err != nil {
		return nil, fmt.Errorf("city facet aggregation failed: %w", err)
	}
	defer facetCursor.Close(ctx)

	var cities []CityCount
	if err := facetCursor.All(ctx, &cities); err != nil {
		return nil, fmt.Errorf("failed to decode city facets: %w", err)
	}

	return &ListResult{
		Items:  items,
		Total:  total,
		Page:   safePage,
		Pages:  Pages(total, safeLimit),
		Limit:  safeLimit,
		Cities: cities,
	}, nil
}

func (r *MongoAdRepo) ListOwned(ctx context.Context, ownerID string, page, limit int) (*ListResult, error) {
	safePage, safeLimit, skip := ClampPagination(page, limit)
	filter := bson.M{"owner": ownerID}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(safeLimit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("owned ad list query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.Ad
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode ads: %w", err)
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("owned ad count failed: %w", err)
	}

	return &ListResult{
		Items: items,
		Total: total,
		Page:  safePage,
		Pages: Pages(total, safeLimit),
		Limit: safeLimit,
	}, nil
}

func (r *MongoAdRepo) ListIDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"id": 1})
	cursor, err := r.coll.Find(ctx, bson.M{"owner": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list ad ids for owner %s: %w", ownerID, err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID string `bson:"id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode ad ids: %w", err)
	}
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}
	return ids, nil
}

func (r *MongoAdRepo) DeleteByOwner(ctx context.Context, ownerID string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"owner": ownerID}); err != nil {
		return fmt.Errorf("failed to delete ads for owner %s: %w", ownerID, err)
	}
	return nil
}
