package adRepo

import (
	"context"

	"forotrix/models"
)

// ListFilters is the filter set accepted by the public ad listing.
type ListFilters struct {
	Text        string
	City        string
	Plan        string
	ProfileType string
	Sex         string
	Identity    string
	AgeMin      int
	AgeMax      int
	Featured    *bool
	Weekly      bool
	Services    []string
	ExcludeIDs  []string
}

// CityCount is one bucket of the city facet aggregation.
type CityCount struct {
	City  string `bson:"city" json:"city"`
	Count int64  `bson:"count" json:"count"`
}

// ListResult is a single page of ads plus pagination info and, for the public
// listing, the city facet distribution.
type ListResult struct {
	Items  []models.Ad
	Total  int64
	Page   int
	Pages  int
	Limit  int
	Cities []CityCount
}

// AdRepository defines persistence operations over the ads collection.
type AdRepository interface {
	GetByID(ctx context.Context, id string) (*models.Ad, error)
	GetOwned(ctx context.Context, id, ownerID string) (*models.Ad, error)
	GetPublished(ctx context.Context, id string) (*models.Ad, error)
	Create(ctx context.Context, ad *models.Ad) error
	Update(ctx context.Context, ad *models.Ad) error
	Delete(ctx context.Context, id, ownerID string) error
	List(ctx context.Context, filters ListFilters, page, limit int) (*ListResult, error)
	ListOwned(ctx context.Context, ownerID string, page, limit int) (*ListResult, error)
	ListIDsByOwner(ctx context.Context, ownerID string) ([]string, error)
	DeleteByOwner(ctx context.Context, ownerID string) error
}
