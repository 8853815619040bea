package mediaRepo

import (
	"context"

	"forotrix/models"
)

// MediaRepository defines persistence operations over the media collection.
type MediaRepository interface {
	GetOwned(ctx context.Context, id, ownerID string) (*models.Media, error)
	GetByPublicID(ctx context.Context, publicID, ownerID string) (*models.Media, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Media, error)
	GetOwnedByIDs(ctx context.Context, ownerID string, ids []string) ([]models.Media, error)
	ListByAd(ctx context.Context, adID string) ([]models.Media, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Media, error)
	Create(ctx context.Context, media *models.Media) error
	Delete(ctx context.Context, id string) error
	SetAd(ctx context.Context, ids []string, adID string) error
	ClearAd(ctx context.Context, ids []string) error
}
