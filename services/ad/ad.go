package ad

import (
	"context"
	"errors"

	adRepo "forotrix/database/repository/ad"
	mediaRepo "forotrix/database/repository/media"
	"forotrix/models"
	"forotrix/services/audit"

	"go.mongodb.org/mongo-driver/mongo"
)

// MediaManager is the slice of the media service the ad service needs for
// image cascades. Kept as an interface to avoid a package cycle.
type MediaManager interface {
	// ReplaceAdMedia re-links the ad's images to exactly the given media ids,
	// preserving their order.
	ReplaceAdMedia(ctx context.Context, ownerID, adID string, mediaIDs []string) error
	// DetachFromAd deletes every asset linked to the ad, externally and locally.
	DetachFromAd(ctx context.Context, adID string) error
}

// CreateAdInput carries a new ad's fields. Metadata is the raw client payload;
// the service sanitizes it before persistence.
type CreateAdInput struct {
	Title       string
	Description string
	City        string
	Services    []string
	Tags        []string
	Age         int
	PriceFrom   float64
	PriceTo     float64
	ProfileType string
	Highlighted bool
	ImageIDs    []string
	Metadata    map[string]interface{}
}

// UpdateAdInput is a partial update; nil pointers and nil slices mean
// "unchanged". MetadataSet distinguishes an absent metadata key from an
// explicit null (which clears the block).
type UpdateAdInput struct {
	Title       *string
	Description *string
	City        *string
	Services    []string
	Tags        []string
	Age         *int
	PriceFrom   *float64
	PriceTo     *float64
	ProfileType *string
	Highlighted *bool
	ImageIDs    []string
	Metadata    map[string]interface{}
	MetadataSet bool
}

// AdService defines the ad lifecycle operations.
type AdService interface {
	Create(ctx context.Context, ownerID string, in CreateAdInput) (*AdView, error)
	Update(ctx context.Context, ownerID, id string, in UpdateAdInput) (*AdView, error)
	Delete(ctx context.Context, ownerID, id string) error
	Publish(ctx context.Context, ownerID, id string) (*AdView, error)
	Unpublish(ctx context.Context, ownerID, id string) (*AdView, error)
	GetPublic(ctx context.Context, id string) (*AdView, error)
	List(ctx context.Context, filters adRepo.ListFilters, page, limit int) (*ListOutput, error)
	ListOwn(ctx context.Context, ownerID string, page, limit int) (*ListOutput, error)
}

// DefaultAdService is the production implementation.
type DefaultAdService struct {
	Repo  adRepo.AdRepository
	Media mediaRepo.MediaRepository
	Mgr   MediaManager
	Audit audit.Sink
}

func isNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// getOwnedMutable loads an owned ad and enforces the blocked guard shared by
// every owner-initiated mutation.
func (s *DefaultAdService) getOwnedMutable(ctx context.Context, id, ownerID string) (*models.Ad, error) {
	ad, err := s.Repo.GetOwned(ctx, id, ownerID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAdNotFound
		}
		return nil, err
	}
	if ad.Status == models.AdStatusBlocked {
		return nil, ErrAdBlocked
	}
	return ad, nil
}
