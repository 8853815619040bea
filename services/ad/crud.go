package ad

import (
	"context"
	"fmt"
	"time"

	"forotrix/models"
	"forotrix/services/audit"

	"github.com/google/uuid"
)

// Create stores a new draft ad for the owner. Titles are normalized, metadata
// is sanitized, and any provided images are attached in order.
func (s *DefaultAdService) Create(ctx context.Context, ownerID string, in CreateAdInput) (*AdView, error) {
	now := time.Now().UTC()

	profileType := in.ProfileType
	if profileType == "" {
		profileType = models.ProfileTypeChicas
	}
	services := in.Services
	if services == nil {
		services = []string{}
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	ad := &models.Ad{
		ID:          uuid.NewString(),
		Owner:       ownerID,
		Title:       NormalizeTitle(in.Title),
		Description: in.Description,
		City:        in.City,
		Services:    services,
		Tags:        tags,
		Age:         in.Age,
		PriceFrom:   in.PriceFrom,
		PriceTo:     in.PriceTo,
		ProfileType: profileType,
		Highlighted: in.Highlighted,
		Images:      []string{},
		Status:      models.AdStatusDraft,
		Plan:        models.PlanBasic,
		Metadata:    SanitizeMetadata(in.Metadata),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Repo.Create(ctx, ad); err != nil {
		return nil, fmt.Errorf("failed to create ad: %w", err)
	}

	if len(in.ImageIDs) > 0 {
		if err := s.Mgr.ReplaceAdMedia(ctx, ownerID, ad.ID, in.ImageIDs); err != nil {
			return nil, err
		}
		fresh, err := s.Repo.GetByID(ctx, ad.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to reload ad: %w", err)
		}
		ad = fresh
	}

	view, err := s.buildView(ctx, ad)
	if err != nil {
		return nil, err
	}

	s.Audit.Record(ctx, audit.Event{
		Action:   "ad:create",
		ActorID:  ownerID,
		TargetID: ad.ID,
		Metadata: map[string]interface{}{"imageCount": len(view.Images)},
	})
	return view, nil
}

// Update applies a partial update to an owned ad. Blocked ads reject the
// mutation; a provided ImageIDs slice replaces the attached media set.
func (s *DefaultAdService) Update(ctx context.Context, ownerID, id string, in UpdateAdInput) (*AdView, error) {
	ad, err := s.getOwnedMutable(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		ad.Title = NormalizeTitle(*in.Title)
	}
	if in.Description != nil {
		ad.Description = *in.Description
	}
	if in.City != nil {
		ad.City = *in.City
	}
	if in.Services != nil {
		ad.Services = in.Services
	}
	if in.Tags != nil {
		ad.Tags = in.Tags
	}
	if in.Age != nil {
		ad.Age = *in.Age
	}
	if in.PriceFrom != nil {
		ad.PriceFrom = *in.PriceFrom
	}
	if in.PriceTo != nil {
		ad.PriceTo = *in.PriceTo
	}
	if in.ProfileType != nil {
		ad.ProfileType = *in.ProfileType
	}
	if in.Highlighted != nil {
		ad.Highlighted = *in.Highlighted
	}
	if in.MetadataSet {
		ad.Metadata = SanitizeMetadata(in.Metadata)
	}
	ad.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Update(ctx, ad); err != nil {
		if isNotFound(err) {
			return nil, ErrAdNotFound
		}
		return nil, fmt.Errorf("failed to update ad: %w", err)
	}

	if in.ImageIDs != nil {
		if err := s.Mgr.ReplaceAdMedia(ctx, ownerID, ad.ID, in.ImageIDs); err != nil {
			return nil, err
		}
		fresh, err := s.Repo.GetByID(ctx, ad.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to reload ad: %w", err)
		}
		ad = fresh
	}

	view, err := s.buildView(ctx, ad)
	if err != nil {
		return nil, err
	}

	s.Audit.Record(ctx, audit.Event{
		Action:   "ad:update",
		ActorID:  ownerID,
		TargetID: ad.ID,
		Metadata: map[string]interface{}{"imageCount": len(view.Images)},
	})
	return view, nil
}

// Delete removes an owned ad and cascades to its media: linked assets are
// destroyed at the provider and their records removed.
func (s *DefaultAdService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.Repo.Delete(ctx, id, ownerID); err != nil {
		if isNotFound(err) {
			return ErrAdNotFound
		}
		return fmt.Errorf("failed to delete ad: %w", err)
	}

	if err := s.Mgr.DetachFromAd(ctx, id); err != nil {
		return err
	}

	s.Audit.Record(ctx, audit.Event{
		Action:   "ad:delete",
		ActorID:  ownerID,
		TargetID: id,
	})
	return nil
}
