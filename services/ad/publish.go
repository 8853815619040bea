package ad

import (
	"context"
	"fmt"

	"forotrix/models"
	"forotrix/services/audit"
)

// Publish transitions a draft to published. Publishing an already published ad
// is a no-op that still leaves an audit trace. Drafts need a title, a
// description and at least one image.
func (s *DefaultAdService) Publish(ctx context.Context, ownerID, id string) (*AdView, error) {
	ad, err := s.getOwnedMutable(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if ad.Status == models.AdStatusPublished {
		view, err := s.buildView(ctx, ad)
		if err != nil {
			return nil, err
		}
		s.Audit.Record(ctx, audit.Event{
			Action:   "ad:publish:noop",
			ActorID:  ownerID,
			TargetID: ad.ID,
		})
		return view, nil
	}

	if ad.Title == "" || ad.Description == "" {
		return nil, ErrMissingPublishFields
	}
	if len(ad.Images) == 0 {
		return nil, ErrNoImages
	}

	ad.Status = models.AdStatusPublished
	if err := s.saveTransition(ctx, ad); err != nil {
		return nil, err
	}

	view, err := s.buildView(ctx, ad)
	if err != nil {
		return nil, err
	}
	s.Audit.Record(ctx, audit.Event{
		Action:   "ad:publish",
		ActorID:  ownerID,
		TargetID: ad.ID,
	})
	return view, nil
}

// Unpublish transitions a published ad back to draft; already-draft ads are a
// no-op with an audit trace.
func (s *DefaultAdService) Unpublish(ctx context.Context, ownerID, id string) (*AdView, error) {
	ad, err := s.getOwnedMutable(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if ad.Status == models.AdStatusDraft {
		view, err := s.buildView(ctx, ad)
		if err != nil {
			return nil, err
		}
		s.Audit.Record(ctx, audit.Event{
			Action:   "ad:unpublish:noop",
			ActorID:  ownerID,
			TargetID: ad.ID,
		})
		return view, nil
	}

	ad.Status = models.AdStatusDraft
	if err := s.saveTransition(ctx, ad); err != nil {
		return nil, err
	}

	view, err := s.buildView(ctx, ad)
	if err != nil {
		return nil, err
	}
	s.Audit.Record(ctx, audit.Event{
		Action:   "ad:unpublish",
		ActorID:  ownerID,
		TargetID: ad.ID,
	})
	return view, nil
}

func (s *DefaultAdService) saveTransition(ctx context.Context, ad *models.Ad) error {
	ad.UpdatedAt = nowUTC()
	if err := s.Repo.Update(ctx, ad); err != nil {
		if isNotFound(err) {
			return ErrAdNotFound
		}
		return fmt.Errorf("failed to update ad status: %w", err)
	}
	return nil
}
