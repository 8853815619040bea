package ad

import (
	"context"
	"fmt"
	"time"

	adRepo "forotrix/database/repository/ad"
)

func nowUTC() time.Time {
	return time.Now().UTC()
}

// List returns one page of published ads matching the filters, with the city
// facet distribution alongside.
func (s *DefaultAdService) List(ctx context.Context, filters adRepo.ListFilters, page, limit int) (*ListOutput, error) {
	result, err := s.Repo.List(ctx, filters, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list ads: %w", err)
	}
	items, err := s.buildViews(ctx, result.Items)
	if err != nil {
		return nil, err
	}
	return &ListOutput{
		Items:  items,
		Total:  result.Total,
		Page:   result.Page,
		Pages:  result.Pages,
		Limit:  result.Limit,
		Cities: result.Cities,
	}, nil
}

// ListOwn returns one page of the owner's ads in any status.
func (s *DefaultAdService) ListOwn(ctx context.Context, ownerID string, page, limit int) (*ListOutput, error) {
	result, err := s.Repo.ListOwned(ctx, ownerID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list own ads: %w", err)
	}
	items, err := s.buildViews(ctx, result.Items)
	if err != nil {
		return nil, err
	}
	return &ListOutput{
		Items: items,
		Total: result.Total,
		Page:  result.Page,
		Pages: result.Pages,
		Limit: result.Limit,
	}, nil
}

// GetPublic returns a single published ad; drafts and blocked ads read as
// not found.
func (s *DefaultAdService) GetPublic(ctx context.Context, id string) (*AdView, error) {
	ad, err := s.Repo.GetPublished(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAdNotFound
		}
		return nil, fmt.Errorf("failed to get ad: %w", err)
	}
	return s.buildView(ctx, ad)
}
