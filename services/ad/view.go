package ad

import (
	"context"

	adRepo "forotrix/database/repository/ad"
	"forotrix/models"
)

// ImageView is the serialized shape of one ad image.
type ImageView struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Bytes  int64  `json:"bytes"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
}

// AdView is the serialized ad returned by every ad operation: the stored
// document with image ids resolved into full image objects.
type AdView struct {
	models.Ad
	Images []ImageView `json:"images"`
}

// ListOutput is one page of serialized ads.
type ListOutput struct {
	Items  []AdView           `json:"items"`
	Total  int64              `json:"total"`
	Page   int                `json:"page"`
	Pages  int                `json:"pages"`
	Limit  int                `json:"limit"`
	Cities []adRepo.CityCount `json:"cities,omitempty"`
}

func imageView(m models.Media) ImageView {
	return ImageView{
		ID:     m.ID,
		URL:    m.URL,
		Bytes:  m.Bytes,
		Width:  m.Width,
		Height: m.Height,
		Format: m.Format,
	}
}

// buildView resolves the ad's image ids, preserving their stored order.
func (s *DefaultAdService) buildView(ctx context.Context, ad *models.Ad) (*AdView, error) {
	view := &AdView{Ad: *ad, Images: []ImageView{}}
	if len(ad.Images) == 0 {
		return view, nil
	}
	media, err := s.Media.GetByIDs(ctx, ad.Images)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Media, len(media))
	for _, m := range media {
		byID[m.ID] = m
	}
	for _, id := range ad.Images {
		if m, ok := byID[id]; ok {
			view.Images = append(view.Images, imageView(m))
		}
	}
	return view, nil
}

// buildViews batches image resolution for a page of ads.
func (s *DefaultAdService) buildViews(ctx context.Context, ads []models.Ad) ([]AdView, error) {
	views := make([]AdView, 0, len(ads))
	var allIDs []string
	for _, ad := range ads {
		allIDs = append(allIDs, ad.Images...)
	}

	byID := make(map[string]models.Media, len(allIDs))
	if len(allIDs) > 0 {
		media, err := s.Media.GetByIDs(ctx, allIDs)
		if err != nil {
			return nil, err
		}
		for _, m := range media {
			byID[m.ID] = m
		}
	}

	for _, ad := range ads {
		view := AdView{Ad: ad, Images: []ImageView{}}
		for _, id := range ad.Images {
			if m, ok := byID[id]; ok {
				view.Images = append(view.Images, imageView(m))
			}
		}
		views = append(views, view)
	}
	return views, nil
}
