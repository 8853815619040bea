package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	adRepo "forotrix/database/repository/ad"
	"forotrix/models"
	"forotrix/services/ad"
	"forotrix/services/ranking"
	"forotrix/utils"

	"github.com/go-redis/redis/v8"
)

const (
	heroSize    = 3
	weeklySize  = 3
	cacheTTL    = 60 * time.Second
	cachePrefix = "feed:home:"
)

// HomeFeed is the assembled home page: a featured hero trio, a weekly
// favorites trio, and the remaining grid page.
type HomeFeed struct {
	Hero   []ad.AdView        `json:"hero"`
	Weekly []ad.AdView        `json:"weekly"`
	Grid   []ad.AdView        `json:"grid"`
	Total  int64              `json:"total"`
	Page   int                `json:"page"`
	Pages  int                `json:"pages"`
	Limit  int                `json:"limit"`
	Cities []adRepo.CityCount `json:"cities,omitempty"`
}

// FeedService assembles ranked feed sections.
type FeedService interface {
	Home(ctx context.Context, filters adRepo.ListFilters, page, limit int) (*HomeFeed, error)
}

// DefaultFeedService is the production implementation. Cache may be nil, in
// which case every request recomputes.
type DefaultFeedService struct {
	Ads   ad.AdService
	Cache *redis.Client
	Now   func() time.Time
}

func NewFeedService(ads ad.AdService, cache *redis.Client) *DefaultFeedService {
	return &DefaultFeedService{Ads: ads, Cache: cache, Now: time.Now}
}

func (s *DefaultFeedService) clock() func() time.Time {
	if s.Now != nil {
		return s.Now
	}
	return time.Now
}

func cacheKey(filters adRepo.ListFilters, page, limit int) string {
	raw, _ := json.Marshal(struct {
		Filters adRepo.ListFilters
		Page    int
		Limit   int
	}{filters, page, limit})
	return cachePrefix + utils.HashToken(string(raw))
}

// Home builds the home feed. The hero section queries highlighted ads for the
// resolved gender pair; the grid excludes hero ids so an ad never appears
// twice on the page.
func (s *DefaultFeedService) Home(ctx context.Context, filters adRepo.ListFilters, page, limit int) (*HomeFeed, error) {
	// Gender defaults mirror the listing's implicit female/cis behavior.
	if filters.Sex == "" {
		filters.Sex = models.SexFemale
	}
	if filters.Identity == "" {
		filters.Identity = models.IdentityCis
	}
	filters.ProfileType = ""

	key := cacheKey(filters, page, limit)
	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, key).Result(); err == nil {
			var feed HomeFeed
			if err := json.Unmarshal([]byte(cached), &feed); err == nil {
				return &feed, nil
			}
		}
	}

	city := filters.City
	if city == "" {
		city = "all"
	}
	engine := &ranking.Engine{
		Seed: fmt.Sprintf("%s:%s:%s", filters.Sex, filters.Identity, city),
		Now:  s.clock(),
	}

	highlighted := true
	heroOut, err := s.Ads.List(ctx, adRepo.ListFilters{
		Sex:      filters.Sex,
		Identity: filters.Identity,
		Featured: &highlighted,
	}, 1, heroSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load hero ads: %w", err)
	}
	hero := rankViews(engine, heroOut.Items, ranking.ChannelFeatured)

	gridFilters := filters
	for _, view := range hero {
		gridFilters.ExcludeIDs = append(gridFilters.ExcludeIDs, view.ID)
	}
	gridOut, err := s.Ads.List(ctx, gridFilters, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load feed ads: %w", err)
	}

	items := gridOut.Items
	cut := weeklySize
	if cut > len(items) {
		cut = len(items)
	}
	weekly := rankViews(engine, items[:cut], ranking.ChannelWeekly)
	grid := items[cut:]

	feed := &HomeFeed{
		Hero:   hero,
		Weekly: weekly,
		Grid:   grid,
		Total:  gridOut.Total,
		Page:   gridOut.Page,
		Pages:  gridOut.Pages,
		Limit:  gridOut.Limit,
		Cities: gridOut.Cities,
	}

	if s.Cache != nil {
		if raw, err := json.Marshal(feed); err == nil {
			s.Cache.Set(ctx, key, raw, cacheTTL)
		}
	}
	return feed, nil
}

// rankViews orders serialized ads with the ranking engine, which operates on
// the stored ad documents.
func rankViews(engine *ranking.Engine, views []ad.AdView, channel ranking.Channel) []ad.AdView {
	if len(views) == 0 {
		return []ad.AdView{}
	}
	ads := make([]models.Ad, 0, len(views))
	byID := make(map[string]ad.AdView, len(views))
	for _, view := range views {
		ads = append(ads, view.Ad)
		byID[view.ID] = view
	}
	ranked := engine.Rank(ads, channel)
	result := make([]ad.AdView, 0, len(ranked))
	for _, item := range ranked {
		result = append(result, byID[item.ID])
	}
	return result
}
