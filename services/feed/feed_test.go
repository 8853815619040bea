package feed

import (
	"context"
	"testing"
	"time"

	adRepo "forotrix/database/repository/ad"
	"forotrix/models"
	"forotrix/services/ad"
)

// mockAdService returns canned pages and records the filters it was asked
// for. The first List call serves the hero query, the second the grid.
type mockAdService struct {
	hero  []ad.AdView
	grid  []ad.AdView
	calls []adRepo.ListFilters
	total int64
}

func (m *mockAdService) List(_ context.Context, filters adRepo.ListFilters, page, limit int) (*ad.ListOutput, error) {
	m.calls = append(m.calls, filters)
	if filters.Featured != nil {
		return &ad.ListOutput{Items: m.hero, Total: int64(len(m.hero)), Page: page, Pages: 1, Limit: limit}, nil
	}
	return &ad.ListOutput{Items: m.grid, Total: m.total, Page: page, Pages: 1, Limit: limit}, nil
}

func (m *mockAdService) Create(context.Context, string, ad.CreateAdInput) (*ad.AdView, error) {
	return nil, nil
}
func (m *mockAdService) Update(context.Context, string, string, ad.UpdateAdInput) (*ad.AdView, error) {
	return nil, nil
}
func (m *mockAdService) Delete(context.Context, string, string) error { return nil }
func (m *mockAdService) Publish(context.Context, string, string) (*ad.AdView, error) {
	return nil, nil
}
func (m *mockAdService) Unpublish(context.Context, string, string) (*ad.AdView, error) {
	return nil, nil
}
func (m *mockAdService) GetPublic(context.Context, string) (*ad.AdView, error) { return nil, nil }
func (m *mockAdService) ListOwn(context.Context, string, int, int) (*ad.ListOutput, error) {
	return nil, nil
}

func view(id string, boost float64) ad.AdView {
	return ad.AdView{Ad: models.Ad{
		ID:          id,
		Status:      models.AdStatusPublished,
		Plan:        models.PlanBasic,
		Highlighted: boost > 0,
		Metadata: &models.AdMetadata{
			Ranking: &models.RankingHints{BoostFeatured: boost},
		},
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}}
}

func TestHomeFeedComposition(t *testing.T) {
	svc := &mockAdService{
		hero:  []ad.AdView{view("h1", 10), view("h2", 90), view("h3", 50)},
		grid:  []ad.AdView{view("g1", 0), view("g2", 0), view("g3", 0), view("g4", 0), view("g5", 0)},
		total: 42,
	}
	feed := &DefaultFeedService{
		Ads: svc,
		Now: func() time.Time { return time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC) },
	}

	got, err := feed.Home(context.Background(), adRepo.ListFilters{}, 1, 24)
	if err != nil {
		t.Fatalf("Home: %v", err)
	}

	if len(got.Hero) != 3 {
		t.Fatalf("hero size = %d", len(got.Hero))
	}
	if got.Hero[0].ID != "h2" {
		t.Errorf("hero[0] = %s, want highest boost first", got.Hero[0].ID)
	}
	if len(got.Weekly) != 3 {
		t.Errorf("weekly size = %d, want 3", len(got.Weekly))
	}
	if len(got.Grid) != 2 {
		t.Errorf("grid size = %d, want remainder after the weekly trio", len(got.Grid))
	}
	if got.Total != 42 {
		t.Errorf("total = %d", got.Total)
	}

	if len(svc.calls) != 2 {
		t.Fatalf("List calls = %d, want hero + grid", len(svc.calls))
	}
	heroCall := svc.calls[0]
	if heroCall.Featured == nil || !*heroCall.Featured {
		t.Error("hero query must filter on highlighted")
	}
	gridCall := svc.calls[1]
	if len(gridCall.ExcludeIDs) != 3 {
		t.Errorf("grid excludeIds = %v, want the three hero ids", gridCall.ExcludeIDs)
	}
	if gridCall.Sex != models.SexFemale || gridCall.Identity != models.IdentityCis {
		t.Errorf("grid gender defaults = %s/%s, want female/cis", gridCall.Sex, gridCall.Identity)
	}
}

func TestHomeFeedShortPage(t *testing.T) {
	svc := &mockAdService{
		hero: []ad.AdView{},
		grid: []ad.AdView{view("g1", 0), view("g2", 0)},
	}
	feed := &DefaultFeedService{Ads: svc, Now: time.Now}

	got, err := feed.Home(context.Background(), adRepo.ListFilters{}, 1, 24)
	if err != nil {
		t.Fatalf("Home: %v", err)
	}
	if len(got.Hero) != 0 {
		t.Errorf("hero = %v", got.Hero)
	}
	if len(got.Weekly) != 2 || len(got.Grid) != 0 {
		t.Errorf("weekly/grid = %d/%d, want the whole short page in weekly", len(got.Weekly), len(got.Grid))
	}
}

func TestHomeFeedSeedUsesFilters(t *testing.T) {
	svc := &mockAdService{hero: []ad.AdView{}, grid: []ad.AdView{}}
	feed := &DefaultFeedService{Ads: svc, Now: time.Now}

	if _, err := feed.Home(context.Background(), adRepo.ListFilters{
		Sex:      models.SexMale,
		Identity: models.IdentityTrans,
		City:     "Madrid",
	}, 1, 24); err != nil {
		t.Fatalf("Home: %v", err)
	}
	if svc.calls[0].Sex != models.SexMale || svc.calls[0].Identity != models.IdentityTrans {
		t.Errorf("hero call gender = %s/%s", svc.calls[0].Sex, svc.calls[0].Identity)
	}
	if svc.calls[1].City != "Madrid" {
		t.Errorf("grid call city = %s", svc.calls[1].City)
	}
}
