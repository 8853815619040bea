package ranking

import (
	"fmt"
	"testing"
	"time"

	"forotrix/models"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// Wednesday 2026-02-11 12:00 UTC; its ISO week starts Monday 2026-02-09.
var midWeek = time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)

func testAd(id string, opts ...func(*models.Ad)) models.Ad {
	ad := models.Ad{
		ID:        id,
		Plan:      models.PlanBasic,
		CreatedAt: midWeek.Add(-40 * 24 * time.Hour),
		UpdatedAt: midWeek.Add(-40 * 24 * time.Hour),
	}
	for _, opt := range opts {
		opt(&ad)
	}
	return ad
}

func withRanking(hints models.RankingHints) func(*models.Ad) {
	return func(ad *models.Ad) {
		if ad.Metadata == nil {
			ad.Metadata = &models.AdMetadata{}
		}
		ad.Metadata.Ranking = &hints
	}
}

func ids(ads []models.Ad) []string {
	out := make([]string, len(ads))
	for i, ad := range ads {
		out[i] = ad.ID
	}
	return out
}

func TestHashToUnitInterval(t *testing.T) {
	a := hashToUnitInterval("ad-1:featured:seed:2026-02-09")
	b := hashToUnitInterval("ad-1:featured:seed:2026-02-09")
	if a != b {
		t.Fatalf("hash is not deterministic: %v vs %v", a, b)
	}
	if a < 0 || a > 1 {
		t.Fatalf("hash %v outside [0,1]", a)
	}
	if a == hashToUnitInterval("ad-2:featured:seed:2026-02-09") {
		t.Fatal("distinct inputs collided")
	}
	// Non-ASCII input exercises the UTF-16 path.
	if v := hashToUnitInterval("peña:αβ:🙂"); v < 0 || v > 1 {
		t.Fatalf("hash %v outside [0,1]", v)
	}
}

func TestStartOfISOWeek(t *testing.T) {
	cases := []struct {
		date time.Time
		want string
	}{
		{time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC), "2026-02-09"},    // Monday itself
		{time.Date(2026, 2, 11, 23, 59, 0, 0, time.UTC), "2026-02-09"}, // Wednesday
		{time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC), "2026-02-09"},  // Sunday
		{time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC), "2026-02-16"},   // next Monday
	}
	for _, tc := range cases {
		got := startOfISOWeek(tc.date).Format("2006-01-02")
		if got != tc.want {
			t.Errorf("startOfISOWeek(%s) = %s, want %s", tc.date, got, tc.want)
		}
	}
}

func TestFeaturedScore(t *testing.T) {
	e := &Engine{Seed: "test", Now: fixedClock(midWeek)}

	base := testAd("a")
	if got := e.FeaturedScore(base); got != 0 {
		t.Errorf("stale basic ad = %v, want 0", got)
	}

	premium := testAd("b")
	premium.Plan = models.PlanPremium
	if got := e.FeaturedScore(premium); got != premiumPlanBonus {
		t.Errorf("premium bonus = %v, want %v", got, premiumPlanBonus)
	}

	boosted := testAd("c", withRanking(models.RankingHints{
		BoostFeatured: 40,
		LastActiveAt:  midWeek.Add(-5 * 24 * time.Hour).Format(time.RFC3339),
	}))
	if got := e.FeaturedScore(boosted); got != 40+25 {
		t.Errorf("boosted = %v, want 65 (boost 40 + recency 25)", got)
	}
}

func TestWeeklyScore(t *testing.T) {
	e := &Engine{Seed: "test", Now: fixedClock(midWeek)}

	ad := testAd("a", withRanking(models.RankingHints{
		FavoritesWeekly: 12,
		LastActiveAt:    midWeek.Add(-2 * 24 * time.Hour).Format(time.RFC3339),
	}))
	if got := e.WeeklyScore(ad); got != 12+28 {
		t.Errorf("weekly = %v, want 40 (favorites 12 + recency 28)", got)
	}
}

func TestRecencyFallbacks(t *testing.T) {
	e := &Engine{Seed: "test", Now: fixedClock(midWeek)}

	fresh := testAd("a")
	fresh.UpdatedAt = midWeek.Add(-1 * 24 * time.Hour)
	if got := e.recencyScore(fresh); got != 29 {
		t.Errorf("updatedAt fallback = %v, want 29", got)
	}

	created := testAd("b")
	created.UpdatedAt = time.Time{}
	created.CreatedAt = midWeek.Add(-10 * 24 * time.Hour)
	if got := e.recencyScore(created); got != 20 {
		t.Errorf("createdAt fallback = %v, want 20", got)
	}

	// An unparseable lastActiveAt scores zero instead of falling through to
	// the document timestamps.
	broken := testAd("c", withRanking(models.RankingHints{LastActiveAt: "yesterday"}))
	broken.UpdatedAt = midWeek.Add(-1 * 24 * time.Hour)
	if got := e.recencyScore(broken); got != 0 {
		t.Errorf("broken lastActiveAt = %v, want 0", got)
	}

	future := testAd("d", withRanking(models.RankingHints{
		LastActiveAt: midWeek.Add(24 * time.Hour).Format(time.RFC3339),
	}))
	if got := e.recencyScore(future); got != 30 {
		t.Errorf("future activity = %v, want clamped to 30", got)
	}

	ancient := testAd("e", withRanking(models.RankingHints{
		LastActiveAt: midWeek.Add(-90 * 24 * time.Hour).Format(time.RFC3339),
	}))
	if got := e.recencyScore(ancient); got != 0 {
		t.Errorf("ancient activity = %v, want clamped to 0", got)
	}

	zero := models.Ad{ID: "f"}
	if got := e.recencyScore(zero); got != 0 {
		t.Errorf("no timestamps = %v, want 0", got)
	}
}

func TestRankOrdersByScore(t *testing.T) {
	e := &Engine{Seed: "test", Now: fixedClock(midWeek)}

	ads := []models.Ad{
		testAd("low", withRanking(models.RankingHints{BoostFeatured: 5})),
		testAd("high", withRanking(models.RankingHints{BoostFeatured: 90})),
		testAd("mid", withRanking(models.RankingHints{BoostFeatured: 50})),
	}
	got := ids(e.Rank(ads, ChannelFeatured))
	want := []string{"high", "mid", "low"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestRankStableWithinWeek(t *testing.T) {
	var ads []models.Ad
	for i := 0; i < 12; i++ {
		ads = append(ads, testAd(fmt.Sprintf("ad-%d", i)))
	}

	monday := &Engine{Seed: "test", Now: fixedClock(time.Date(2026, 2, 9, 8, 0, 0, 0, time.UTC))}
	sunday := &Engine{Seed: "test", Now: fixedClock(time.Date(2026, 2, 15, 22, 0, 0, 0, time.UTC))}
	nextWeek := &Engine{Seed: "test", Now: fixedClock(time.Date(2026, 2, 16, 8, 0, 0, 0, time.UTC))}

	first := ids(monday.Rank(ads, ChannelFeatured))
	second := ids(sunday.Rank(ads, ChannelFeatured))
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("tie-break changed within one ISO week: %v vs %v", first, second)
		}
	}

	// Across the boundary the week seed, and with it every ad's tie-break
	// hash, must change. The resulting order may or may not differ for a
	// given batch, so assert on the hash inputs rather than the permutation.
	if monday.weekSeed() == nextWeek.weekSeed() {
		t.Fatalf("week seed did not roll over: %s", monday.weekSeed())
	}
	for _, ad := range ads {
		before := hashToUnitInterval(fmt.Sprintf("%s:%s:%s", ad.ID, ChannelFeatured, monday.weekSeed()))
		after := hashToUnitInterval(fmt.Sprintf("%s:%s:%s", ad.ID, ChannelFeatured, nextWeek.weekSeed()))
		if before == after {
			t.Errorf("tie-break hash for %s unchanged across the week boundary", ad.ID)
		}
	}
}

func TestRankSeedChangesOrder(t *testing.T) {
	var ads []models.Ad
	for i := 0; i < 12; i++ {
		ads = append(ads, testAd(fmt.Sprintf("ad-%d", i)))
	}

	a := &Engine{Seed: "female:cis:all", Now: fixedClock(midWeek)}
	b := &Engine{Seed: "male:trans:Madrid", Now: fixedClock(midWeek)}

	first := ids(a.Rank(ads, ChannelFeatured))
	second := ids(b.Rank(ads, ChannelFeatured))
	same := true
	for i := range first {
		if first[i] != second[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical tie-break order")
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	e := &Engine{Seed: "test", Now: fixedClock(midWeek)}
	ads := []models.Ad{
		testAd("b", withRanking(models.RankingHints{BoostFeatured: 90})),
		testAd("a"),
	}
	_ = e.Rank(ads, ChannelFeatured)
	if ads[0].ID != "b" || ads[1].ID != "a" {
		t.Errorf("input slice mutated: %v", ids(ads))
	}
}
