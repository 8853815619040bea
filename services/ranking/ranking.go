package ranking

import (
	"fmt"
	"math"
	"sort"
	"time"
	"unicode/utf16"

	"forotrix/models"
)

// Channel selects which scoring formula ranks a batch of ads.
type Channel string

const (
	ChannelFeatured Channel = "featured"
	ChannelWeekly   Channel = "weekly"
)

// DefaultSeed is the base seed used when the caller does not supply one.
const DefaultSeed = "desktop-feed"

const premiumPlanBonus = 15

// Engine ranks ads deterministically within an ISO week. The clock is
// injectable so week rollover behavior is testable.
type Engine struct {
	Seed string
	Now  func() time.Time
}

func NewEngine() *Engine {
	return &Engine{Seed: DefaultSeed, Now: time.Now}
}

type rankedAd struct {
	score      float64
	tieBreaker float64
	ad         models.Ad
}

// hashToUnitInterval maps a string onto [0,1] with a djb2-style hash running
// on 32-bit signed arithmetic over UTF-16 code units, so identical inputs
// score identically across clients.
func hashToUnitInterval(input string) float64 {
	hash := int32(5381)
	for _, unit := range utf16.Encode([]rune(input)) {
		hash = int32(int64(hash)*33) ^ int32(unit)
	}
	return float64(uint32(hash)) / float64(0xffffffff)
}

// startOfISOWeek returns the UTC midnight of the Monday of date's week.
func startOfISOWeek(date time.Time) time.Time {
	utc := date.UTC()
	day := int(utc.Weekday())
	if day == 0 {
		day = 7
	}
	monday := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
	return monday.AddDate(0, 0, -(day - 1))
}

// weekSeed pins the tie-break ordering for one ISO week: it changes at Monday
// 00:00 UTC and at no other time.
func (e *Engine) weekSeed() string {
	base := e.Seed
	if base == "" {
		base = DefaultSeed
	}
	weekStart := startOfISOWeek(e.Now())
	return fmt.Sprintf("%s:%s", base, weekStart.Format("2006-01-02"))
}

// recencyScore rewards recent activity linearly over a 30-day window.
// lastActiveAt wins over updatedAt over createdAt; an unparseable
// lastActiveAt scores zero rather than falling through.
func (e *Engine) recencyScore(ad models.Ad) float64 {
	var ts time.Time
	if ad.Metadata != nil && ad.Metadata.Ranking != nil && ad.Metadata.Ranking.LastActiveAt != "" {
		parsed, err := time.Parse(time.RFC3339, ad.Metadata.Ranking.LastActiveAt)
		if err != nil {
			return 0
		}
		ts = parsed
	} else if !ad.UpdatedAt.IsZero() {
		ts = ad.UpdatedAt
	} else if !ad.CreatedAt.IsZero() {
		ts = ad.CreatedAt
	} else {
		return 0
	}

	days := math.Floor(float64(e.Now().UnixMilli()-ts.UnixMilli()) / float64(24*time.Hour/time.Millisecond))
	clamped := math.Max(0, math.Min(30, days))
	return 30 - clamped
}

// FeaturedScore is the owner boost plus the premium plan bonus plus recency.
func (e *Engine) FeaturedScore(ad models.Ad) float64 {
	var boost float64
	if ad.Metadata != nil && ad.Metadata.Ranking != nil {
		boost = ad.Metadata.Ranking.BoostFeatured
	}
	var planBonus float64
	if ad.Plan == models.PlanPremium {
		planBonus = premiumPlanBonus
	}
	return boost + planBonus + e.recencyScore(ad)
}

// WeeklyScore is the weekly favorites counter plus recency.
func (e *Engine) WeeklyScore(ad models.Ad) float64 {
	var favorites float64
	if ad.Metadata != nil && ad.Metadata.Ranking != nil {
		favorites = float64(ad.Metadata.Ranking.FavoritesWeekly)
	}
	return favorites + e.recencyScore(ad)
}

// Rank orders ads by channel score descending. Ties break on a per-week hash
// (descending) and finally on ad id ascending, so equal-score ads shuffle
// once per ISO week but never within one.
func (e *Engine) Rank(ads []models.Ad, channel Channel) []models.Ad {
	seed := e.weekSeed()
	scored := make([]rankedAd, 0, len(ads))
	for _, ad := range ads {
		var score float64
		if channel == ChannelFeatured {
			score = e.FeaturedScore(ad)
		} else {
			score = e.WeeklyScore(ad)
		}
		scored = append(scored, rankedAd{
			score:      score,
			tieBreaker: hashToUnitInterval(fmt.Sprintf("%s:%s:%s", ad.ID, channel, seed)),
			ad:         ad,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		if scored[i].tieBreaker != scored[j].tieBreaker {
			return scored[i].tieBreaker > scored[j].tieBreaker
		}
		return scored[i].ad.ID < scored[j].ad.ID
	})

	result := make([]models.Ad, 0, len(scored))
	for _, entry := range scored {
		result = append(result, entry.ad)
	}
	return result
}
