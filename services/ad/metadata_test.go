package ad

import (
	"testing"

	"forotrix/models"
)

func TestSanitizeMetadataEmpty(t *testing.T) {
	if got := SanitizeMetadata(nil); got != nil {
		t.Fatalf("nil input: got %+v, want nil", got)
	}
	if got := SanitizeMetadata(map[string]interface{}{}); got != nil {
		t.Fatalf("empty map: got %+v, want nil", got)
	}
	got := SanitizeMetadata(map[string]interface{}{
		"contacts": map[string]interface{}{"whatsapp": "   "},
		"location": map[string]interface{}{},
		"gender":   map[string]interface{}{"sex": "other", "identity": "cis"},
	})
	if got != nil {
		t.Fatalf("effectively empty block: got %+v, want nil", got)
	}
}

func TestSanitizeMetadataContacts(t *testing.T) {
	got := SanitizeMetadata(map[string]interface{}{
		"contacts": map[string]interface{}{
			"whatsapp": "  +34600111222 ",
			"telegram": "@marina",
			"phone":    42, // wrong type, dropped
		},
	})
	if got == nil || got.Contacts == nil {
		t.Fatalf("got %+v, want contacts block", got)
	}
	if got.Contacts.Whatsapp != "+34600111222" {
		t.Errorf("whatsapp = %q, want trimmed value", got.Contacts.Whatsapp)
	}
	if got.Contacts.Telegram != "@marina" {
		t.Errorf("telegram = %q", got.Contacts.Telegram)
	}
	if got.Contacts.Phone != "" {
		t.Errorf("phone = %q, want empty for non-string", got.Contacts.Phone)
	}
}

func TestSanitizeMetadataRanking(t *testing.T) {
	got := SanitizeMetadata(map[string]interface{}{
		"ranking": map[string]interface{}{
			"boostFeatured":   float64(150),
			"favoritesWeekly": float64(-3),
			"favoritesTotal":  float64(12),
			"lastActiveAt":    "2024-07-12",
		},
	})
	if got == nil || got.Ranking == nil {
		t.Fatalf("got %+v, want ranking block", got)
	}
	if got.Ranking.BoostFeatured != 100 {
		t.Errorf("boostFeatured = %v, want clamped to 100", got.Ranking.BoostFeatured)
	}
	if got.Ranking.FavoritesWeekly != 0 {
		t.Errorf("favoritesWeekly = %v, want clamped to 0", got.Ranking.FavoritesWeekly)
	}
	if got.Ranking.FavoritesTotal == nil || *got.Ranking.FavoritesTotal != 12 {
		t.Errorf("favoritesTotal = %v, want 12", got.Ranking.FavoritesTotal)
	}
	if got.Ranking.LastActiveAt != "2024-07-12T00:00:00Z" {
		t.Errorf("lastActiveAt = %q, want normalized RFC3339", got.Ranking.LastActiveAt)
	}
}

func TestSanitizeMetadataRankingBadDate(t *testing.T) {
	got := SanitizeMetadata(map[string]interface{}{
		"ranking": map[string]interface{}{
			"boostFeatured": float64(10),
			"lastActiveAt":  "last tuesday",
		},
	})
	if got == nil || got.Ranking == nil {
		t.Fatal("want ranking block")
	}
	if got.Ranking.LastActiveAt != "" {
		t.Errorf("lastActiveAt = %q, want dropped", got.Ranking.LastActiveAt)
	}
}

func TestSanitizeMetadataSeed(t *testing.T) {
	got := SanitizeMetadata(map[string]interface{}{
		"seed": map[string]interface{}{"seedBatch": " seed-2026-09-01 ", "isMock": true},
	})
	if got == nil || got.Seed == nil {
		t.Fatalf("got %+v, want seed block", got)
	}
	if got.Seed.SeedBatch != "seed-2026-09-01" || !got.Seed.IsMock {
		t.Errorf("seed = %+v", got.Seed)
	}

	// isMock must be an actual bool.
	got = SanitizeMetadata(map[string]interface{}{
		"seed": map[string]interface{}{"seedBatch": "x", "isMock": "yes"},
	})
	if got != nil {
		t.Fatalf("got %+v, want nil when isMock is not a bool", got)
	}
}

func TestSanitizeMetadataGender(t *testing.T) {
	got := SanitizeMetadata(map[string]interface{}{
		"gender": map[string]interface{}{"sex": " Female ", "identity": "TRANS"},
	})
	if got == nil || got.Gender == nil {
		t.Fatalf("got %+v, want gender block", got)
	}
	if got.Gender.Sex != models.SexFemale || got.Gender.Identity != models.IdentityTrans {
		t.Errorf("gender = %+v, want lowercased female/trans", got.Gender)
	}

	got = SanitizeMetadata(map[string]interface{}{
		"gender": map[string]interface{}{"sex": "female", "identity": "nonbinary"},
	})
	if got != nil {
		t.Fatalf("got %+v, want nil for unknown identity", got)
	}
}

func TestSanitizeMetadataAvailability(t *testing.T) {
	got := SanitizeMetadata(map[string]interface{}{
		"availability": []interface{}{
			map[string]interface{}{
				"day":    "monday",
				"status": "custom",
				"ranges": []interface{}{
					rawRange("16:00", "20:00"),
					rawRange("10:00", "14:00"),
				},
			},
			map[string]interface{}{"day": "saturday", "status": "unavailable"},
			map[string]interface{}{"day": "noday", "status": "custom"},
		},
	})
	if got == nil || len(got.Availability) != 2 {
		t.Fatalf("got %+v, want 2 availability slots", got)
	}
	monday := got.Availability[0]
	if monday.Day != models.Monday || len(monday.Ranges) != 2 {
		t.Fatalf("monday slot = %+v", monday)
	}
	if monday.Ranges[0].From != "10:00" {
		t.Errorf("ranges not sorted: %+v", monday.Ranges)
	}
	if got.Availability[1].Status != models.AvailabilityUnavailable {
		t.Errorf("saturday slot = %+v", got.Availability[1])
	}
}

func TestSanitizeMetadataAvailabilityLegacyMirror(t *testing.T) {
	got := SanitizeMetadata(map[string]interface{}{
		"availability": []interface{}{
			map[string]interface{}{
				"day":    "friday",
				"status": "custom",
				"from":   "09:00",
				"to":     "17:00",
			},
		},
	})
	if got == nil || len(got.Availability) != 1 {
		t.Fatalf("got %+v, want one slot", got)
	}
	slot := got.Availability[0]
	if len(slot.Ranges) != 1 || slot.Ranges[0].From != "09:00" {
		t.Fatalf("legacy from/to not lifted into ranges: %+v", slot)
	}
	if slot.From != "09:00" || slot.To != "17:00" {
		t.Errorf("legacy mirror = %q-%q", slot.From, slot.To)
	}
}

func TestSanitizeMetadataAttributes(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a'
	}
	got := SanitizeMetadata(map[string]interface{}{
		"attributes": map[string]interface{}{
			"eyes":    "azules",
			"long":    string(long),
			"height":  float64(170),
			"smoker":  false,
			"badFunc": map[string]interface{}{"nested": true},
			"tags":    []interface{}{" uno ", "", 7, "dos"},
		},
	})
	if got == nil || got.Attributes == nil {
		t.Fatalf("got %+v, want attributes", got)
	}
	if got.Attributes["eyes"] != "azules" {
		t.Errorf("eyes = %v", got.Attributes["eyes"])
	}
	if s, _ := got.Attributes["long"].(string); len(s) != 200 {
		t.Errorf("long string not truncated to 200: %d", len(s))
	}
	if got.Attributes["height"] != float64(170) {
		t.Errorf("height = %v", got.Attributes["height"])
	}
	if got.Attributes["smoker"] != false {
		t.Errorf("smoker = %v", got.Attributes["smoker"])
	}
	if _, ok := got.Attributes["badFunc"]; ok {
		t.Error("nested map should be dropped")
	}
	tags, ok := got.Attributes["tags"].([]string)
	if !ok || len(tags) != 2 || tags[0] != "uno" || tags[1] != "dos" {
		t.Errorf("tags = %v", got.Attributes["tags"])
	}
}
