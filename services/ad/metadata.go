package ad

import (
	"math"
	"strings"
	"time"

	"forotrix/models"
)

// Largest integer a JSON client can represent without precision loss.
const maxSafeCount = float64(1<<53 - 1)

func sanitizeString(value interface{}) string {
	s, ok := value.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

// sanitizeFiniteNumber accepts the numeric shapes a decoded payload can carry
// (json gives float64, bson gives int32/int64/float64) and rejects NaN/Inf.
func sanitizeFiniteNumber(value interface{}) (float64, bool) {
	var f float64
	switch n := value.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func clampNumber(value, min, max float64) float64 {
	return math.Min(max, math.Max(min, value))
}

var isoDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// sanitizeIsoDate reparses a timestamp string and re-serializes it as UTC
// RFC 3339, discarding anything unparseable.
func sanitizeIsoDate(value interface{}) string {
	trimmed := sanitizeString(value)
	if trimmed == "" {
		return ""
	}
	for _, layout := range isoDateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	return ""
}

func asMap(value interface{}) map[string]interface{} {
	m, _ := value.(map[string]interface{})
	return m
}

func sanitizeContacts(value interface{}) *models.ContactChannels {
	raw := asMap(value)
	if raw == nil {
		return nil
	}
	contacts := models.ContactChannels{
		Whatsapp: sanitizeString(raw["whatsapp"]),
		Telegram: sanitizeString(raw["telegram"]),
		Phone:    sanitizeString(raw["phone"]),
		Email:    sanitizeString(raw["email"]),
		Website:  sanitizeString(raw["website"]),
	}
	if contacts == (models.ContactChannels{}) {
		return nil
	}
	return &contacts
}

func sanitizeLocation(value interface{}) *models.LocationInfo {
	raw := asMap(value)
	if raw == nil {
		return nil
	}
	location := models.LocationInfo{
		Region:    sanitizeString(raw["region"]),
		City:      sanitizeString(raw["city"]),
		Zone:      sanitizeString(raw["zone"]),
		Address:   sanitizeString(raw["address"]),
		Reference: sanitizeString(raw["reference"]),
	}
	if location == (models.LocationInfo{}) {
		return nil
	}
	return &location
}

func sanitizeRanking(value interface{}) *models.RankingHints {
	raw := asMap(value)
	if raw == nil {
		return nil
	}

	ranking := models.RankingHints{}

	boost, _ := sanitizeFiniteNumber(raw["boostFeatured"])
	ranking.BoostFeatured = clampNumber(boost, 0, 100)

	weekly, _ := sanitizeFiniteNumber(raw["favoritesWeekly"])
	ranking.FavoritesWeekly = int64(clampNumber(weekly, 0, maxSafeCount))

	if total, ok := sanitizeFiniteNumber(raw["favoritesTotal"]); ok {
		clamped := int64(clampNumber(total, 0, maxSafeCount))
		ranking.FavoritesTotal = &clamped
	}
	ranking.LastActiveAt = sanitizeIsoDate(raw["lastActiveAt"])

	return &ranking
}

func sanitizeSeed(value interface{}) *models.SeedInfo {
	raw := asMap(value)
	if raw == nil {
		return nil
	}
	seedBatch := sanitizeString(raw["seedBatch"])
	isMock, ok := raw["isMock"].(bool)
	if seedBatch == "" || !ok {
		return nil
	}
	return &models.SeedInfo{SeedBatch: truncate(seedBatch, 80), IsMock: isMock}
}

func sanitizeGender(value interface{}) *models.GenderInfo {
	raw := asMap(value)
	if raw == nil {
		return nil
	}
	sex := strings.ToLower(sanitizeString(raw["sex"]))
	identity := strings.ToLower(sanitizeString(raw["identity"]))
	if sex != models.SexFemale && sex != models.SexMale {
		return nil
	}
	if identity != models.IdentityCis && identity != models.IdentityTrans {
		return nil
	}
	return &models.GenderInfo{Sex: sex, Identity: identity}
}

func sanitizeAvailabilitySlot(value interface{}) *models.AvailabilitySlot {
	raw := asMap(value)
	if raw == nil {
		return nil
	}
	day := strings.ToLower(sanitizeString(raw["day"]))
	status := strings.ToLower(sanitizeString(raw["status"]))
	if !allowedDays[day] || !allowedSlotStatus[status] {
		return nil
	}

	slot := models.AvailabilitySlot{Day: day, Status: status}
	if status != models.AvailabilityCustom {
		return &slot
	}

	ranges := sanitizeAvailabilityRanges(raw["ranges"])
	legacyFrom := sanitizeTime(raw["from"])
	legacyTo := sanitizeTime(raw["to"])

	if len(ranges) == 0 && legacyFrom != "" && legacyTo != "" {
		ranges = sanitizeAvailabilityRanges([]interface{}{
			map[string]interface{}{"from": legacyFrom, "to": legacyTo},
		})
	}

	slot.Ranges = ranges
	slot.From = legacyFrom
	slot.To = legacyTo
	if len(ranges) == 1 {
		slot.From = ranges[0].From
		slot.To = ranges[0].To
	}
	return &slot
}

func sanitizeAttributes(value interface{}) map[string]interface{} {
	raw := asMap(value)
	if raw == nil {
		return nil
	}
	attributes := make(map[string]interface{})
	for key, v := range raw {
		switch typed := v.(type) {
		case nil:
			attributes[key] = nil
		case []interface{}:
			items := make([]string, 0, len(typed))
			for _, item := range typed {
				s, ok := item.(string)
				if !ok {
					continue
				}
				s = strings.TrimSpace(s)
				if s == "" {
					continue
				}
				items = append(items, truncate(s, 120))
				if len(items) >= 20 {
					break
				}
			}
			if len(items) > 0 {
				attributes[key] = items
			}
		case string:
			attributes[key] = truncate(typed, 200)
		case bool:
			attributes[key] = typed
		default:
			if n, ok := sanitizeFiniteNumber(v); ok {
				attributes[key] = n
			}
		}
	}
	if len(attributes) == 0 {
		return nil
	}
	return attributes
}

// SanitizeMetadata normalizes a raw metadata payload into the typed metadata
// block stored on an ad. Unknown sub-blocks are dropped, malformed entries are
// silently discarded, and an effectively empty block collapses to nil.
func SanitizeMetadata(raw map[string]interface{}) *models.AdMetadata {
	if raw == nil {
		return nil
	}

	result := models.AdMetadata{
		Contacts: sanitizeContacts(raw["contacts"]),
		Location: sanitizeLocation(raw["location"]),
		Ranking:  sanitizeRanking(raw["ranking"]),
		Seed:     sanitizeSeed(raw["seed"]),
		Gender:   sanitizeGender(raw["gender"]),
	}

	if slots, ok := raw["availability"].([]interface{}); ok {
		availability := make([]models.AvailabilitySlot, 0, len(slots))
		for _, entry := range slots {
			if slot := sanitizeAvailabilitySlot(entry); slot != nil {
				availability = append(availability, *slot)
			}
		}
		if len(availability) > 0 {
			result.Availability = availability
		}
	}

	result.Attributes = sanitizeAttributes(raw["attributes"])

	if result.Contacts == nil && result.Location == nil && result.Availability == nil &&
		result.Ranking == nil && result.Seed == nil && result.Gender == nil &&
		result.Attributes == nil {
		return nil
	}
	return &result
}
