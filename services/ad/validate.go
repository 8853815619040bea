package ad

import (
	"fmt"

	"forotrix/models"
)

// slotFromPayload rebuilds a typed availability slot from a raw payload entry
// so the strict validator can run on it. Wrong shapes surface as errors here
// rather than being dropped.
func slotFromPayload(entry interface{}) (models.AvailabilitySlot, error) {
	raw, ok := entry.(map[string]interface{})
	if !ok {
		return models.AvailabilitySlot{}, fmt.Errorf("availability slot must be an object")
	}

	slot := models.AvailabilitySlot{}
	slot.Day, _ = raw["day"].(string)
	slot.Status, _ = raw["status"].(string)

	if v, ok := raw["from"]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return slot, fmt.Errorf("availability from must be a string")
		}
		slot.From = s
	}
	if v, ok := raw["to"]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return slot, fmt.Errorf("availability to must be a string")
		}
		slot.To = s
	}
	if v, ok := raw["ranges"]; ok && v != nil {
		entries, ok := v.([]interface{})
		if !ok {
			return slot, fmt.Errorf("availability ranges must be an array")
		}
		for _, e := range entries {
			m, ok := e.(map[string]interface{})
			if !ok {
				return slot, fmt.Errorf("availability range must be an object")
			}
			from, _ := m["from"].(string)
			to, _ := m["to"].(string)
			slot.Ranges = append(slot.Ranges, models.AvailabilityRange{From: from, To: to})
		}
	}
	return slot, nil
}

// ValidateMetadataInput is the strict counterpart of SanitizeMetadata, applied
// to client payloads before they reach the storage path. It rejects what the
// sanitizer would silently drop.
func ValidateMetadataInput(raw map[string]interface{}) error {
	if raw == nil {
		return nil
	}

	if v, ok := raw["availability"]; ok && v != nil {
		entries, ok := v.([]interface{})
		if !ok {
			return fmt.Errorf("availability must be an array")
		}
		if len(entries) > 7 {
			return fmt.Errorf("availability allows at most 7 slots")
		}
		for _, entry := range entries {
			slot, err := slotFromPayload(entry)
			if err != nil {
				return err
			}
			if err := ValidateAvailabilitySlot(slot); err != nil {
				return err
			}
		}
	}

	if r := asMap(raw["ranking"]); r != nil {
		boost, ok := sanitizeFiniteNumber(r["boostFeatured"])
		if !ok || boost < 0 || boost > 100 {
			return fmt.Errorf("ranking boostFeatured must be between 0 and 100")
		}
		weekly, ok := sanitizeFiniteNumber(r["favoritesWeekly"])
		if !ok || weekly < 0 {
			return fmt.Errorf("ranking favoritesWeekly must be a non-negative number")
		}
		if v, present := r["favoritesTotal"]; present && v != nil {
			total, ok := sanitizeFiniteNumber(v)
			if !ok || total < 0 {
				return fmt.Errorf("ranking favoritesTotal must be a non-negative number")
			}
		}
		if v, present := r["lastActiveAt"]; present && v != nil {
			if sanitizeIsoDate(v) == "" {
				return fmt.Errorf("ranking lastActiveAt must be a valid timestamp")
			}
		}
	}

	if s := asMap(raw["seed"]); s != nil {
		batch := sanitizeString(s["seedBatch"])
		if len(batch) < 3 || len(batch) > 80 {
			return fmt.Errorf("seed seedBatch must be 3-80 characters")
		}
		if _, ok := s["isMock"].(bool); !ok {
			return fmt.Errorf("seed isMock must be a boolean")
		}
	}

	if g := asMap(raw["gender"]); g != nil {
		if sanitizeGender(g) == nil {
			return fmt.Errorf("gender requires sex female|male and identity cis|trans")
		}
	}

	if a := asMap(raw["attributes"]); a != nil {
		for key, v := range a {
			switch typed := v.(type) {
			case nil, bool:
			case string:
				if len(typed) == 0 || len(typed) > 200 {
					return fmt.Errorf("attribute %s must be 1-200 characters", key)
				}
			case []interface{}:
				if len(typed) > 20 {
					return fmt.Errorf("attribute %s allows at most 20 items", key)
				}
				for _, item := range typed {
					s, ok := item.(string)
					if !ok || len(s) == 0 || len(s) > 120 {
						return fmt.Errorf("attribute %s items must be 1-120 character strings", key)
					}
				}
			default:
				if _, ok := sanitizeFiniteNumber(v); !ok {
					return fmt.Errorf("attribute %s has an unsupported value", key)
				}
			}
		}
	}

	return nil
}
