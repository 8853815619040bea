package ad

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"forotrix/models"
)

const maxAvailabilityRanges = 5

var timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)

var allowedDays = map[string]bool{
	models.Monday: true, models.Tuesday: true, models.Wednesday: true,
	models.Thursday: true, models.Friday: true, models.Saturday: true,
	models.Sunday: true,
}

var allowedSlotStatus = map[string]bool{
	models.AvailabilityAllDay: true, models.AvailabilityCustom: true, models.AvailabilityUnavailable: true,
}

type parsedRange struct {
	from, to   string
	start, end int
}

// sanitizeTime returns the trimmed HH:MM string, or "" when malformed or
// outside the 24h clock.
func sanitizeTime(value interface{}) string {
	s, ok := value.(string)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	if !timePattern.MatchString(s) {
		return ""
	}
	hour, _ := strconv.Atoi(s[:2])
	minute, _ := strconv.Atoi(s[3:])
	if hour > 23 || minute > 59 {
		return ""
	}
	return s
}

// timeToNumber converts "HH:MM" to its HHMM integer for ordering. Assumes the
// value already matched timePattern.
func timeToNumber(t string) int {
	n, _ := strconv.Atoi(strings.Replace(t, ":", "", 1))
	return n
}

// parseRange validates a single from/to pair. Both the lenient sanitizer and
// the strict boundary validation go through here so they agree on what a
// well-formed range is.
func parseRange(from, to string) (parsedRange, bool) {
	f := sanitizeTime(from)
	t := sanitizeTime(to)
	if f == "" || t == "" {
		return parsedRange{}, false
	}
	start := timeToNumber(f)
	end := timeToNumber(t)
	if start >= end {
		return parsedRange{}, false
	}
	return parsedRange{from: f, to: t, start: start, end: end}, true
}

func sortRanges(ranges []parsedRange) {
	sort.SliceStable(ranges, func(i, j int) bool {
		if ranges[i].start != ranges[j].start {
			return ranges[i].start < ranges[j].start
		}
		return ranges[i].end < ranges[j].end
	})
}

// sanitizeAvailabilityRanges is the lenient path used when persisting stored
// or seeded data: malformed and overlapping entries are dropped silently,
// survivors are sorted by start time and capped at maxAvailabilityRanges.
func sanitizeAvailabilityRanges(value interface{}) []models.AvailabilityRange {
	entries, ok := value.([]interface{})
	if !ok {
		return nil
	}

	parsed := make([]parsedRange, 0, len(entries))
	for _, entry := range entries {
		m, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		from, _ := m["from"].(string)
		to, _ := m["to"].(string)
		if r, ok := parseRange(from, to); ok {
			parsed = append(parsed, r)
		}
	}
	if len(parsed) == 0 {
		return nil
	}

	sortRanges(parsed)

	result := make([]models.AvailabilityRange, 0, maxAvailabilityRanges)
	var prevEnd int
	for _, r := range parsed {
		if len(result) > 0 && r.start < prevEnd {
			continue
		}
		result = append(result, models.AvailabilityRange{From: r.from, To: r.to})
		prevEnd = r.end
		if len(result) >= maxAvailabilityRanges {
			break
		}
	}
	return result
}

// ValidateAvailabilitySlot is the strict path applied to client payloads at
// the API boundary. Unlike the sanitizer it rejects instead of dropping.
func ValidateAvailabilitySlot(slot models.AvailabilitySlot) error {
	if !allowedDays[strings.ToLower(strings.TrimSpace(slot.Day))] {
		return fmt.Errorf("invalid availability day %q", slot.Day)
	}
	status := strings.ToLower(strings.TrimSpace(slot.Status))
	if !allowedSlotStatus[status] {
		return fmt.Errorf("invalid availability status %q", slot.Status)
	}
	if status != models.AvailabilityCustom {
		return nil
	}

	hasLegacy := slot.From != "" && slot.To != ""
	if !hasLegacy && len(slot.Ranges) == 0 {
		return fmt.Errorf("custom availability requires from/to or ranges")
	}
	if len(slot.Ranges) > maxAvailabilityRanges {
		return fmt.Errorf("availability slot allows at most %d ranges", maxAvailabilityRanges)
	}

	ranges := slot.Ranges
	if len(ranges) == 0 {
		ranges = []models.AvailabilityRange{{From: slot.From, To: slot.To}}
	}

	parsed := make([]parsedRange, 0, len(ranges))
	for _, r := range ranges {
		if sanitizeTime(r.From) == "" || sanitizeTime(r.To) == "" {
			return fmt.Errorf("availability times must be HH:MM")
		}
		start := timeToNumber(r.From)
		end := timeToNumber(r.To)
		if start >= end {
			return fmt.Errorf("invalid range %s-%s", r.From, r.To)
		}
		parsed = append(parsed, parsedRange{from: r.From, to: r.To, start: start, end: end})
	}

	sortRanges(parsed)
	for i := 1; i < len(parsed); i++ {
		if parsed[i].start < parsed[i-1].end {
			return fmt.Errorf("availability ranges cannot overlap")
		}
	}
	return nil
}

// ValidateAvailability checks a full availability block (at most 7 slots).
func ValidateAvailability(slots []models.AvailabilitySlot) error {
	if len(slots) > 7 {
		return fmt.Errorf("availability allows at most 7 slots")
	}
	for _, slot := range slots {
		if err := ValidateAvailabilitySlot(slot); err != nil {
			return err
		}
	}
	return nil
}
