package ad

import (
	"strings"
)

// Suffix markers after which a title is considered decoration (city names,
// slogans). Scanned on the lower-cased title.
var titleMarkers = []string{" - ", " | ", " / ", " en ", " en la ", " en el ", " en los ", " en las "}

func collapseWhitespace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// NormalizeTitle strips trailing city/hashtag/comma-delimited suffixes from a
// raw ad title. Falls back to the first word when stripping leaves nothing.
func NormalizeTitle(rawTitle string) string {
	compact := collapseWhitespace(rawTitle)
	if compact == "" {
		return ""
	}

	lower := strings.ToLower(compact)
	cut := len(compact)

	if i := strings.Index(compact, ","); i >= 0 && i < cut {
		cut = i
	}
	if i := strings.Index(compact, "#"); i >= 0 && i < cut {
		cut = i
	}
	for _, marker := range titleMarkers {
		if i := strings.Index(lower, marker); i >= 0 && i < cut {
			cut = i
		}
	}

	sliced := collapseWhitespace(compact[:cut])
	if sliced != "" {
		return strings.TrimSpace(strings.TrimRight(sliced, "-/|"))
	}

	fields := strings.Fields(compact)
	return fields[0]
}
