package extractor

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// starsWordRegexp matches "4 stars", "4.5 star" anywhere in a line
	starsWordRegexp = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*stars?\s*(.*)`)
	// ratingPrefixRegexp matches "Rating: 4" / "Rating 4.5"
	ratingPrefixRegexp = regexp.MustCompile(`(?i)rating[:\s]*(\d+(?:\.\d+)?)\s*(.*)`)
	// outOfFiveRegexp matches "3/5", "4.5/5"
	outOfFiveRegexp = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*/\s*5\b\s*(.*)`)
	// starGlyphRegexp matches a run of filled star glyphs
	starGlyphRegexp = regexp.MustCompile(`(★{1,5})\s*(.*)`)
)

// markerRule inspects one line for a rating marker. On a hit it returns the
// raw rating token and the text trailing the marker.
type markerRule func(line string) (token, trailing string, ok bool)

// markerRules are tried in fixed priority order; the first family that
// matches a line wins, even if a later family would also match.
var markerRules = []markerRule{
	matchSubmatchRule(starsWordRegexp),
	matchSubmatchRule(ratingPrefixRegexp),
	matchSubmatchRule(outOfFiveRegexp),
	matchStarGlyphs,
}

func matchSubmatchRule(re *regexp.Regexp) markerRule {
	return func(line string) (string, string, bool) {
		m := re.FindStringSubmatch(line)
		if m == nil {
			return "", "", false
		}
		return m[1], strings.TrimSpace(m[2]), true
	}
}

// matchStarGlyphs converts a glyph run like "★★★★" into a numeric token so
// the rating normalizer can treat all rule families uniformly.
func matchStarGlyphs(line string) (string, string, bool) {
	m := starGlyphRegexp.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	count := strings.Count(m[1], "★")
	return strconv.Itoa(count), strings.TrimSpace(m[2]), true
}

// MatchRatingMarker reports whether line contains a rating marker. On a hit
// it returns the raw rating token and the text trailing the marker. A miss
// is a normal outcome for prose-only lines, not an error.
func MatchRatingMarker(line string) (token, trailing string, ok bool) {
	for _, rule := range markerRules {
		if token, trailing, ok = rule(line); ok {
			return token, trailing, true
		}
	}
	return "", "", false
}
