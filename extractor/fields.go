package extractor

import (
	"regexp"
	"strconv"
)

var (
	// numericTokenRegexp captures the first numeric token in a rating capture
	numericTokenRegexp = regexp.MustCompile(`\d+(?:\.\d+)?`)

	// reviewerRegexps require two capitalized words; tried in order
	reviewerRegexps = []*regexp.Regexp{
		regexp.MustCompile(`by\s+([A-Z][a-z]+\s+[A-Z][a-z]+)`),
		regexp.MustCompile(`-\s*([A-Z][a-z]+\s+[A-Z][a-z]+)`),
		regexp.MustCompile(`([A-Z][a-z]+\s+[A-Z][a-z]+)\s*said`),
	}

	monthNames = `January|February|March|April|May|June|July|August|September|October|November|December`

	// dateRegexps cover numeric, month-first and day-first forms; tried in order
	dateRegexps = []*regexp.Regexp{
		regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`),
		regexp.MustCompile(`\d{1,2}-\d{1,2}-\d{4}`),
		regexp.MustCompile(`(?i)(?:` + monthNames + `)\s+\d{1,2},?\s+\d{4}`),
		regexp.MustCompile(`(?i)\d{1,2}\s+(?:` + monthNames + `)\s+\d{4}`),
	}
)

// NormalizeRating converts a raw rating token to the 1–5 scale. Values above
// 5 are treated as a 0–100 scale and divided by 20; values at or below 1 are
// treated as a 0–1 scale and multiplied by 5. The result is clamped to
// [1, 5]. Returns 0 when the token carries no numeric value.
func NormalizeRating(token string) float64 {
	m := numericTokenRegexp.FindString(token)
	if m == "" {
		return 0
	}

	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}

	if v > 5 {
		v = v / 20
	} else if v <= 1 {
		v = v * 5
	}

	if v < 1 {
		return 1
	}
	if v > 5 {
		return 5
	}
	return v
}

// ExtractReviewer pulls a reviewer name like "by Jane Doe" out of an
// accumulated review block. Empty when no pattern matches.
func ExtractReviewer(text string) string {
	for _, re := range reviewerRegexps {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

// ExtractDate pulls the first recognizable date out of an accumulated
// review block. Empty when no pattern matches.
func ExtractDate(text string) string {
	for _, re := range dateRegexps {
		if m := re.FindString(text); m != "" {
			return m
		}
	}
	return ""
}
