package extractor

import "strings"

// reviewIndicators are domain words whose presence suggests a line is
// customer review prose rather than page chrome.
var reviewIndicators = []string{
	"great", "good", "bad", "excellent", "poor", "love", "hate",
	"recommend", "quality", "price", "service", "delivery",
	"package", "product", "item", "worked", "didn't work",
}

// LooksLikeReview decides whether a marker-less line is plausibly review
// prose. Short lines need a stronger keyword signal than long ones:
// at least 2 indicators for a 10+ word line, or 1 indicator for 20+ words.
func LooksLikeReview(line string) bool {
	lower := strings.ToLower(line)

	indicators := 0
	for _, kw := range reviewIndicators {
		if strings.Contains(lower, kw) {
			indicators++
		}
	}

	words := len(strings.Fields(line))

	return (indicators >= 2 && words >= 10) || (indicators >= 1 && words >= 20)
}
