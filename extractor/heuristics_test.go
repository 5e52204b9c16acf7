package extractor

import "testing"

func TestLooksLikeReviewThresholds(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		// exactly 2 indicators (item, good) and 10 words
		{"two indicators ten words", "The item seems fine overall and the build is good", true},
		// same indicators, only 9 words
		{"two indicators nine words", "The item fine overall and the build is good", false},
		// 1 indicator needs 20+ words
		{
			"one indicator twenty words",
			"I have been using this for several weeks now and I can say the quality has held up through daily use",
			true,
		},
		{"one indicator short", "Decent quality overall I think", false},
		{"no indicators", "Home About Contact Shipping Returns Careers Privacy Terms Sitemap Help", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		if got := LooksLikeReview(tt.line); got != tt.want {
			t.Errorf("%s: LooksLikeReview(%q) = %v; want %v", tt.name, tt.line, got, tt.want)
		}
	}
}
