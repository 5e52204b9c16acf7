package extractor

import "testing"

func TestNormalizeRating(t *testing.T) {
	tests := []struct {
		token string
		want  float64
	}{
		{"3", 3.0},
		{"4.5", 4.5},
		{"90", 4.5},  // 0–100 scale
		{"0.8", 4.0}, // 0–1 scale
		{"100", 5.0},
		{"0", 1.0}, // clamped to lower bound
		{"1", 5.0}, // ≤1 treated as 0–1 scale
		{"no digits here", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := NormalizeRating(tt.token); got != tt.want {
			t.Errorf("NormalizeRating(%q) = %v; want %v", tt.token, got, tt.want)
		}
	}
}

func TestNormalizeRatingBounds(t *testing.T) {
	// Any numeric token must land inside [1, 5].
	tokens := []string{"0", "0.1", "0.99", "1", "2.5", "5", "6", "7", "50", "90", "100", "1000"}
	for _, tok := range tokens {
		got := NormalizeRating(tok)
		if got < 1 || got > 5 {
			t.Errorf("NormalizeRating(%q) = %v; outside [1, 5]", tok, got)
		}
	}
}

func TestExtractReviewer(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Absolutely loved this blender. Reviewed by John Smith on site", "John Smith"},
		{"Solid product overall - Maria Garcia", "Maria Garcia"},
		{"Alice Johnson said it broke after a week", "Alice Johnson"},
		{"no names in here at all", ""},
		{"by JOHN SMITH", ""}, // all-caps is not a capitalized name pair
	}

	for _, tt := range tests {
		if got := ExtractReviewer(tt.text); got != tt.want {
			t.Errorf("ExtractReviewer(%q) = %q; want %q", tt.text, got, tt.want)
		}
	}
}

func TestExtractDate(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"bought on 12/25/2023 as a gift", "12/25/2023"},
		{"delivered 3-14-2024 right on time", "3-14-2024"},
		{"Reviewed on January 5, 2024 after a month of use", "January 5, 2024"},
		{"posted 17 March 2023 in the UK", "17 March 2023"},
		{"no dates mentioned anywhere", ""},
	}

	for _, tt := range tests {
		if got := ExtractDate(tt.text); got != tt.want {
			t.Errorf("ExtractDate(%q) = %q; want %q", tt.text, got, tt.want)
		}
	}
}
