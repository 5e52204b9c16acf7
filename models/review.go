package models

import "time"

// Sentiment labels assigned by the classifier.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// RawPage holds one scraped page's full markdown content, exactly as the
// fetch layer returned it. Consumed once by the extractor, then discarded.
type RawPage struct {
	URL       string
	Content   string
	FetchedAt time.Time
}

// ReviewRecord is a single review recovered from unstructured page content.
// Rating is 0 when no rating marker was found; normalized ratings are always
// in the 1–5 range. ReviewerName and ReviewDate are empty when absent.
type ReviewRecord struct {
	ID             int64
	ProductID      int64
	Text           string
	Rating         float64
	ReviewerName   string
	ReviewDate     string
	SourceURL      string
	SentimentLabel string
	SentimentScore float64
	ExtractedAt    time.Time
}

// Sentiment is the classifier verdict for one review.
type Sentiment struct {
	Label string
	Score float64
}

// SentimentDistribution holds per-label percentages over a record set.
type SentimentDistribution struct {
	Positive float64
	Negative float64
	Neutral  float64
}

// RatingSummary is the star histogram over rated records, in percentages.
type RatingSummary struct {
	FiveStar     float64
	FourStar     float64
	ThreeStar    float64
	TwoStar      float64
	OneStar      float64
	TotalRatings int
}

// Insights holds the narrative analysis produced by the LLM.
type Insights struct {
	KeyInsights     []string
	Pros            []string
	Cons            []string
	Recommendations []string
}

// AnalysisResult is the full analysis of one product's review set,
// recomputed fresh on every run.
type AnalysisResult struct {
	TotalReviews    int
	AverageRating   float64
	Sentiment       SentimentDistribution
	Ratings         RatingSummary
	KeyInsights     []string
	Pros            []string
	Cons            []string
	Recommendations []string
}

// Product identifies one analyzed product, keyed by URL.
type Product struct {
	ID        int64
	URL       string
	Title     string
	Brand     string
	Price     string
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductOverview is a product row joined with its latest analysis,
// used for the recent-analyses listing and the cached-result lookup.
type ProductOverview struct {
	ID            int64
	URL           string
	Title         string
	Brand         string
	TotalReviews  int
	AverageRating float64
	CreatedAt     time.Time
}

// Comparison is the LLM verdict when comparing several analyzed products.
type Comparison struct {
	BestOverall      string
	BestValue        string
	HighestQuality   string
	ComparisonPoints []string
	Recommendation   string
}
