package services

import (
	"math"
	"testing"

	"ecom-intel/models"
)

func TestAggregateEmptyInput(t *testing.T) {
	a := NewAggregator(newTestLogger())
	r := a.Aggregate(nil)

	if r.TotalReviews != 0 {
		t.Errorf("TotalReviews: got %d, want 0", r.TotalReviews)
	}
	if r.AverageRating != 0.0 {
		t.Errorf("AverageRating: got %v, want 0.0", r.AverageRating)
	}
	if r.Sentiment.Positive != 0 || r.Sentiment.Negative != 0 || r.Sentiment.Neutral != 0 {
		t.Errorf("sentiment distribution should be all zero, got %+v", r.Sentiment)
	}
	if r.Ratings.TotalRatings != 0 {
		t.Errorf("TotalRatings: got %d, want 0", r.Ratings.TotalRatings)
	}
}

func TestAggregateAverageRating(t *testing.T) {
	a := NewAggregator(newTestLogger())
	records := []*models.ReviewRecord{
		{Text: "a", Rating: 5},
		{Text: "b", Rating: 4},
		{Text: "c", Rating: 0}, // unrated, excluded from the mean
		{Text: "d", Rating: 1},
	}

	r := a.Aggregate(records)
	want := 3.33 // (5+4+1)/3 rounded to 2dp
	if r.AverageRating != want {
		t.Errorf("AverageRating: got %v, want %v", r.AverageRating, want)
	}
	if r.Ratings.TotalRatings != 3 {
		t.Errorf("TotalRatings: got %d, want 3", r.Ratings.TotalRatings)
	}
}

func TestAggregateSentimentSumsToHundred(t *testing.T) {
	a := NewAggregator(newTestLogger())
	records := []*models.ReviewRecord{
		{Text: "a", SentimentLabel: models.SentimentPositive},
		{Text: "b", SentimentLabel: models.SentimentNegative},
		{Text: "c", SentimentLabel: models.SentimentNeutral},
	}

	r := a.Aggregate(records)
	sum := r.Sentiment.Positive + r.Sentiment.Negative + r.Sentiment.Neutral
	if math.Abs(sum-100.0) > 0.3 {
		t.Errorf("sentiment percentages sum to %v, want 100 ± 0.3", sum)
	}
}

func TestAggregateStarHistogramSumsToHundred(t *testing.T) {
	a := NewAggregator(newTestLogger())
	records := []*models.ReviewRecord{
		{Text: "a", Rating: 5},
		{Text: "b", Rating: 4.5}, // floors into the 4-star bucket
		{Text: "c", Rating: 3},
		{Text: "d", Rating: 3},
		{Text: "e", Rating: 1.2},
		{Text: "f", Rating: 2},
		{Text: "g", Rating: 2.9},
	}

	r := a.Aggregate(records)

	sum := r.Ratings.FiveStar + r.Ratings.FourStar + r.Ratings.ThreeStar +
		r.Ratings.TwoStar + r.Ratings.OneStar
	if math.Abs(sum-100.0) > 0.3 {
		t.Errorf("star percentages sum to %v, want 100 ± 0.3", sum)
	}
	if r.Ratings.FourStar != round1(1.0/7.0*100) {
		t.Errorf("FourStar: got %v, want %v (4.5 floors to 4)", r.Ratings.FourStar, round1(1.0/7.0*100))
	}
	if r.Ratings.TwoStar != round1(2.0/7.0*100) {
		t.Errorf("TwoStar: got %v, want %v (2 and 2.9)", r.Ratings.TwoStar, round1(2.0/7.0*100))
	}
}

func TestAggregateUnlabeledCountsAsNeutral(t *testing.T) {
	a := NewAggregator(newTestLogger())
	records := []*models.ReviewRecord{
		{Text: "a", SentimentLabel: models.SentimentPositive},
		{Text: "b"}, // never classified
	}

	r := a.Aggregate(records)
	if r.Sentiment.Neutral != 50.0 {
		t.Errorf("Neutral: got %v, want 50.0", r.Sentiment.Neutral)
	}
	if r.Sentiment.Positive != 50.0 {
		t.Errorf("Positive: got %v, want 50.0", r.Sentiment.Positive)
	}
}
