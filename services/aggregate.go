package services

import (
	"math"

	"ecom-intel/models"
	"ecom-intel/utils"
)

// Aggregator computes distributional statistics over a deduplicated,
// sentiment-annotated record set.
type Aggregator struct {
	logger *utils.Logger
}

// NewAggregator creates an Aggregator with the given logger.
func NewAggregator(logger *utils.Logger) *Aggregator {
	return &Aggregator{logger: logger}
}

// Aggregate fills the statistics portion of an AnalysisResult: average
// rating, sentiment distribution and the star histogram. An empty record
// set yields an all-zero result, never an error.
func (a *Aggregator) Aggregate(records []*models.ReviewRecord) *models.AnalysisResult {
	result := &models.AnalysisResult{}

	if len(records) == 0 {
		return result
	}

	result.TotalReviews = len(records)

	var ratingSum float64
	var ratedCount int
	starCounts := make(map[int]int)
	sentimentCounts := make(map[string]int)

	for _, r := range records {
		if r.Rating > 0 {
			ratingSum += r.Rating
			ratedCount++
			starCounts[int(math.Floor(r.Rating))]++
		}

		label := r.SentimentLabel
		if label == "" {
			label = models.SentimentNeutral
		}
		sentimentCounts[label]++
	}

	if ratedCount > 0 {
		result.AverageRating = round2(ratingSum / float64(ratedCount))

		result.Ratings = models.RatingSummary{
			FiveStar:     round1(percent(starCounts[5], ratedCount)),
			FourStar:     round1(percent(starCounts[4], ratedCount)),
			ThreeStar:    round1(percent(starCounts[3], ratedCount)),
			TwoStar:      round1(percent(starCounts[2], ratedCount)),
			OneStar:      round1(percent(starCounts[1], ratedCount)),
			TotalRatings: ratedCount,
		}
	}

	total := len(records)
	result.Sentiment = models.SentimentDistribution{
		Positive: round1(percent(sentimentCounts[models.SentimentPositive], total)),
		Negative: round1(percent(sentimentCounts[models.SentimentNegative], total)),
		Neutral:  round1(percent(sentimentCounts[models.SentimentNeutral], total)),
	}

	a.logger.Debug("[aggregate] %d reviews, %d rated, avg %.2f",
		total, ratedCount, result.AverageRating)
	return result
}

func percent(count, total int) float64 {
	return float64(count) / float64(total) * 100
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
