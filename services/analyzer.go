package services

import (
	"context"
	"errors"

	"ecom-intel/config"
	"ecom-intel/models"
	"ecom-intel/utils"
)

// ErrNoReviews is returned when an analysis run has zero usable review
// records. Callers distinguish this from a successful analysis of a
// sparsely reviewed product.
var ErrNoReviews = errors.New("no review records to analyze")

// maxInsightRecords caps how many reviews are handed to the insight
// generator, keeping the prompt inside token limits.
const maxInsightRecords = 50

// SentimentClassifier labels a single review's sentiment.
type SentimentClassifier interface {
	Classify(ctx context.Context, text string) (models.Sentiment, error)
}

// InsightGenerator produces narrative insights over a record set.
type InsightGenerator interface {
	Summarize(ctx context.Context, records []*models.ReviewRecord, maxRecords int) (models.Insights, error)
}

// Analyzer orchestrates a full analysis run: per-review sentiment
// classification, statistical aggregation, and narrative insight
// generation. External-call failures degrade to fixed defaults; nothing
// inside an analysis run is fatal.
type Analyzer struct {
	classifier SentimentClassifier
	insights   InsightGenerator
	aggregator *Aggregator
	cfg        *config.Config
	logger     *utils.Logger
}

// NewAnalyzer creates an Analyzer wired to the given classifier and
// insight generator.
func NewAnalyzer(classifier SentimentClassifier, insights InsightGenerator,
	cfg *config.Config, logger *utils.Logger) *Analyzer {
	return &Analyzer{
		classifier: classifier,
		insights:   insights,
		aggregator: NewAggregator(logger),
		cfg:        cfg,
		logger:     logger,
	}
}

// Analyze annotates every record with a sentiment label and returns the
// complete analysis. Records are mutated in place so the annotated set can
// be persisted alongside the result. An empty record set returns an
// all-zero result and ErrNoReviews.
func (a *Analyzer) Analyze(ctx context.Context, records []*models.ReviewRecord) (*models.AnalysisResult, error) {
	if len(records) == 0 {
		return &models.AnalysisResult{}, ErrNoReviews
	}

	a.classifyAll(ctx, records)

	result := a.aggregator.Aggregate(records)

	ins, err := a.insights.Summarize(ctx, records, maxInsightRecords)
	if err != nil {
		a.logger.Warn("[analyzer] Insight generation failed: %v — using placeholder", err)
		ins = models.Insights{
			KeyInsights:     []string{"Unable to generate insights automatically"},
			Pros:            []string{},
			Cons:            []string{},
			Recommendations: []string{},
		}
	}
	result.KeyInsights = ins.KeyInsights
	result.Pros = ins.Pros
	result.Cons = ins.Cons
	result.Recommendations = ins.Recommendations

	return result, nil
}

// classifyAll fans sentiment classification out over the worker pool.
// Each record is owned by exactly one job, so in-place mutation is safe.
// A failed classification falls back to neutral with a 0.5 score.
func (a *Analyzer) classifyAll(ctx context.Context, records []*models.ReviewRecord) {
	pool := utils.NewWorkerPool(a.cfg.MaxConcurrency, a.cfg.RateLimitMs)

	for _, r := range records {
		rec := r
		pool.Submit(func() {
			s, err := a.classifier.Classify(ctx, rec.Text)
			if err != nil {
				a.logger.Warn("[analyzer] Sentiment classification failed: %v — defaulting to neutral", err)
				s = models.Sentiment{Label: models.SentimentNeutral, Score: 0.5}
			}
			rec.SentimentLabel = s.Label
			rec.SentimentScore = s.Score
		})
	}
	pool.Wait()

	a.logger.Info("[analyzer] Classified sentiment for %d reviews", len(records))
}
