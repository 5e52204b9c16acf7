package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"ecom-intel/config"
	"ecom-intel/llm"
	"ecom-intel/models"
	"ecom-intel/scraper"
	"ecom-intel/services"
	"ecom-intel/storage"
	"ecom-intel/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLogger(cfg.Debug)

	logger.Info("=== E-commerce Review Intelligence starting ===")
	logger.Info("Config — pages: %d | concurrency: %d | rate: %dms | cache: %v",
		cfg.MaxPages, cfg.MaxConcurrency, cfg.RateLimitMs, cfg.UseCache)

	if !scraper.ValidateURL(cfg.ProductURL) {
		logger.Error("PRODUCT_URL is missing or not a valid http(s) URL: %q", cfg.ProductURL)
		os.Exit(1)
	}
	title := scraper.ProductName(cfg.ProductURL)
	logger.Info("Analyzing product: %s", title)

	store, err := storage.NewPostgresStore(cfg.DSN())
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL: %v", err)
		logger.Error("Make sure Docker is running: docker compose up -d")
		os.Exit(1)
	}
	defer store.Close()

	client, err := llm.New(cfg, logger)
	if err != nil {
		logger.Error("LLM client setup failed: %v", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if cfg.UseCache {
		if result := cachedAnalysis(store, cfg.ProductURL, logger); result != nil {
			logger.Info("Using cached analysis for %s", cfg.ProductURL)
			finish(ctx, cfg, logger, store, client, title, result)
			return
		}
	}

	collector := scraper.New(cfg, logger)
	rawRecords, err := collector.Collect(ctx, cfg.ProductURL)
	if err != nil {
		logger.Error("Review collection failed: %v", err)
	}

	if len(rawRecords) == 0 {
		logger.Error("No reviews were extracted. Exiting.")
		os.Exit(1)
	}

	logger.Info("Extracted %d raw reviews — writing to CSV...", len(rawRecords))

	csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath)
	if err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
	} else {
		if err := csvWriter.WriteRaw(rawRecords); err != nil {
			logger.Error("CSV write failed: %v", err)
		} else {
			logger.Info("Raw reviews saved to %s", cfg.CSVOutputPath)
		}
		csvWriter.Close()
	}

	dedup := services.NewDeduplicator(logger)
	records := dedup.Dedup(rawRecords)

	if len(records) == 0 {
		logger.Error("All reviews were dropped during deduplication. Exiting.")
		os.Exit(1)
	}

	analyzer := services.NewAnalyzer(client, client, cfg, logger)
	result, err := analyzer.Analyze(ctx, records)
	if err != nil {
		if errors.Is(err, services.ErrNoReviews) {
			logger.Error("Nothing to analyze. Exiting.")
			os.Exit(1)
		}
		logger.Error("Analysis failed: %v", err)
		os.Exit(1)
	}

	productID, err := store.GetOrCreateProduct(cfg.ProductURL, title)
	if err != nil {
		logger.Error("Failed to register product: %v", err)
		os.Exit(1)
	}

	added, err := store.AddReviews(productID, records)
	if err != nil {
		logger.Error("Failed to store reviews: %v", err)
	} else {
		logger.Info("Stored %d new review(s) in PostgreSQL", added)
	}

	if err := store.SaveAnalysis(productID, result); err != nil {
		logger.Error("Failed to store analysis: %v", err)
	}

	finish(ctx, cfg, logger, store, client, title, result)
}

// finish renders the report, saves the markdown summary, lists recent
// products, and optionally compares them. Shared by the fresh and cached
// paths.
func finish(ctx context.Context, cfg *config.Config, logger *utils.Logger,
	store storage.ReviewStore, client *llm.Client, title string,
	result *models.AnalysisResult) {

	analyzer := services.NewAnalyzer(client, client, cfg, logger)
	analyzer.Print(title, result)

	summaryPath := filepath.Join(filepath.Dir(cfg.CSVOutputPath), "summary.md")
	if err := os.WriteFile(summaryPath, []byte(analyzer.Summary(title, result)), 0644); err != nil {
		logger.Warn("Could not save markdown summary: %v", err)
	} else {
		logger.Info("Markdown summary saved to %s", summaryPath)
	}

	recent, err := store.RecentProducts(10)
	if err != nil {
		logger.Warn("Could not list recent products: %v", err)
		return
	}
	printRecent(recent)

	if cfg.CompareRecent {
		compareRecent(ctx, logger, store, client, recent)
	}

	fmt.Printf("  Done. Raw CSV → %s | Analysis → PostgreSQL (analysis table)\n\n",
		cfg.CSVOutputPath)
}

// cachedAnalysis returns a previously stored analysis for the product URL,
// or nil when none exists.
func cachedAnalysis(store storage.ReviewStore, productURL string, logger *utils.Logger) *models.AnalysisResult {
	products, err := store.RecentProducts(50)
	if err != nil {
		logger.Warn("Cache lookup failed: %v", err)
		return nil
	}
	for _, p := range products {
		if p.URL != productURL {
			continue
		}
		result, err := store.Analysis(p.ID)
		if err != nil {
			logger.Warn("Cache lookup failed: %v", err)
			return nil
		}
		if result != nil && result.TotalReviews > 0 {
			return result
		}
	}
	return nil
}

func printRecent(products []*models.ProductOverview) {
	if len(products) == 0 {
		return
	}
	fmt.Printf("\033[1;33m  Recently Analyzed Products\033[0m\n")
	fmt.Printf("  %-40s %8s %8s\n", "PRODUCT", "REVIEWS", "RATING")
	for _, p := range products {
		name := p.Title
		if name == "" {
			name = p.URL
		}
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		fmt.Printf("  %-40s %8d %8.2f\n", name, p.TotalReviews, p.AverageRating)
	}
	fmt.Println()
}

// compareRecent runs an LLM comparison across the recently analyzed
// products, including the current one.
func compareRecent(ctx context.Context, logger *utils.Logger,
	store storage.ReviewStore, client *llm.Client,
	recent []*models.ProductOverview) {

	analyses := make(map[string]*models.AnalysisResult)
	for _, p := range recent {
		result, err := store.Analysis(p.ID)
		if err != nil || result == nil {
			continue
		}
		name := p.Title
		if name == "" {
			name = p.URL
		}
		analyses[name] = result
	}

	if len(analyses) < 2 {
		logger.Info("Not enough analyzed products to compare (have %d)", len(analyses))
		return
	}

	comparison, err := client.Compare(ctx, analyses)
	if err != nil {
		logger.Warn("Product comparison failed: %v", err)
		return
	}

	fmt.Printf("\033[1;33m  🏆 Product Comparison\033[0m\n")
	fmt.Printf("  Best overall    : %s\n", comparison.BestOverall)
	fmt.Printf("  Best value      : %s\n", comparison.BestValue)
	fmt.Printf("  Highest quality : %s\n", comparison.HighestQuality)
	for _, point := range comparison.ComparisonPoints {
		fmt.Printf("  • %s\n", point)
	}
	if comparison.Recommendation != "" {
		fmt.Printf("  → %s\n", comparison.Recommendation)
	}
	fmt.Println()
}
