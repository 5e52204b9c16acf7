package scraper

import (
	"context"
	"errors"
	"testing"

	"ecom-intel/config"
	"ecom-intel/extractor"
	"ecom-intel/models"
	"ecom-intel/scraper/firecrawl"
	"ecom-intel/utils"
)

const reviewPageContent = `5 stars
Great product, love it, would recommend to anyone looking
2 stars
Terrible quality, broke immediately, waste of money honestly`

type fakeSource struct {
	searchResults map[string][]firecrawl.SearchResult
	pages         map[string]string
	scrapeErr     error
}

func (f *fakeSource) Search(_ context.Context, query string, _ int) ([]firecrawl.SearchResult, error) {
	return f.searchResults[query], nil
}

func (f *fakeSource) Scrape(_ context.Context, url string) (*models.RawPage, error) {
	if f.scrapeErr != nil {
		return nil, f.scrapeErr
	}
	content, ok := f.pages[url]
	if !ok {
		return nil, errors.New("page not found")
	}
	return &models.RawPage{URL: url, Content: content}, nil
}

type fakeFetcher struct {
	pages   map[string]string
	fetched []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (*models.RawPage, error) {
	f.fetched = append(f.fetched, url)
	return &models.RawPage{URL: url, Content: f.pages[url]}, nil
}

func testCollector(source PageSource, fallback Fetcher) *Collector {
	logger := utils.NewLogger(false)
	return &Collector{
		cfg:       &config.Config{MaxConcurrency: 2, RateLimitMs: 0, MaxPages: 5},
		logger:    logger,
		source:    source,
		fallback:  fallback,
		segmenter: extractor.NewSegmenter(logger),
	}
}

func TestCollectFromDiscoveredPages(t *testing.T) {
	productURL := "https://shop.example.com/products/stand-mixer"
	reviewURL := "https://reviews.example.com/stand-mixer"

	source := &fakeSource{
		searchResults: map[string][]firecrawl.SearchResult{
			"products reviews": {{URL: reviewURL}},
		},
		pages: map[string]string{reviewURL: reviewPageContent},
	}

	c := testCollector(source, nil)
	records, err := c.Collect(context.Background(), productURL)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	for _, r := range records {
		if r.SourceURL != reviewURL {
			t.Errorf("SourceURL: got %q, want %q", r.SourceURL, reviewURL)
		}
	}
}

func TestCollectFallsBackToProductPage(t *testing.T) {
	productURL := "https://shop.example.com/products/stand-mixer"

	source := &fakeSource{
		searchResults: map[string][]firecrawl.SearchResult{}, // nothing discovered
		pages:         map[string]string{productURL: reviewPageContent},
	}

	c := testCollector(source, nil)
	records, err := c.Collect(context.Background(), productURL)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records from product page, got %d", len(records))
	}
}

func TestCollectBrowserFallbackOnScrapeFailure(t *testing.T) {
	productURL := "https://shop.example.com/products/stand-mixer"

	source := &fakeSource{scrapeErr: errors.New("scrape quota exceeded")}
	fallback := &fakeFetcher{pages: map[string]string{productURL: reviewPageContent}}

	c := testCollector(source, fallback)
	records, err := c.Collect(context.Background(), productURL)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(fallback.fetched) != 1 || fallback.fetched[0] != productURL {
		t.Fatalf("expected fallback fetch of product page, got %v", fallback.fetched)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records via fallback, got %d", len(records))
	}
}

func TestSearchQueriesDeduplicated(t *testing.T) {
	productURL := "https://shop.example.com/gadget-x/reviews"

	queries := searchQueries(productURL)
	if len(queries) != 3 {
		t.Fatalf("expected 3 queries, got %d: %v", len(queries), queries)
	}
	if queries[0] != "gadget x reviews" {
		t.Errorf("queries[0]: got %q", queries[0])
	}
}

func TestSearchQueriesEmptyForBareHost(t *testing.T) {
	if q := searchQueries("https://example.com/"); q != nil {
		t.Errorf("expected no queries for URL without a product path, got %v", q)
	}
}
