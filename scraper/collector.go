package scraper

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"ecom-intel/config"
	"ecom-intel/extractor"
	"ecom-intel/models"
	"ecom-intel/scraper/browser"
	"ecom-intel/scraper/firecrawl"
	"ecom-intel/utils"
)

// PageSource discovers and fetches review pages through an external
// scrape-and-search provider.
type PageSource interface {
	Search(ctx context.Context, query string, limit int) ([]firecrawl.SearchResult, error)
	Scrape(ctx context.Context, url string) (*models.RawPage, error)
}

// Fetcher grabs a single page's content directly, without the provider.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*models.RawPage, error)
}

// Collector discovers review pages for a product, fetches them, and runs
// the extractor over each page. Pages are independent, so fetching and
// extraction fan out over the worker pool; the records come back as one
// flat, not-yet-deduplicated list.
type Collector struct {
	cfg       *config.Config
	logger    *utils.Logger
	source    PageSource // nil when no Firecrawl key is configured
	fallback  Fetcher
	segmenter *extractor.Segmenter
}

// New creates a Collector. Without a FIRECRAWL_API_KEY the collector skips
// discovery and fetches the product page itself with the headless browser.
func New(cfg *config.Config, logger *utils.Logger) *Collector {
	c := &Collector{
		cfg:       cfg,
		logger:    logger,
		fallback:  browser.New(cfg, logger),
		segmenter: extractor.NewSegmenter(logger),
	}
	if cfg.FirecrawlAPIKey != "" {
		c.source = firecrawl.New(cfg, logger)
	} else {
		logger.Warn("[collector] FIRECRAWL_API_KEY not set — falling back to direct browser fetch")
	}
	return c
}

// Collect returns every review record extracted from the product's review
// pages. Individual page failures are logged and skipped; only a fully
// empty run is reported through the record count.
func (c *Collector) Collect(ctx context.Context, productURL string) ([]*models.ReviewRecord, error) {
	urls := c.discoverReviewURLs(ctx, productURL)
	if len(urls) == 0 {
		// No review pages found — try the product page itself.
		urls = []string{productURL}
	}

	c.logger.Info("[collector] Fetching %d review page(s)", len(urls))

	var mu sync.Mutex
	var records []*models.ReviewRecord

	pool := utils.NewWorkerPool(c.cfg.MaxConcurrency, c.cfg.RateLimitMs)
	for _, u := range urls {
		pageURL := u
		pool.Submit(func() {
			page, err := c.fetchPage(ctx, pageURL)
			if err != nil {
				c.logger.Warn("[collector] Skipping %s: %v", pageURL, err)
				return
			}

			pageRecords := c.segmenter.Extract(page)
			c.logger.Info("[collector] %s: extracted %d review(s)", pageURL, len(pageRecords))

			mu.Lock()
			records = append(records, pageRecords...)
			mu.Unlock()
		})
	}
	pool.Wait()

	c.logger.Info("[collector] Collected %d raw review(s) from %d page(s)", len(records), len(urls))
	return records, nil
}

// discoverReviewURLs runs the search queries and returns unique review
// page URLs, capped at MaxPages. Without a page source there is nothing
// to discover.
func (c *Collector) discoverReviewURLs(ctx context.Context, productURL string) []string {
	if c.source == nil {
		return nil
	}

	seen := utils.NewURLSet()
	var urls []string

	for _, query := range searchQueries(productURL) {
		results, err := c.source.Search(ctx, query, c.cfg.MaxPages)
		if err != nil {
			c.logger.Warn("[collector] Search %q failed: %v", query, err)
			continue
		}
		for _, r := range results {
			if r.URL == "" || !seen.Add(r.URL) {
				continue
			}
			urls = append(urls, r.URL)
			if len(urls) >= c.cfg.MaxPages {
				return urls
			}
		}
	}

	c.logger.Debug("[collector] Discovered %d unique review URL(s)", seen.Size())
	return urls
}

// fetchPage prefers the page source and falls back to the headless
// browser when the source is missing or the scrape fails.
func (c *Collector) fetchPage(ctx context.Context, pageURL string) (*models.RawPage, error) {
	if c.source != nil {
		page, err := c.source.Scrape(ctx, pageURL)
		if err == nil {
			return page, nil
		}
		c.logger.Warn("[collector] Scrape failed for %s: %v — trying browser fallback", pageURL, err)
	}

	if c.fallback == nil {
		return nil, fmt.Errorf("collector: no fetcher available for %s", pageURL)
	}
	return c.fallback.Fetch(ctx, pageURL)
}

// searchQueries builds the review-discovery queries for a product URL.
func searchQueries(productURL string) []string {
	info := ParseProductInfo(productURL)
	if info.Name == "" {
		return nil
	}

	return []string{
		info.Name + " reviews",
		strings.TrimSpace(info.Brand+" "+info.Name) + " customer reviews",
		info.Name + " user feedback rating",
	}
}
