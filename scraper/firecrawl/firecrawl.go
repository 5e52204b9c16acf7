package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"ecom-intel/config"
	"ecom-intel/models"
	"ecom-intel/utils"
)

const defaultBaseURL = "https://api.firecrawl.dev/v1"

// scrapeWaitMs gives dynamic review widgets time to render before the
// page snapshot is taken.
const scrapeWaitMs = 2000

// Client talks to the Firecrawl search and scrape endpoints.
type Client struct {
	apiKey     string
	baseURL    string // overridable in tests
	httpClient *http.Client
	retry      *utils.RetryConfig
	logger     *utils.Logger
}

// SearchResult is one hit from the Firecrawl search endpoint.
type SearchResult struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// New creates a Firecrawl client from the application config.
func New(cfg *config.Config, logger *utils.Logger) *Client {
	return &Client{
		apiKey:     cfg.FirecrawlAPIKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 90 * time.Second},
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		logger: logger,
	}
}

type scrapeOptions struct {
	Formats         []string `json:"formats"`
	OnlyMainContent bool     `json:"onlyMainContent"`
}

// Search runs one search query and returns the result URLs.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	payload := struct {
		Query         string        `json:"query"`
		Limit         int           `json:"limit"`
		ScrapeOptions scrapeOptions `json:"scrapeOptions"`
	}{
		Query: query,
		Limit: limit,
		ScrapeOptions: scrapeOptions{
			Formats:         []string{"markdown"},
			OnlyMainContent: true,
		},
	}

	var parsed struct {
		Data []SearchResult `json:"data"`
	}
	if err := c.postJSON(ctx, "/search", "firecrawl-search", payload, &parsed); err != nil {
		return nil, err
	}

	c.logger.Debug("[firecrawl] Search %q returned %d results", query, len(parsed.Data))
	return parsed.Data, nil
}

// Scrape fetches one URL's main content as markdown.
func (c *Client) Scrape(ctx context.Context, pageURL string) (*models.RawPage, error) {
	payload := struct {
		URL             string   `json:"url"`
		Formats         []string `json:"formats"`
		OnlyMainContent bool     `json:"onlyMainContent"`
		WaitFor         int      `json:"waitFor"`
		IncludeTags     []string `json:"includeTags"`
		ExcludeTags     []string `json:"excludeTags"`
	}{
		URL:             pageURL,
		Formats:         []string{"markdown"},
		OnlyMainContent: true,
		WaitFor:         scrapeWaitMs,
		IncludeTags:     []string{"div", "span", "p", "article", "section"},
		ExcludeTags:     []string{"script", "style", "nav", "footer", "header"},
	}

	var parsed struct {
		Data struct {
			Markdown string `json:"markdown"`
		} `json:"data"`
	}
	if err := c.postJSON(ctx, "/scrape", "firecrawl-scrape", payload, &parsed); err != nil {
		return nil, err
	}

	return &models.RawPage{
		URL:       pageURL,
		Content:   parsed.Data.Markdown,
		FetchedAt: time.Now(),
	}, nil
}

// postJSON sends one JSON POST with retry and decodes the response into out.
func (c *Client) postJSON(ctx context.Context, path, operation string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("firecrawl: marshal %s payload: %w", path, err)
	}

	return c.retry.Do(ctx, operation, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("firecrawl: create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("firecrawl: send request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("firecrawl: API returned status %d", resp.StatusCode)
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("firecrawl: parse response: %w", err)
		}
		return nil
	})
}
