package browser

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"

	"ecom-intel/config"
	"ecom-intel/models"
	"ecom-intel/utils"
)

// Fetcher grabs a page's visible text with a headless browser. It is the
// fallback path when the Firecrawl API is unavailable or fails on a URL.
type Fetcher struct {
	cfg    *config.Config
	logger *utils.Logger
	retry  *utils.RetryConfig
}

// New creates a ready-to-use browser Fetcher.
func New(cfg *config.Config, logger *utils.Logger) *Fetcher {
	return &Fetcher{
		cfg:    cfg,
		logger: logger,
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// Fetch navigates to pageURL and returns its main text content as a
// RawPage. Scripts, styles and navigation chrome are not included in
// innerText, so the result feeds the extractor the same way scraped
// markdown does.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*models.RawPage, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if bin := f.findChromeBinary(); bin != "" {
		f.logger.Debug("[browser] Using browser binary: %s", bin)
		opts = append(opts, chromedp.ExecPath(bin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	var content string
	err := f.retry.Do(ctx, "browser-fetch", func() error {
		tabCtx, cancelTab := chromedp.NewContext(browserCtx)
		defer cancelTab()

		tabCtx, cancelTimeout := context.WithTimeout(tabCtx, 60*time.Second)
		defer cancelTimeout()

		return chromedp.Run(tabCtx,
			chromedp.Navigate(pageURL),
			chromedp.Sleep(4*time.Second),
			chromedp.Evaluate(`
				(function() {
					var main = document.querySelector('main') ||
					           document.querySelector('article') ||
					           document.body;
					return main ? main.innerText : '';
				})()
			`, &content),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("browser: fetch %s: %w", pageURL, err)
	}

	return &models.RawPage{
		URL:       pageURL,
		Content:   content,
		FetchedAt: time.Now(),
	}, nil
}

// findChromeBinary locates a Chrome/Chromium binary, preferring the
// configured path.
func (f *Fetcher) findChromeBinary() string {
	if f.cfg.ChromeBin != "" {
		return f.cfg.ChromeBin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
