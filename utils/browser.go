package utils

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/chromedp/chromedp"
	"storefront-extractor/internal/types"
)

// BrowserClient renders pages in a headless browser for JavaScript-heavy storefronts
type BrowserClient struct {
	config *types.Config
	logger types.Logger
}

// NewBrowserClient creates a new browser client
func NewBrowserClient(config *types.Config, logger types.Logger) *BrowserClient {
	// Suppress chromedp debug logging
	log.SetOutput(io.Discard)

	return &BrowserClient{
		config: config,
		logger: logger,
	}
}

// GetPageContent retrieves the rendered HTML of a page.
// Failures are a *FetchError so callers treat them like HTTP failures.
func (b *BrowserClient) GetPageContent(ctx context.Context, url string) (string, error) {
	browserCtx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, b.config.Timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(500*time.Millisecond),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}

	b.logger.Debugf("Successfully rendered page content from %s (%d bytes)", url, len(html))
	return html, nil
}
