package adapters

import (
	"context"
	"fmt"
	"strings"

	"storefront-extractor/internal/metrics"
	"storefront-extractor/internal/types"
	"storefront-extractor/utils"

	"github.com/PuerkitoBio/goquery"
)

// BaseAdapter provides the page fetching and reporting shared by every source.
// Store sources embed it and add their own endpoint or selector logic. One
// BaseAdapter is meant to back every source of an extractor so they share a
// connection pool and the RequestDelay limiter.
type BaseAdapter struct {
	config        *types.Config
	logger        types.Logger
	httpClient    *utils.HTTPClient
	browserClient *utils.BrowserClient
}

// NewBaseAdapter creates a new base adapter with initialized HTTP and browser clients
func NewBaseAdapter(config *types.Config, logger types.Logger) *BaseAdapter {
	b := &BaseAdapter{
		config:     config,
		logger:     logger,
		httpClient: utils.NewHTTPClient(config, logger),
	}
	if config.UseHeadlessBrowser {
		b.browserClient = utils.NewBrowserClient(config, logger)
	}
	return b
}

// GetPageContent retrieves the HTML of a page using either the HTTP client or
// the headless browser, depending on UseHeadlessBrowser.
func (b *BaseAdapter) GetPageContent(ctx context.Context, url string) (string, error) {
	if b.browserClient != nil {
		return b.browserClient.GetPageContent(ctx, url)
	}

	body, err := b.httpClient.Get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// ParseHTML parses HTML content into a goquery document
func (b *BaseAdapter) ParseHTML(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// FetchDocument issues one GET and builds a queryable document over the body
func (b *BaseAdapter) FetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	html, err := b.GetPageContent(ctx, url)
	if err != nil {
		return nil, err
	}

	doc, err := b.ParseHTML(html)
	if err != nil {
		return nil, &utils.ParseError{URL: url, Err: fmt.Errorf("failed to parse HTML: %w", err)}
	}
	return doc, nil
}

// GetJSON fetches a structured endpoint and decodes it into v
func (b *BaseAdapter) GetJSON(ctx context.Context, url string, v interface{}) error {
	return b.httpClient.GetJSON(ctx, url, v)
}

// ExtractText returns the plain text of the first element matching selector,
// or "" when nothing matches.
func (b *BaseAdapter) ExtractText(doc *goquery.Document, selector string) string {
	element := doc.Find(selector).First()
	if element.Length() == 0 {
		return ""
	}
	return utils.ToPlainText(element.Text())
}

// ExtractAttribute returns an attribute of the first element matching selector,
// or "" when the element or attribute is absent.
func (b *BaseAdapter) ExtractAttribute(doc *goquery.Document, selector string, attribute string) string {
	value, _ := doc.Find(selector).First().Attr(attribute)
	return strings.TrimSpace(value)
}

// report is the catch boundary for a source: it logs and counts the outcome
// and never lets the error escape.
func (b *BaseAdapter) report(source, url string, err error) {
	outcome := utils.Classify(err)
	metrics.ObserveSource(source, outcome)

	switch outcome {
	case utils.OutcomeSuccess:
		b.logger.Debugf("%s resolved %s", source, url)
	case utils.OutcomeEmpty, utils.OutcomeCanceled:
		b.logger.Debugf("%s returned no data for %s: %v", source, url, err)
	default:
		b.logger.Warnf("%s failed for %s (%s): %v", source, url, outcome, err)
	}
}

// Config returns the config field of the BaseAdapter
func (b *BaseAdapter) Config() *types.Config {
	return b.config
}

// Close cleans up resources
func (b *BaseAdapter) Close() {
	if b.httpClient != nil {
		b.httpClient.Close()
	}
}
