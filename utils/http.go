package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"storefront-extractor/internal/types"
)

// maxBodySize bounds how much of a storefront response is read
const maxBodySize = 10 << 20

// HTTPClient provides HTTP functionality with optional rate limiting and retries
type HTTPClient struct {
	client  *http.Client
	config  *types.Config
	logger  types.Logger
	limiter *time.Ticker
}

// NewHTTPClient creates a new HTTP client with the given configuration
func NewHTTPClient(config *types.Config, logger types.Logger) *HTTPClient {
	client := &http.Client{
		Timeout: config.Timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	h := &HTTPClient{
		client: client,
		config: config,
		logger: logger,
	}
	if config.RequestDelay > 0 {
		h.limiter = time.NewTicker(config.RequestDelay)
	}
	return h
}

// Get performs a GET request and returns the body of a 200 response.
// Every failure is a *FetchError.
func (h *HTTPClient) Get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= h.config.MaxRetries; attempt++ {
		if h.limiter != nil {
			select {
			case <-h.limiter.C:
			case <-ctx.Done():
				return nil, &FetchError{URL: url, Err: ctx.Err()}
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, &FetchError{URL: url, Err: fmt.Errorf("failed to create request: %w", err)}
		}

		req.Header.Set("User-Agent", h.config.UserAgent)
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/json;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", "en-US,en;q=0.5")

		h.logger.Debugf("Making request to %s (attempt %d/%d)", url, attempt+1, h.config.MaxRetries+1)

		body, err := h.do(req)
		if err == nil {
			h.logger.Debugf("Successfully retrieved %d bytes from %s", len(body), url)
			return body, nil
		}

		lastErr = err
		if ctx.Err() != nil {
			return nil, &FetchError{URL: url, Err: ctx.Err()}
		}
		h.logger.Debugf("Request to %s failed (attempt %d): %v", url, attempt+1, err)
	}

	return nil, lastErr
}

func (h *HTTPClient) do(req *http.Request) ([]byte, error) {
	url := req.URL.String()

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	return body, nil
}

// GetJSON fetches url and decodes the body into v.
// Decoding failures are a *ParseError.
func (h *HTTPClient) GetJSON(ctx context.Context, url string, v interface{}) error {
	body, err := h.Get(ctx, url)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, v); err != nil {
		return &ParseError{URL: url, Err: err}
	}
	return nil
}

// Close cleans up resources
func (h *HTTPClient) Close() {
	if h.limiter != nil {
		h.limiter.Stop()
	}
}
