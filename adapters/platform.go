package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"storefront-extractor/internal/metrics"
	"storefront-extractor/internal/types"
	"storefront-extractor/utils"

	"github.com/sony/gobreaker/v2"
)

const sourcePlatformAPI = "platform_api"

type platformPayload struct {
	Product *struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         *struct {
			URL     string `json:"url"`
			AltText string `json:"alt_text"`
		} `json:"url"`
	} `json:"product"`
}

// PlatformAdapter queries an external platform API for product details.
// Calls go through a circuit breaker so a failing API is skipped quickly.
type PlatformAdapter struct {
	*BaseAdapter
	baseURL string
	breaker *gobreaker.CircuitBreaker[[]byte]
}

// NewPlatformAdapter creates a platform API source for the base's PlatformAPIURL
func NewPlatformAdapter(base *BaseAdapter) *PlatformAdapter {
	config, logger := base.config, base.logger
	settings := gobreaker.Settings{
		Name:        sourcePlatformAPI,
		MaxRequests: 1,
		Timeout:     config.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < config.BreakerMinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warnf("circuit breaker %s changed from %s to %s", name, from, to)
			metrics.BreakerState.WithLabelValues(name).Set(breakerStateValue(to))
		},
	}

	return &PlatformAdapter{
		BaseAdapter: base,
		baseURL:     strings.TrimSuffix(config.PlatformAPIURL, "/"),
		breaker:     gobreaker.NewCircuitBreaker[[]byte](settings),
	}
}

func breakerStateValue(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// Name returns the source name
func (p *PlatformAdapter) Name() string {
	return sourcePlatformAPI
}

// State returns the current circuit breaker state
func (p *PlatformAdapter) State() gobreaker.State {
	return p.breaker.State()
}

// FetchProduct implements types.ProductSource
func (p *PlatformAdapter) FetchProduct(ctx context.Context, productURL string) types.ProductDetails {
	details, err := p.fetchProduct(ctx, productURL)
	p.report(sourcePlatformAPI, productURL, err)
	if err != nil {
		return types.EmptyProductDetails()
	}
	return details
}

func (p *PlatformAdapter) fetchProduct(ctx context.Context, productURL string) (types.ProductDetails, error) {
	if p.baseURL == "" {
		return types.ProductDetails{}, fmt.Errorf("platform API not configured: %w", utils.ErrEmptyResult)
	}

	query := url.Values{}
	query.Set("url", productURL)
	query.Set("handle", Classify(productURL).Slug)
	endpoint := p.baseURL + "/product?" + query.Encode()

	body, err := p.breaker.Execute(func() ([]byte, error) {
		return p.httpClient.Get(ctx, endpoint)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return types.ProductDetails{}, &utils.FetchError{URL: endpoint, Err: err}
		}
		return types.ProductDetails{}, err
	}

	var payload platformPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return types.ProductDetails{}, &utils.ParseError{URL: endpoint, Err: err}
	}
	if payload.Product == nil {
		return types.ProductDetails{}, &utils.ParseError{URL: endpoint, Field: "product", Err: errors.New("missing")}
	}

	details := types.EmptyProductDetails()
	details.Title = strings.TrimSpace(payload.Product.Title)
	details.Description = utils.ToPlainText(payload.Product.Description)
	if payload.Product.URL != nil {
		details.Image = utils.StripProtocolRelative(payload.Product.URL.URL)
	}
	if details.IsEmpty() {
		return types.ProductDetails{}, fmt.Errorf("platform API returned a blank product: %w", utils.ErrEmptyResult)
	}
	return details, nil
}
