package extractor

import (
	"context"
	"strings"
	"time"

	"storefront-extractor/adapters"
	"storefront-extractor/internal/metrics"
	"storefront-extractor/internal/types"
)

const (
	noSource         = "none"
	collectionSource = "structured_collection"
)

// Extractor resolves storefront URLs into product, collection or branding details.
// It never returns an error: every failure ends in the canonical empty value.
type Extractor struct {
	config     *types.Config
	logger     types.Logger
	structured *adapters.ShopifyAdapter
	scraper    *adapters.HTMLScraper
	base       *adapters.BaseAdapter
	sources    []types.ProductSource
}

// NewExtractor wires the product sources in priority order:
// structured endpoint, platform API (when configured), DOM scrape,
// variant data (when enabled). All sources share one set of clients.
func NewExtractor(config *types.Config, logger types.Logger) *Extractor {
	base := adapters.NewBaseAdapter(config, logger)
	structured := adapters.NewShopifyAdapter(base)
	scraper := adapters.NewHTMLScraper(base)

	e := &Extractor{
		config:     config,
		logger:     logger,
		structured: structured,
		scraper:    scraper,
		base:       base,
	}

	e.sources = append(e.sources, structured)
	if config.PlatformAPIURL != "" {
		e.sources = append(e.sources, adapters.NewPlatformAdapter(base))
	}
	e.sources = append(e.sources, scraper)
	if config.EnableVariantFallback {
		e.sources = append(e.sources, adapters.NewVariantAdapter(base))
	}

	return e
}

// Sources returns the source names in priority order
func (e *Extractor) Sources() []string {
	names := make([]string, 0, len(e.sources))
	for _, s := range e.sources {
		names = append(names, s.Name())
	}
	return names
}

// Lookup classifies the URL and returns CollectionDetails for collection pages
// and ProductDetails for everything else.
func (e *Extractor) Lookup(ctx context.Context, pageURL string) interface{} {
	classification := adapters.Classify(pageURL)
	e.logger.Debugf("Classified %s as %s (slug %q)", pageURL, classification.Kind, classification.Slug)

	if classification.Kind == types.KindCollection {
		return e.GetCollectionDetails(ctx, pageURL)
	}
	return e.GetProductDetails(ctx, pageURL)
}

// GetProductDetails walks the product sources and returns the first non-empty result
func (e *Extractor) GetProductDetails(ctx context.Context, productURL string) types.ProductDetails {
	startTime := time.Now()

	for _, source := range e.sources {
		details := source.FetchProduct(ctx, productURL)
		if ctx.Err() != nil {
			e.logger.Debugf("Product lookup for %s canceled: %v", productURL, ctx.Err())
			metrics.ObserveResolution(types.KindProduct.String(), noSource)
			return types.EmptyProductDetails()
		}
		if !details.IsEmpty() {
			e.logger.Infof("Resolved product %s via %s in %v", productURL, source.Name(), time.Since(startTime))
			metrics.ObserveResolution(types.KindProduct.String(), source.Name())
			return normalizeProduct(details)
		}
		e.logger.Debugf("Source %s had nothing for %s, falling back", source.Name(), productURL)
	}

	e.logger.Infof("No source resolved product %s", productURL)
	metrics.ObserveResolution(types.KindProduct.String(), noSource)
	return types.EmptyProductDetails()
}

// GetCollectionDetails resolves a collection; there is no fallback source for collections
func (e *Extractor) GetCollectionDetails(ctx context.Context, collectionURL string) types.CollectionDetails {
	details := e.structured.ResolveCollection(ctx, collectionURL)
	if ctx.Err() != nil {
		metrics.ObserveResolution(types.KindCollection.String(), noSource)
		return types.EmptyCollectionDetails()
	}

	source := collectionSource
	if details.Title == "" && details.CollectionImage == "" && len(details.Products) == 0 {
		source = noSource
	}
	metrics.ObserveResolution(types.KindCollection.String(), source)
	return normalizeCollection(details)
}

// GetBranding scrapes logo, font and colors from any storefront page
func (e *Extractor) GetBranding(ctx context.Context, pageURL string) types.StoreDetails {
	details := e.scraper.ScrapeBranding(ctx, pageURL)
	if ctx.Err() != nil {
		return types.EmptyStoreDetails()
	}
	if details.Colors == nil {
		details.Colors = []string{}
	}
	return details
}

// GetStoreDetails is an alias of GetBranding
func (e *Extractor) GetStoreDetails(ctx context.Context, pageURL string) types.StoreDetails {
	return e.GetBranding(ctx, pageURL)
}

// normalizeProduct guarantees non-nil slices and the recommendation cap
func normalizeProduct(p types.ProductDetails) types.ProductDetails {
	p.Title = strings.TrimSpace(p.Title)
	if p.ProductRecommendations == nil {
		p.ProductRecommendations = []types.ProductSummary{}
	}
	if len(p.ProductRecommendations) > types.MaxRelated {
		p.ProductRecommendations = p.ProductRecommendations[:types.MaxRelated]
	}
	return p
}

func normalizeCollection(c types.CollectionDetails) types.CollectionDetails {
	c.Title = strings.TrimSpace(c.Title)
	if c.Products == nil {
		c.Products = []types.ProductInCollection{}
	}
	if len(c.Products) > types.MaxRelated {
		c.Products = c.Products[:types.MaxRelated]
	}
	return c
}

// Close cleans up resources
func (e *Extractor) Close() {
	e.base.Close()
}
