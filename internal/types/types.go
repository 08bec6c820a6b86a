package types

import (
	"context"
	"time"
)

// MaxRelated caps recommendation and collection product lists
const MaxRelated = 3

// ProductSummary is a product without nested recommendations
type ProductSummary struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// ProductDetails represents a resolved product page
type ProductDetails struct {
	Title                  string           `json:"title"`
	Description            string           `json:"description"`
	Image                  string           `json:"image"`
	ProductRecommendations []ProductSummary `json:"productRecommendations"`
}

// EmptyProductDetails returns the canonical empty product
func EmptyProductDetails() ProductDetails {
	return ProductDetails{ProductRecommendations: []ProductSummary{}}
}

// IsEmpty reports whether every scalar field is blank.
// Recommendations do not count.
func (p ProductDetails) IsEmpty() bool {
	return p.Title == "" && p.Description == "" && p.Image == ""
}

// ProductInCollection is a collection listing entry
type ProductInCollection struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	URL         string `json:"url"`
}

// CollectionDetails represents a resolved collection page
type CollectionDetails struct {
	Title           string                `json:"title"`
	CollectionImage string                `json:"collectionImage"`
	Products        []ProductInCollection `json:"products"`
}

// EmptyCollectionDetails returns the canonical empty collection
func EmptyCollectionDetails() CollectionDetails {
	return CollectionDetails{Products: []ProductInCollection{}}
}

// StoreDetails holds storefront branding signals
type StoreDetails struct {
	Font   string   `json:"font"`
	Colors []string `json:"colors"`
	Logo   string   `json:"logo"`
}

// EmptyStoreDetails returns the canonical empty branding
func EmptyStoreDetails() StoreDetails {
	return StoreDetails{Colors: []string{}}
}

// PageKind is the URL shape of a storefront page
type PageKind int

const (
	KindStoreRoot PageKind = iota
	KindProduct
	KindCollection
)

func (k PageKind) String() string {
	switch k {
	case KindProduct:
		return "product"
	case KindCollection:
		return "collection"
	default:
		return "store_root"
	}
}

// Classification is the result of classifying a storefront URL
type Classification struct {
	Kind PageKind
	Slug string
}

// ProductSource produces ProductDetails-shaped data, possibly partial.
// Implementations never return an error; failures yield the canonical empty value.
type ProductSource interface {
	// Name identifies the source in logs and metrics
	Name() string

	// FetchProduct resolves product details for the given URL
	FetchProduct(ctx context.Context, productURL string) ProductDetails
}

// Config holds the configuration for the extractor
type Config struct {
	Timeout            time.Duration
	MaxRetries         int
	RequestDelay       time.Duration
	UseHeadlessBrowser bool
	UserAgent          string

	// PlatformAPIURL enables the platform API source when non-empty
	PlatformAPIURL string

	// EnableVariantFallback consults the {url}.js endpoint after DOM scraping
	EnableVariantFallback bool

	BreakerTimeout     time.Duration
	BreakerMinRequests uint32
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Timeout:            10 * time.Second,
		MaxRetries:         0,
		RequestDelay:       0,
		UseHeadlessBrowser: false,
		UserAgent:          "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		BreakerTimeout:     30 * time.Second,
		BreakerMinRequests: 5,
	}
}

// Logger defines the logging interface
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}
