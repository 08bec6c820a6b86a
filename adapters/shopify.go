package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"storefront-extractor/internal/types"
	"storefront-extractor/utils"
)

const (
	sourceStructuredProduct    = "structured_product"
	sourceStructuredCollection = "structured_collection"
	sourceRecommendations      = "recommendations"
)

type productPayload struct {
	Product *struct {
		ID       json.Number `json:"id"`
		Title    string      `json:"title"`
		BodyHTML string      `json:"body_html"`
		Image    *struct {
			Src string `json:"src"`
		} `json:"image"`
	} `json:"product"`
}

type recommendationsPayload struct {
	Products []struct {
		Title         string `json:"title"`
		Description   string `json:"description"`
		FeaturedImage string `json:"featured_image"`
	} `json:"products"`
}

type suggestPayload struct {
	Resources struct {
		Results struct {
			Collections []struct {
				Title         string `json:"title"`
				FeaturedImage *struct {
					URL string `json:"url"`
				} `json:"featured_image"`
			} `json:"collections"`
			Products []struct {
				Title string `json:"title"`
				Body  string `json:"body"`
				Image string `json:"image"`
				URL   string `json:"url"`
			} `json:"products"`
		} `json:"results"`
	} `json:"resources"`
}

// ShopifyAdapter resolves products and collections from the storefront's JSON endpoints
type ShopifyAdapter struct {
	*BaseAdapter
}

// NewShopifyAdapter creates a new structured endpoint adapter over base
func NewShopifyAdapter(base *BaseAdapter) *ShopifyAdapter {
	return &ShopifyAdapter{
		BaseAdapter: base,
	}
}

// Name returns the source name
func (s *ShopifyAdapter) Name() string {
	return sourceStructuredProduct
}

// FetchProduct implements types.ProductSource
func (s *ShopifyAdapter) FetchProduct(ctx context.Context, productURL string) types.ProductDetails {
	return s.ResolveProduct(ctx, productURL)
}

// ResolveProduct reads {url}.json and the product's recommendations.
// Any failure yields the canonical empty product.
func (s *ShopifyAdapter) ResolveProduct(ctx context.Context, productURL string) types.ProductDetails {
	details, err := s.resolveProduct(ctx, productURL)
	s.report(sourceStructuredProduct, productURL, err)
	if err != nil {
		return types.EmptyProductDetails()
	}
	return details
}

func (s *ShopifyAdapter) resolveProduct(ctx context.Context, productURL string) (types.ProductDetails, error) {
	endpoint := endpointURL(productURL, ".json")

	var payload productPayload
	if err := s.GetJSON(ctx, endpoint, &payload); err != nil {
		return types.ProductDetails{}, err
	}

	if payload.Product == nil || payload.Product.ID == "" {
		return types.ProductDetails{}, fmt.Errorf("%s has no product id: %w", endpoint, utils.ErrEmptyResult)
	}

	product := payload.Product
	details := types.ProductDetails{
		Title:       product.Title,
		Description: utils.ToPlainText(product.BodyHTML),
	}
	if product.Image != nil {
		details.Image = product.Image.Src
	}
	details.ProductRecommendations = s.recommendations(ctx, productURL, product.ID.String())

	return details, nil
}

// recommendations degrades to an empty list on any failure
func (s *ShopifyAdapter) recommendations(ctx context.Context, productURL, productID string) []types.ProductSummary {
	summaries, err := s.fetchRecommendations(ctx, productURL, productID)
	s.report(sourceRecommendations, productURL, err)
	if err != nil {
		return []types.ProductSummary{}
	}
	return summaries
}

func (s *ShopifyAdapter) fetchRecommendations(ctx context.Context, productURL, productID string) ([]types.ProductSummary, error) {
	baseURL := BaseURL(productURL)
	if baseURL == "" {
		return nil, &utils.ParseError{URL: productURL, Field: "base_url", Err: errors.New("no scheme and host")}
	}

	query := url.Values{}
	query.Set("product_id", productID)
	query.Set("limit", strconv.Itoa(types.MaxRelated))
	endpoint := baseURL + "/recommendations/products.json?" + query.Encode()

	var payload recommendationsPayload
	if err := s.GetJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	summaries := []types.ProductSummary{}
	for _, p := range payload.Products {
		if len(summaries) == types.MaxRelated {
			break
		}
		summaries = append(summaries, types.ProductSummary{
			Title:       strings.TrimSpace(p.Title),
			Description: utils.ToPlainText(p.Description),
			Image:       p.FeaturedImage,
		})
	}
	return summaries, nil
}

// ResolveCollection finds a collection's title, image and up to three products
// through the search-suggest endpoint. Any failure yields the canonical empty collection.
func (s *ShopifyAdapter) ResolveCollection(ctx context.Context, collectionURL string) types.CollectionDetails {
	details, err := s.resolveCollection(ctx, collectionURL)
	s.report(sourceStructuredCollection, collectionURL, err)
	if err != nil {
		return types.EmptyCollectionDetails()
	}
	return details
}

func (s *ShopifyAdapter) resolveCollection(ctx context.Context, collectionURL string) (types.CollectionDetails, error) {
	baseURL := BaseURL(collectionURL)
	if baseURL == "" {
		return types.CollectionDetails{}, &utils.ParseError{URL: collectionURL, Field: "base_url", Err: errors.New("no scheme and host")}
	}
	collectionTitle := Classify(collectionURL).Slug
	if decoded, err := url.PathUnescape(collectionTitle); err == nil {
		collectionTitle = decoded
	}

	var collections suggestPayload
	if err := s.GetJSON(ctx, suggestURL(baseURL, collectionTitle, "collection", false), &collections); err != nil {
		return types.CollectionDetails{}, err
	}

	details := types.CollectionDetails{
		Title:    collectionTitle,
		Products: []types.ProductInCollection{},
	}
	if found := collections.Resources.Results.Collections; len(found) > 0 {
		if found[0].Title != "" {
			details.Title = found[0].Title
		}
		if found[0].FeaturedImage != nil {
			details.CollectionImage = found[0].FeaturedImage.URL
		}
	}

	// Product tags usually carry the collection handle, so a tag search is
	// tried first and a title search only when it finds nothing.
	var products suggestPayload
	if err := s.GetJSON(ctx, suggestURL(baseURL, collectionTitle, "product", true), &products); err != nil {
		return types.CollectionDetails{}, err
	}
	if len(products.Resources.Results.Products) == 0 {
		s.logger.Debugf("Tag search for collection %q found no products, retrying by title", collectionTitle)
		products = suggestPayload{}
		if err := s.GetJSON(ctx, suggestURL(baseURL, collectionTitle, "product", false), &products); err != nil {
			return types.CollectionDetails{}, err
		}
	}

	for _, p := range products.Resources.Results.Products {
		if len(details.Products) == types.MaxRelated {
			break
		}
		details.Products = append(details.Products, types.ProductInCollection{
			Title:       strings.TrimSpace(p.Title),
			Description: utils.ToPlainText(p.Body),
			Image:       p.Image,
			URL:         resolveAgainst(baseURL, p.URL),
		})
	}

	return details, nil
}

// suggestURL builds a predictive search query against {base}/search/suggest.json
func suggestURL(baseURL, q, resourceType string, byTag bool) string {
	query := url.Values{}
	query.Set("q", q)
	query.Set("resources[type]", resourceType)
	if resourceType == "product" {
		query.Set("resources[limit]", strconv.Itoa(types.MaxRelated))
	}
	if byTag {
		query.Set("resources[options][fields]", "tag")
	}
	return baseURL + "/search/suggest.json?" + query.Encode()
}
