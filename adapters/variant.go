package adapters

import (
	"context"
	"fmt"

	"storefront-extractor/internal/types"
	"storefront-extractor/utils"
)

const sourceVariant = "variant_js"

type variantPayload struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	FeaturedImage string `json:"featured_image"`
}

// VariantAdapter reads the storefront's {url}.js variant data endpoint
type VariantAdapter struct {
	*BaseAdapter
}

// NewVariantAdapter creates a new variant data source over base
func NewVariantAdapter(base *BaseAdapter) *VariantAdapter {
	return &VariantAdapter{
		BaseAdapter: base,
	}
}

// Name returns the source name
func (v *VariantAdapter) Name() string {
	return sourceVariant
}

// FetchProduct implements types.ProductSource
func (v *VariantAdapter) FetchProduct(ctx context.Context, productURL string) types.ProductDetails {
	details, err := v.fetchProduct(ctx, productURL)
	v.report(sourceVariant, productURL, err)
	if err != nil {
		return types.EmptyProductDetails()
	}
	return details
}

func (v *VariantAdapter) fetchProduct(ctx context.Context, productURL string) (types.ProductDetails, error) {
	var payload variantPayload
	if err := v.GetJSON(ctx, endpointURL(productURL, ".js"), &payload); err != nil {
		return types.ProductDetails{}, err
	}

	details := types.EmptyProductDetails()
	details.Title = payload.Title
	details.Description = utils.ToPlainText(payload.Description)
	details.Image = utils.StripProtocolRelative(payload.FeaturedImage)
	if details.IsEmpty() {
		return types.ProductDetails{}, fmt.Errorf("variant data has no product fields: %w", utils.ErrEmptyResult)
	}
	return details, nil
}
