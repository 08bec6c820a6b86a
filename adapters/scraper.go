package adapters

import (
	"context"
	"strings"

	"storefront-extractor/internal/types"
	"storefront-extractor/utils"

	"github.com/PuerkitoBio/goquery"
)

const (
	sourceBranding  = "branding_scrape"
	sourceDOMScrape = "dom_scrape"

	// maxLogoCandidates is how many leading images are considered for the logo
	maxLogoCandidates = 3

	themeStyleSelector  = "style[data-shopify]"
	descriptionSelector = ".product__description"
	titleSelector       = ".product__title"
	headingSelector     = "h1"
	mediaSelector       = ".product__media img"
)

// ScrapedProduct is the partial product read from visible page text
type ScrapedProduct struct {
	Title       string
	Description string
	Heading     string
	Media       string
}

// ToProductDetails merges the scraped fields into the product shape.
// The page heading stands in for a missing title.
func (p ScrapedProduct) ToProductDetails() types.ProductDetails {
	details := types.EmptyProductDetails()
	details.Title = p.Title
	if details.Title == "" {
		details.Title = p.Heading
	}
	details.Description = p.Description
	details.Image = p.Media
	return details
}

// HTMLScraper reads branding and product fields from rendered storefront pages
type HTMLScraper struct {
	*BaseAdapter
}

// NewHTMLScraper creates a new HTML scraper over base
func NewHTMLScraper(base *BaseAdapter) *HTMLScraper {
	return &HTMLScraper{
		BaseAdapter: base,
	}
}

// Name returns the source name
func (h *HTMLScraper) Name() string {
	return sourceDOMScrape
}

// FetchProduct implements types.ProductSource
func (h *HTMLScraper) FetchProduct(ctx context.Context, productURL string) types.ProductDetails {
	return h.ScrapeProduct(ctx, productURL).ToProductDetails()
}

// ScrapeBranding extracts logo, theme font and foreground colors from a page
func (h *HTMLScraper) ScrapeBranding(ctx context.Context, pageURL string) types.StoreDetails {
	doc, err := h.FetchDocument(ctx, pageURL)
	if err != nil {
		h.report(sourceBranding, pageURL, err)
		return types.EmptyStoreDetails()
	}

	details := h.extractBranding(doc)
	if details.Logo == "" && details.Font == "" && len(details.Colors) == 0 {
		h.report(sourceBranding, pageURL, utils.ErrEmptyResult)
	} else {
		h.report(sourceBranding, pageURL, nil)
	}
	return details
}

func (h *HTMLScraper) extractBranding(doc *goquery.Document) types.StoreDetails {
	details := types.EmptyStoreDetails()
	details.Logo = findLogo(doc)

	style := doc.Find(themeStyleSelector).First()
	if style.Length() == 0 {
		return details
	}

	css := style.Text()
	details.Font = utils.FirstFontURL(css)
	details.Colors = utils.ForegroundColors(css)
	return details
}

// findLogo returns the first of the leading images whose source mentions "logo"
func findLogo(doc *goquery.Document) string {
	var candidates []string
	doc.Find("img").EachWithBreak(func(i int, s *goquery.Selection) bool {
		src, exists := s.Attr("src")
		if exists && src != "" {
			candidates = append(candidates, utils.StripProtocolRelative(src))
		}
		return len(candidates) < maxLogoCandidates
	})

	for _, src := range candidates {
		if strings.Contains(strings.ToLower(src), "logo") {
			return src
		}
	}
	return ""
}

// ScrapeProduct reads product fields from fixed page selectors.
// Selectors that match nothing leave their field empty.
func (h *HTMLScraper) ScrapeProduct(ctx context.Context, productURL string) ScrapedProduct {
	doc, err := h.FetchDocument(ctx, productURL)
	if err != nil {
		h.report(sourceDOMScrape, productURL, err)
		return ScrapedProduct{}
	}

	scraped := ScrapedProduct{
		Description: h.ExtractText(doc, descriptionSelector),
		Title:       h.ExtractText(doc, titleSelector),
		Heading:     h.ExtractText(doc, headingSelector),
		Media:       utils.StripProtocolRelative(h.ExtractAttribute(doc, mediaSelector, "src")),
	}

	if scraped == (ScrapedProduct{}) {
		h.report(sourceDOMScrape, productURL, utils.ErrEmptyResult)
	} else {
		h.report(sourceDOMScrape, productURL, nil)
	}
	return scraped
}
