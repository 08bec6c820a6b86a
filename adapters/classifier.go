package adapters

import (
	"net/url"
	"strings"

	"storefront-extractor/internal/types"
)

const (
	collectionsSegment = "/collections/"
	productsSegment    = "/products/"
)

// Classify determines the page kind from the URL shape.
// A collection URL with a nested /products/ path is a product.
func Classify(rawURL string) types.Classification {
	if idx := strings.Index(rawURL, collectionsSegment); idx >= 0 {
		rest := rawURL[idx+len(collectionsSegment):]
		if !strings.Contains(rest, productsSegment) {
			return types.Classification{Kind: types.KindCollection, Slug: firstSegment(rest)}
		}
	}

	if idx := strings.Index(rawURL, productsSegment); idx >= 0 {
		return types.Classification{
			Kind: types.KindProduct,
			Slug: firstSegment(rawURL[idx+len(productsSegment):]),
		}
	}

	return types.Classification{Kind: types.KindStoreRoot}
}

// firstSegment returns s up to the next path, query or fragment delimiter
func firstSegment(s string) string {
	if end := strings.IndexAny(s, "/?#"); end >= 0 {
		return s[:end]
	}
	return s
}

// BaseURL returns scheme and host of an http(s) URL, or "" if there is none
func BaseURL(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// endpointURL appends suffix to the URL path, dropping query and fragment
func endpointURL(rawURL, suffix string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return rawURL + suffix
	}
	u.RawQuery = ""
	u.Fragment = ""
	u.Path = strings.TrimSuffix(u.Path, "/") + suffix
	u.RawPath = ""
	return u.String()
}

// resolveAgainst resolves ref against base, returning base+ref when either fails to parse
func resolveAgainst(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return base + ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return base + ref
	}
	return b.ResolveReference(r).String()
}
