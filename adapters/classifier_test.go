package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"storefront-extractor/internal/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		url  string
		kind types.PageKind
		slug string
	}{
		{"https://shop.example/collections/summer", types.KindCollection, "summer"},
		{"https://shop.example/collections/summer/", types.KindCollection, "summer"},
		{"https://shop.example/collections/summer?page=2", types.KindCollection, "summer"},
		{"https://shop.example/collections/summer/products/red-mug", types.KindProduct, "red-mug"},
		{"https://shop.example/products/red-mug", types.KindProduct, "red-mug"},
		{"https://shop.example/products/red-mug?variant=123", types.KindProduct, "red-mug"},
		{"https://shop.example/products/", types.KindProduct, ""},
		{"https://shop.example", types.KindStoreRoot, ""},
		{"https://shop.example/pages/about", types.KindStoreRoot, ""},
		{"", types.KindStoreRoot, ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got := Classify(tt.url)
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.slug, got.Slug)
		})
	}
}

func TestClassify_NestedProductIsNeverCollection(t *testing.T) {
	urls := []string{
		"https://shop.example/collections/a/products/b",
		"https://shop.example/en/collections/sale/products/b/extra",
		"https://shop.example/collections/all/products/b?x=1",
	}
	for _, u := range urls {
		assert.NotEqual(t, types.KindCollection, Classify(u).Kind, u)
		assert.Equal(t, types.KindProduct, Classify(u).Kind, u)
	}
}

func TestBaseURL(t *testing.T) {
	assert.Equal(t, "https://shop.example", BaseURL("https://shop.example/products/red-mug?x=1"))
	assert.Equal(t, "http://127.0.0.1:8080", BaseURL("http://127.0.0.1:8080/collections/a"))
	assert.Equal(t, "", BaseURL("shop.example/products/red-mug"))
	assert.Equal(t, "", BaseURL("ftp://shop.example/file"))
	assert.Equal(t, "", BaseURL(""))
}

func TestEndpointURL(t *testing.T) {
	assert.Equal(t, "https://shop.example/products/red-mug.json", endpointURL("https://shop.example/products/red-mug", ".json"))
	assert.Equal(t, "https://shop.example/products/red-mug.json", endpointURL("https://shop.example/products/red-mug/", ".json"))
	assert.Equal(t, "https://shop.example/products/red-mug.js", endpointURL("https://shop.example/products/red-mug?variant=1#top", ".js"))
}

func TestResolveAgainst(t *testing.T) {
	assert.Equal(t, "https://shop.example/products/a?_pos=1", resolveAgainst("https://shop.example", "/products/a?_pos=1"))
	assert.Equal(t, "https://other.example/products/a", resolveAgainst("https://shop.example", "https://other.example/products/a"))
}
