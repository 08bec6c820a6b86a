package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storefront-extractor/internal/types"
)

type fakeResolver struct {
	lastURL string
}

func (f *fakeResolver) Lookup(ctx context.Context, pageURL string) interface{} {
	f.lastURL = pageURL
	return types.EmptyProductDetails()
}

func (f *fakeResolver) GetBranding(ctx context.Context, pageURL string) types.StoreDetails {
	f.lastURL = pageURL
	return types.StoreDetails{Font: "f.com/a.woff", Colors: []string{"0,0,0"}, Logo: "cdn/logo.png"}
}

func (f *fakeResolver) GetStoreDetails(ctx context.Context, pageURL string) types.StoreDetails {
	return f.GetBranding(ctx, pageURL)
}

func newTestServer() (*fakeResolver, http.Handler) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	resolver := &fakeResolver{}
	return resolver, NewServer(resolver, logger).Router()
}

func TestProductDetails_MissingURL(t *testing.T) {
	_, router := newTestServer()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/get_product_details", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Error)
}

func TestProductDetails_EmptyResultShape(t *testing.T) {
	resolver, router := newTestServer()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/get_product_details?url=https%3A%2F%2Fshop.example%2Fproducts%2Fred-mug", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "https://shop.example/products/red-mug", resolver.lastURL)
	assert.JSONEq(t, `{"title":"","description":"","image":"","productRecommendations":[]}`, rec.Body.String())
}

func TestBrandingAndStoreDetails(t *testing.T) {
	_, router := newTestServer()

	for _, path := range []string{"/get_product_branding", "/get_store_details"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path+"?url=https://shop.example", nil))

		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.JSONEq(t, `{"font":"f.com/a.woff","colors":["0,0,0"],"logo":"cdn/logo.png"}`, rec.Body.String(), path)
	}
}

func TestRequestID(t *testing.T) {
	_, router := newTestServer()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestCORSPreflight(t *testing.T) {
	_, router := newTestServer()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/get_product_details", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthAndMetrics(t *testing.T) {
	_, router := newTestServer()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
