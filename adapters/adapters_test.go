package adapters

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"storefront-extractor/internal/metrics"
	"storefront-extractor/internal/types"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestConfig() *types.Config {
	config := types.DefaultConfig()
	config.Timeout = 2 * time.Second
	return config
}

func newTestBase(config *types.Config) *BaseAdapter {
	return NewBaseAdapter(config, newTestLogger())
}

// newStorefront starts a fake storefront serving the given routes
func newStorefront(t *testing.T, routes map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	for pattern, handler := range routes {
		mux.HandleFunc(pattern, handler)
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func respond(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}
}

func fail(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}
}

func outcomeCount(source, outcome string) float64 {
	return testutil.ToFloat64(metrics.SourceOutcomes.WithLabelValues(source, outcome))
}
