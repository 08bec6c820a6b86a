package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"storefront-extractor/internal/types"
)

// requestTimeout bounds a whole lookup including every fallback
const requestTimeout = 60 * time.Second

// Resolver is the lookup surface the routes depend on
type Resolver interface {
	Lookup(ctx context.Context, pageURL string) interface{}
	GetBranding(ctx context.Context, pageURL string) types.StoreDetails
	GetStoreDetails(ctx context.Context, pageURL string) types.StoreDetails
}

// ErrorResponse is returned when the url query parameter is missing
type ErrorResponse struct {
	Error string `json:"error"`
}

// Server holds the API routes and their dependencies
type Server struct {
	resolver Resolver
	logger   *logrus.Logger
}

// NewServer creates a new API server
func NewServer(resolver Resolver, logger *logrus.Logger) *Server {
	return &Server{
		resolver: resolver,
		logger:   logger,
	}
}

// Router returns the chi router with every endpoint registered
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(cors)

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/get_product_details", s.withURL(func(ctx context.Context, pageURL string) interface{} {
		return s.resolver.Lookup(ctx, pageURL)
	}))
	r.Get("/get_product_branding", s.withURL(func(ctx context.Context, pageURL string) interface{} {
		return s.resolver.GetBranding(ctx, pageURL)
	}))
	r.Get("/get_store_details", s.withURL(func(ctx context.Context, pageURL string) interface{} {
		return s.resolver.GetStoreDetails(ctx, pageURL)
	}))

	return r
}

// withURL validates the url query parameter and runs the lookup under the request context
func (s *Server) withURL(lookup func(ctx context.Context, pageURL string) interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pageURL := r.URL.Query().Get("url")
		if pageURL == "" {
			s.sendJSON(w, http.StatusBadRequest, ErrorResponse{Error: "url query parameter is required"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		s.logger.WithFields(logrus.Fields{
			"request_id": w.Header().Get("X-Request-ID"),
			"path":       r.URL.Path,
			"url":        pageURL,
		}).Info("API request received")

		s.sendJSON(w, http.StatusOK, lookup(ctx, pageURL))
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusOK, map[string][]string{
		"endpoints": {
			"GET /get_product_details?url=",
			"GET /get_product_branding?url=",
			"GET /get_store_details?url=",
			"GET /health",
			"GET /metrics",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) sendJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Errorf("Failed to encode response: %v", err)
	}
}

// requestID echoes or assigns an X-Request-ID header
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
