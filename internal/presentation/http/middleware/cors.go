package middleware

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/fueltrack-api/internal/config"
)

var (
	devOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}

	corsMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}

	// Headers browser clients send: auth, the receipt retry key and request tracing.
	corsRequestHeaders = []string{"Accept", "Authorization", "Content-Type", "Origin", IdempotencyKeyHeader, "X-Request-ID"}

	// Headers browser clients must read: replay marker, limiter back-off and the export filename.
	corsExposedHeaders = []string{
		"Content-Disposition",
		"Content-Length",
		"Content-Type",
		"Retry-After",
		"X-Idempotency-Replayed",
		"X-Request-ID",
	}
)

// CORSMiddleware allows the configured web origins to call the API. Empty
// settings fall back to local development values.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = devOrigins
	}
	methods := cfg.AllowedMethods
	if len(methods) == 0 {
		methods = corsMethods
	}
	headers := cfg.AllowedHeaders
	if len(headers) == 0 {
		headers = corsRequestHeaders
	} else if !slices.Contains(headers, IdempotencyKeyHeader) {
		// POST /receipts cannot be called from a browser without it
		headers = append(slices.Clone(headers), IdempotencyKeyHeader)
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     methods,
		AllowHeaders:     headers,
		ExposeHeaders:    corsExposedHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
