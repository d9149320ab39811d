package constants

import "time"

// Timeout constants for various operations
const (
	// Outbound catalog requests
	CatalogTimeout = 10 * time.Second

	// Language model requests (generation is slow)
	GeminiTimeout = 30 * time.Second

	// Embedding cache entry lifetime
	DefaultEmbeddingCacheTTL = time.Hour

	// Graceful shutdown window for the HTTP server
	ShutdownTimeout = 10 * time.Second

	// Gemini retry policy
	GeminiRetryDelay    = 500 * time.Millisecond
	GeminiRetryAttempts = 3
)
