// Package constants defines application-wide constants and default values.
package constants

const (
	// Service metadata
	ServiceName        = "gostreamfinder"
	ServiceVersion     = "1.0.0"
	ServiceDescription = "Conversational movie recommendations with live streaming availability"

	// Default configuration values
	DefaultPort     = 8000
	DefaultLogLevel = "info"

	// Catalog source
	TMDBBaseURL      = "https://api.themoviedb.org/3"
	TMDBLanguage     = "en-US"
	MaxSearchResults = 5

	// Availability defaults
	DefaultRegion            = "US"
	DefaultRecommendLocation = "PK"
	DefaultCatalogWorkers    = 5

	// Language model / retrieval
	GeminiBaseURL         = "https://generativelanguage.googleapis.com/v1beta"
	DefaultGeminiModel    = "gemini-3-flash-preview"
	DefaultEmbeddingModel = "text-embedding-004"
	DefaultRetrieverTopK  = 3
	DefaultVectorIndex    = "movies"
	MaxEmbedBatchSize     = 100

	// Cache settings
	DefaultEmbeddingCacheSize = 1000

	// Rate limiting
	TMDBRateLimit   = 40 // requests per second
	TMDBRateBurst   = 20 // burst capacity
	GeminiRateLimit = 10 // requests per second
	GeminiRateBurst = 2  // burst capacity

	// Ingestion
	DefaultIngestPages = 1
)

// Messages surfaced to API clients as data rather than as HTTP failures.
const (
	MsgNoResults          = "No movies or TV shows found"
	MsgSearchUnavailable  = "Catalog search is temporarily unavailable"
	MsgRecommendationFail = "Recommendation service is temporarily unavailable"
	MsgRecommendationOff  = "Recommendations are not configured on this server"
	MsgInvalidBody        = "Invalid request body"
)
