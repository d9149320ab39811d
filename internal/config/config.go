// Package config provides configuration management for the application.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/amaumene/gostreamfinder/internal/constants"
	apperrors "github.com/amaumene/gostreamfinder/internal/errors"
	"github.com/amaumene/gostreamfinder/pkg/security"
)

const (
	// Default configuration file name
	defaultConfigFile = "config.yaml"
	// Default vector store path
	defaultDatabasePath = "./data/vectors.db"
	// Environment variable overriding the config file location
	configFileEnvVar = "CONFIG_FILE"
)

// Config holds the application configuration.
// Values are layered: defaults, then an optional YAML file, then environment variables.
type Config struct {
	TMDB    TMDBConfig    `koanf:"tmdb"`
	Catalog CatalogConfig `koanf:"catalog"`
	Gemini  GeminiConfig  `koanf:"gemini"`
	Vector  VectorConfig  `koanf:"vector"`
	Server  ServerConfig  `koanf:"server"`
	Logging LoggingConfig `koanf:"logging"`
	Ingest  IngestConfig  `koanf:"ingest"`

	warnings []string
}

type TMDBConfig struct {
	APIKey    string        `koanf:"api_key"`
	BaseURL   string        `koanf:"base_url" validate:"required,url"`
	Timeout   time.Duration `koanf:"timeout" validate:"gt=0"`
	RateLimit int           `koanf:"rate_limit" validate:"min=1"`
	RateBurst int           `koanf:"rate_burst" validate:"min=1"`
}

// CatalogConfig controls how resolutions fan out to the catalog source.
type CatalogConfig struct {
	Concurrency              int    `koanf:"concurrency" validate:"min=1,max=64"`
	BreakerEnabled           bool   `koanf:"breaker_enabled"`
	DefaultRegion            string `koanf:"default_region" validate:"len=2,alpha"`
	DefaultRecommendLocation string `koanf:"default_recommend_location" validate:"len=2,alpha"`
}

type GeminiConfig struct {
	APIKey         string        `koanf:"api_key"`
	BaseURL        string        `koanf:"base_url" validate:"required,url"`
	Model          string        `koanf:"model" validate:"required"`
	EmbeddingModel string        `koanf:"embedding_model" validate:"required"`
	Timeout        time.Duration `koanf:"timeout" validate:"gt=0"`
}

// VectorConfig describes the local vector index used for retrieval.
type VectorConfig struct {
	Index     string        `koanf:"index" validate:"required"`
	Path      string        `koanf:"path" validate:"required"`
	TopK      int           `koanf:"top_k" validate:"min=1,max=50"`
	CacheSize int           `koanf:"cache_size" validate:"min=1"`
	CacheTTL  time.Duration `koanf:"cache_ttl" validate:"gt=0"`
}

type ServerConfig struct {
	Port int `koanf:"port" validate:"min=1,max=65535"`
}

type LoggingConfig struct {
	Level  string `koanf:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format string `koanf:"format" validate:"omitempty,oneof=console json"`
}

type IngestConfig struct {
	Pages int `koanf:"pages" validate:"min=1,max=500"`
}

func defaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			BaseURL:   constants.TMDBBaseURL,
			Timeout:   constants.CatalogTimeout,
			RateLimit: constants.TMDBRateLimit,
			RateBurst: constants.TMDBRateBurst,
		},
		Catalog: CatalogConfig{
			Concurrency:              constants.DefaultCatalogWorkers,
			BreakerEnabled:           true,
			DefaultRegion:            constants.DefaultRegion,
			DefaultRecommendLocation: constants.DefaultRecommendLocation,
		},
		Gemini: GeminiConfig{
			BaseURL:        constants.GeminiBaseURL,
			Model:          constants.DefaultGeminiModel,
			EmbeddingModel: constants.DefaultEmbeddingModel,
			Timeout:        constants.GeminiTimeout,
		},
		Vector: VectorConfig{
			Index:     constants.DefaultVectorIndex,
			Path:      defaultDatabasePath,
			TopK:      constants.DefaultRetrieverTopK,
			CacheSize: constants.DefaultEmbeddingCacheSize,
			CacheTTL:  constants.DefaultEmbeddingCacheTTL,
		},
		Server: ServerConfig{
			Port: constants.DefaultPort,
		},
		Logging: LoggingConfig{
			Level:  constants.DefaultLogLevel,
			Format: "console",
		},
		Ingest: IngestConfig{
			Pages: constants.DefaultIngestPages,
		},
	}
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	"tmdb_api_key":    "tmdb.api_key",
	"tmdb_base_url":   "tmdb.base_url",
	"tmdb_timeout":    "tmdb.timeout",
	"tmdb_rate_limit": "tmdb.rate_limit",
	"tmdb_rate_burst": "tmdb.rate_burst",

	"catalog_concurrency":        "catalog.concurrency",
	"catalog_breaker_enabled":    "catalog.breaker_enabled",
	"default_region":             "catalog.default_region",
	"default_recommend_location": "catalog.default_recommend_location",

	"gemini_api_key":         "gemini.api_key",
	"google_api_key":         "gemini.api_key",
	"gemini_base_url":        "gemini.base_url",
	"gemini_model":           "gemini.model",
	"gemini_embedding_model": "gemini.embedding_model",
	"gemini_timeout":         "gemini.timeout",

	"vector_index":         "vector.index",
	"database_path":        "vector.path",
	"retriever_top_k":      "vector.top_k",
	"embedding_cache_size": "vector.cache_size",
	"embedding_cache_ttl":  "vector.cache_ttl",

	"port":       "server.port",
	"log_level":  "logging.level",
	"log_format": "logging.format",

	"ingest_pages": "ingest.pages",
}

// envTransformFunc maps a known, non-empty environment variable to its koanf
// path. Returning an empty key makes koanf skip the variable.
func envTransformFunc(key, value string) (string, interface{}) {
	mapped, ok := envMappings[strings.ToLower(key)]
	if !ok || strings.TrimSpace(value) == "" {
		return "", nil
	}
	return mapped, value
}

// Load builds the configuration and validates it.
// A missing TMDB API key is a startup failure.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	configFile := os.Getenv(configFileEnvVar)
	if configFile == "" {
		configFile = defaultConfigFile
	}
	if _, err := os.Stat(configFile); err == nil {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, apperrors.NewConfigurationError(fmt.Sprintf("failed to load config file %s", configFile), err)
		}
	}

	if err := k.Load(env.ProviderWithValue("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, apperrors.NewConfigurationError("failed to unmarshal configuration", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks required credentials and field ranges, and normalizes
// region codes. Malformed (but present) keys only produce warnings.
func (c *Config) Validate() error {
	keys := security.NewAPIKeyValidator()

	c.TMDB.APIKey = keys.SanitizeAPIKey(c.TMDB.APIKey)
	c.Gemini.APIKey = keys.SanitizeAPIKey(c.Gemini.APIKey)

	if c.TMDB.APIKey == "" {
		return apperrors.NewMissingCredentialError("TMDB_API_KEY")
	}

	c.warnings = nil
	if !keys.IsValidTMDBKey(c.TMDB.APIKey) {
		c.warnings = append(c.warnings, fmt.Sprintf("TMDB_API_KEY %s does not look like a TMDB v3 key", keys.MaskAPIKey(c.TMDB.APIKey)))
	}
	if c.Gemini.APIKey != "" && !keys.IsValidGeminiKey(c.Gemini.APIKey) {
		c.warnings = append(c.warnings, fmt.Sprintf("GEMINI_API_KEY %s does not look like a Google API key", keys.MaskAPIKey(c.Gemini.APIKey)))
	}

	c.Catalog.DefaultRegion = strings.ToUpper(strings.TrimSpace(c.Catalog.DefaultRegion))
	c.Catalog.DefaultRecommendLocation = strings.ToUpper(strings.TrimSpace(c.Catalog.DefaultRecommendLocation))
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Format = strings.ToLower(c.Logging.Format)

	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return apperrors.NewConfigurationError("configuration validation failed", err)
	}

	return nil
}

// RequireGemini reports a missing credential error when the language model
// and embedding endpoints cannot be used.
func (c *Config) RequireGemini() error {
	if c.Gemini.APIKey == "" {
		return apperrors.NewMissingCredentialError("GEMINI_API_KEY")
	}
	return nil
}

// Warnings returns non-fatal problems found during validation.
func (c *Config) Warnings() []string {
	return c.warnings
}

// ListenAddr returns the HTTP listen address.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
