package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/amaumene/gostreamfinder/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTMDBKey = "0123456789abcdef0123456789abcdef"

// isolate clears credentials inherited from the environment and points
// CONFIG_FILE at a path that does not exist.
func isolate(t *testing.T) {
	t.Helper()
	for _, key := range []string{"TMDB_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	t.Setenv("TMDB_API_KEY", testTMDBKey)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, testTMDBKey, cfg.TMDB.APIKey)
	assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDB.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.TMDB.Timeout)
	assert.Equal(t, 5, cfg.Catalog.Concurrency)
	assert.True(t, cfg.Catalog.BreakerEnabled)
	assert.Equal(t, "US", cfg.Catalog.DefaultRegion)
	assert.Equal(t, "PK", cfg.Catalog.DefaultRecommendLocation)
	assert.Equal(t, "movies", cfg.Vector.Index)
	assert.Equal(t, 3, cfg.Vector.TopK)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, ":8000", cfg.ListenAddr())
	assert.Empty(t, cfg.Warnings())
}

func TestLoadMissingTMDBKey(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeMissingCredential))
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("TMDB_API_KEY", testTMDBKey)
	t.Setenv("TMDB_TIMEOUT", "3s")
	t.Setenv("CATALOG_CONCURRENCY", "8")
	t.Setenv("CATALOG_BREAKER_ENABLED", "false")
	t.Setenv("DEFAULT_REGION", "de")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_FORMAT", "JSON")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.TMDB.Timeout)
	assert.Equal(t, 8, cfg.Catalog.Concurrency)
	assert.False(t, cfg.Catalog.BreakerEnabled)
	assert.Equal(t, "DE", cfg.Catalog.DefaultRegion)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("tmdb:\n  api_key: " + testTMDBKey + "\nvector:\n  index: films\n  top_k: 5\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	isolate(t)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("RETRIEVER_TOP_K", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, testTMDBKey, cfg.TMDB.APIKey)
	assert.Equal(t, "films", cfg.Vector.Index)
	// environment wins over the file
	assert.Equal(t, 7, cfg.Vector.TopK)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	isolate(t)
	t.Setenv("TMDB_API_KEY", testTMDBKey)
	t.Setenv("CATALOG_CONCURRENCY", "0")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConfigurationInvalid))
}

func TestMalformedKeysOnlyWarn(t *testing.T) {
	isolate(t)
	t.Setenv("TMDB_API_KEY", "not-a-tmdb-key")
	t.Setenv("GEMINI_API_KEY", "short")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Len(t, cfg.Warnings(), 2)
	for _, w := range cfg.Warnings() {
		assert.NotContains(t, w, "not-a-tmdb-key")
	}
}

func TestRequireGemini(t *testing.T) {
	cfg := defaultConfig()
	err := cfg.RequireGemini()
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeMissingCredential))

	cfg.Gemini.APIKey = "AIza" + "0123456789abcdefghijklmnopqrstuvwxy"
	assert.NoError(t, cfg.RequireGemini())
}
