package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceErrorMessage(t *testing.T) {
	err := NewUpstreamStatusError("TMDB", 503)
	assert.Equal(t, "UPSTREAM_UNAVAILABLE: TMDB API error: status 503", err.Error())

	cause := stderrors.New("dial tcp: timeout")
	wrapped := NewUpstreamError("TMDB", "request failed", cause)
	assert.Contains(t, wrapped.Error(), "caused by: dial tcp: timeout")
	assert.ErrorIs(t, wrapped, cause)
}

func TestIsType(t *testing.T) {
	err := fmt.Errorf("resolve: %w", NewMissingCredentialError("TMDB_API_KEY"))

	assert.True(t, IsType(err, ErrorTypeMissingCredential))
	assert.False(t, IsType(err, ErrorTypeUpstreamUnavailable))
	assert.False(t, IsType(stderrors.New("plain"), ErrorTypeMissingCredential))
	assert.False(t, IsType(nil, ErrorTypeMissingCredential))

	nested := NewConfigurationError("invalid config", NewMissingCredentialError("TMDB_API_KEY"))
	assert.True(t, IsType(nested, ErrorTypeConfigurationInvalid))
	assert.True(t, IsType(nested, ErrorTypeMissingCredential))
}
