package ratelimiter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTakeTokenExhaustsBurst(t *testing.T) {
	tb := NewTokenBucket(3, 1)

	assert.True(t, tb.TakeToken())
	assert.True(t, tb.TakeToken())
	assert.True(t, tb.TakeToken())
	assert.False(t, tb.TakeToken())
}

func TestNonPositiveValuesAreClamped(t *testing.T) {
	tb := NewTokenBucket(0, -5)

	assert.True(t, tb.TakeToken())
	assert.False(t, tb.TakeToken())
}

func TestWaitHonoursContext(t *testing.T) {
	tb := NewTokenBucket(1, 1)
	require.NoError(t, tb.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, tb.Wait(ctx))
}
