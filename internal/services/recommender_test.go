package services

import (
	"context"
	"errors"
	"testing"

	"github.com/amaumene/gostreamfinder/internal/catalog"
	"github.com/amaumene/gostreamfinder/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendEnrichesWithLocation(t *testing.T) {
	fc := newFakeCatalog()
	fc.providers[278] = models.RegionalProviders{"PK": {provider(8)}, "US": {provider(9)}}
	fc.providers[238] = models.RegionalProviders{"US": {provider(8)}}

	chain := &fakeChain{result: &models.RAGResult{
		Answer: "Try these classics.",
		Context: []models.RAGDocument{
			{TMDBID: 278, Title: "The Shawshank Redemption", Overview: "Hope."},
			{TMDBID: 238, Title: "The Godfather", Overview: "Family."},
		},
	}}
	agg := NewAggregator(fc, catalog.DefaultRegions(), "US", nil)
	rec := NewRecommender(chain, agg, "PK", 2, nil)

	resp := rec.Recommend(context.Background(), models.ChatRequest{Message: "a prison drama"})

	assert.Equal(t, "a prison drama", chain.query)
	assert.Equal(t, "Try these classics.", resp.Reply)
	assert.Empty(t, resp.Error)
	require.Len(t, resp.Recommendations, 2)
	assert.Equal(t, "The Shawshank Redemption", resp.Recommendations[0].Title)
	assert.Equal(t, []models.Platform{"Netflix"}, resp.Recommendations[0].Platform)
	assert.Equal(t, "The Godfather", resp.Recommendations[1].Title)
	assert.Equal(t, []models.Platform{}, resp.Recommendations[1].Platform)

	resp = rec.Recommend(context.Background(), models.ChatRequest{Message: "x", Location: "us"})
	assert.Equal(t, []models.Platform{"Prime Video"}, resp.Recommendations[0].Platform)
	assert.Equal(t, []models.Platform{"Netflix"}, resp.Recommendations[1].Platform)
}

func TestRecommendChainFailure(t *testing.T) {
	fc := newFakeCatalog()
	chain := &fakeChain{err: errors.New("model unavailable")}
	rec := NewRecommender(chain, NewAggregator(fc, nil, "US", nil), "", 0, nil)

	resp := rec.Recommend(context.Background(), models.ChatRequest{Message: "anything"})

	assert.Equal(t, "Recommendation service is temporarily unavailable", resp.Error)
	assert.Empty(t, resp.Reply)
	assert.NotNil(t, resp.Recommendations)
	assert.Empty(t, resp.Recommendations)
	_, providerCalls, _ := fc.counts()
	assert.Equal(t, 0, providerCalls)
}

func TestRecommendDegradesOnAvailabilityFailure(t *testing.T) {
	fc := newFakeCatalog()
	fc.providersErr[1] = upstreamDown()
	chain := &fakeChain{result: &models.RAGResult{
		Answer:  "ok",
		Context: []models.RAGDocument{{TMDBID: 1, Title: "A"}},
	}}
	rec := NewRecommender(chain, NewAggregator(fc, nil, "US", nil), "PK", 1, nil)

	resp := rec.Recommend(context.Background(), models.ChatRequest{Message: "m"})

	require.Len(t, resp.Recommendations, 1)
	assert.NotNil(t, resp.Recommendations[0].Platform)
	assert.Empty(t, resp.Recommendations[0].Platform)
	assert.Empty(t, resp.Error)
}
