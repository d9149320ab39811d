package services

import (
	"context"
	"testing"

	"github.com/amaumene/gostreamfinder/internal/catalog"
	"github.com/amaumene/gostreamfinder/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateAllRegionsSparseAndOrdered(t *testing.T) {
	fc := newFakeCatalog()
	// output follows the region catalog, not upstream keys
	fc.providers[1] = models.RegionalProviders{
		"BR": {provider(8)},
		"FR": {provider(99)},
		"DE": {provider(8), provider(9)},
		"US": {provider(9)},
		"XX": {provider(8)},
		"GB": {},
	}

	agg := NewAggregator(fc, catalog.DefaultRegions(), "US", nil)
	got, err := agg.AggregateAllRegions(context.Background(), 1, models.MediaTypeMovie)
	require.NoError(t, err)

	assert.Equal(t, []string{"US", "DE", "BR"}, got.Codes())

	us, _ := got.Get("US")
	assert.Equal(t, "United States", us.Region.DisplayName)
	assert.Equal(t, []models.Platform{"Prime Video"}, us.Platforms)

	de, _ := got.Get("DE")
	assert.Equal(t, []models.Platform{"Netflix", "Prime Video"}, de.Platforms)

	for _, ra := range got {
		assert.NotEmpty(t, ra.Platforms, "region %s must be omitted when empty", ra.Region.Code)
	}
	_, providerCalls, _ := fc.counts()
	assert.Equal(t, 1, providerCalls)
}

func TestAggregateAllRegionsFailureIsEmpty(t *testing.T) {
	fc := newFakeCatalog()
	fc.providersErr[1] = upstreamDown()

	agg := NewAggregator(fc, nil, "", nil)
	got, err := agg.AggregateAllRegions(context.Background(), 1, models.MediaTypeSeries)
	require.Error(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAggregateSingleRegion(t *testing.T) {
	fc := newFakeCatalog()
	fc.providers[7] = models.RegionalProviders{
		"US": {provider(8)},
		"PK": {provider(9), provider(337)},
		"NL": {provider(8)},
	}
	agg := NewAggregator(fc, catalog.DefaultRegions(), "US", nil)
	ctx := context.Background()

	tests := []struct {
		name   string
		region string
		want   []models.Platform
	}{
		{"explicit region", "PK", []models.Platform{"Prime Video"}},
		{"lower case", "pk", []models.Platform{"Prime Video"}},
		{"default region", "", []models.Platform{"Netflix"}},
		{"region outside catalog", "NL", []models.Platform{"Netflix"}},
		{"absent upstream", "JP", []models.Platform{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := agg.AggregateSingleRegion(ctx, 7, models.MediaTypeMovie, tt.region)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAggregateSingleRegionFailure(t *testing.T) {
	fc := newFakeCatalog()
	fc.providersErr[7] = upstreamDown()

	agg := NewAggregator(fc, nil, "US", nil)
	got, err := agg.AggregateSingleRegion(context.Background(), 7, models.MediaTypeMovie, "US")
	require.Error(t, err)
	assert.Equal(t, []models.Platform{}, got)
}
