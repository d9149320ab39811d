package catalog

import (
	"encoding/json"
	"testing"

	"github.com/amaumene/gostreamfinder/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegions(t *testing.T) {
	rc := DefaultRegions()

	assert.Equal(t, 10, rc.Len())
	assert.Equal(t, []string{"US", "GB", "CA", "IN", "PK", "AU", "DE", "FR", "JP", "BR"}, rc.Codes())

	pk, ok := rc.Lookup("pk")
	require.True(t, ok)
	assert.Equal(t, "Pakistan", pk.DisplayName)

	_, ok = rc.Lookup("XX")
	assert.False(t, ok)
}

func TestRegionCatalogRejectsDuplicates(t *testing.T) {
	rc := NewRegionCatalog([]models.Region{
		{Code: "de", DisplayName: "Germany"},
		{Code: "US", DisplayName: "United States"},
		{Code: "DE", DisplayName: "Deutschland"},
		{Code: "", DisplayName: "Nowhere"},
	})

	assert.Equal(t, []string{"DE", "US"}, rc.Codes())
	de, _ := rc.Lookup("DE")
	assert.Equal(t, "Germany", de.DisplayName)
}

func TestRegionsReturnsCopy(t *testing.T) {
	rc := DefaultRegions()
	regions := rc.Regions()
	regions[0].Code = "ZZ"

	assert.Equal(t, "US", rc.Codes()[0])
}

func TestRegionCatalogJSON(t *testing.T) {
	rc := NewRegionCatalog([]models.Region{
		{Code: "US", DisplayName: "United States"},
		{Code: "GB", DisplayName: "United Kingdom"},
	})

	data, err := json.Marshal(rc)
	require.NoError(t, err)
	assert.Equal(t, `{"US":"United States","GB":"United Kingdom"}`, string(data))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		provider models.Provider
		want     models.Platform
		ok       bool
	}{
		{"netflix", models.Provider{ID: 8, Name: "Netflix"}, PlatformNetflix, true},
		{"prime", models.Provider{ID: 9, Name: "Amazon Prime Video"}, PlatformPrimeVideo, true},
		{"unknown id", models.Provider{ID: 99, Name: "Netflix"}, "", false},
		{"zero", models.Provider{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(tt.provider)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyAll(t *testing.T) {
	got := ClassifyAll([]models.Provider{
		{ID: 9, Name: "Amazon Prime Video"},
		{ID: 337, Name: "Disney Plus"},
		{ID: 8, Name: "Netflix"},
		{ID: 9, Name: "Amazon Prime Video"},
	})
	assert.Equal(t, []models.Platform{PlatformPrimeVideo, PlatformNetflix}, got)

	empty := ClassifyAll(nil)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
