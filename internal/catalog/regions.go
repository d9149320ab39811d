// Package catalog holds the static region and provider tables that bound
// availability aggregation.
package catalog

import (
	"strings"

	"github.com/amaumene/gostreamfinder/internal/models"
)

// RegionCatalog is an ordered, immutable set of supported regions.
type RegionCatalog struct {
	regions []models.Region
	index   map[string]int
}

// defaultRegions is the canonical iteration order for every report.
var defaultRegions = []models.Region{
	{Code: "US", DisplayName: "United States"},
	{Code: "GB", DisplayName: "United Kingdom"},
	{Code: "CA", DisplayName: "Canada"},
	{Code: "IN", DisplayName: "India"},
	{Code: "PK", DisplayName: "Pakistan"},
	{Code: "AU", DisplayName: "Australia"},
	{Code: "DE", DisplayName: "Germany"},
	{Code: "FR", DisplayName: "France"},
	{Code: "JP", DisplayName: "Japan"},
	{Code: "BR", DisplayName: "Brazil"},
}

// DefaultRegions returns the catalog used by the service.
func DefaultRegions() *RegionCatalog {
	return NewRegionCatalog(defaultRegions)
}

// NewRegionCatalog builds a catalog from regions in the given order. Codes are
// upper-cased; a repeated code keeps its first position.
func NewRegionCatalog(regions []models.Region) *RegionCatalog {
	rc := &RegionCatalog{
		regions: make([]models.Region, 0, len(regions)),
		index:   make(map[string]int, len(regions)),
	}
	for _, r := range regions {
		code := strings.ToUpper(strings.TrimSpace(r.Code))
		if code == "" {
			continue
		}
		if _, dup := rc.index[code]; dup {
			continue
		}
		rc.index[code] = len(rc.regions)
		rc.regions = append(rc.regions, models.Region{Code: code, DisplayName: r.DisplayName})
	}
	return rc
}

// Regions returns a copy of the regions in canonical order.
func (rc *RegionCatalog) Regions() []models.Region {
	out := make([]models.Region, len(rc.regions))
	copy(out, rc.regions)
	return out
}

// Codes returns the region codes in canonical order.
func (rc *RegionCatalog) Codes() []string {
	codes := make([]string, len(rc.regions))
	for i, r := range rc.regions {
		codes[i] = r.Code
	}
	return codes
}

// Lookup finds a region by code, case-insensitively.
func (rc *RegionCatalog) Lookup(code string) (models.Region, bool) {
	i, ok := rc.index[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return models.Region{}, false
	}
	return rc.regions[i], true
}

func (rc *RegionCatalog) Len() int {
	return len(rc.regions)
}

// MarshalJSON renders the catalog as {code: displayName} in canonical order.
func (rc *RegionCatalog) MarshalJSON() ([]byte, error) {
	pairs := make(models.OrderedPairs, len(rc.regions))
	for i, r := range rc.regions {
		pairs[i] = models.Pair{Key: r.Code, Value: r.DisplayName}
	}
	return pairs.MarshalJSON()
}
