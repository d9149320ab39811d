package services

import (
	"context"
	"strings"

	"github.com/amaumene/gostreamfinder/internal/catalog"
	"github.com/amaumene/gostreamfinder/internal/constants"
	"github.com/amaumene/gostreamfinder/internal/models"
	"github.com/amaumene/gostreamfinder/pkg/logger"
)

var _ AvailabilityService = (*Aggregator)(nil)

// Aggregator reduces a title's regional provider listing to recognized
// platforms. Each call issues exactly one provider lookup.
type Aggregator struct {
	catalog       CatalogService
	regions       *catalog.RegionCatalog
	defaultRegion string
	logger        logger.Logger
}

func NewAggregator(cs CatalogService, regions *catalog.RegionCatalog, defaultRegion string, log logger.Logger) *Aggregator {
	if regions == nil {
		regions = catalog.DefaultRegions()
	}
	defaultRegion = strings.ToUpper(strings.TrimSpace(defaultRegion))
	if defaultRegion == "" {
		defaultRegion = constants.DefaultRegion
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Aggregator{catalog: cs, regions: regions, defaultRegion: defaultRegion, logger: log}
}

// AggregateAllRegions walks the region catalog in canonical order and keeps
// only regions with at least one recognized platform. On lookup failure it
// returns an empty map together with the error.
func (a *Aggregator) AggregateAllRegions(ctx context.Context, id int, mediaType models.MediaType) (models.RegionAvailabilityMap, error) {
	providers, err := a.catalog.GetRegionalProviders(ctx, id, mediaType)
	if err != nil {
		a.logger.Warnf("[Availability] provider lookup failed for %s %d: %v", mediaType, id, err)
		return models.RegionAvailabilityMap{}, err
	}

	availability := make(models.RegionAvailabilityMap, 0, a.regions.Len())
	for _, region := range a.regions.Regions() {
		platforms := catalog.ClassifyAll(providers[region.Code])
		if len(platforms) == 0 {
			continue
		}
		availability = append(availability, models.RegionAvailability{Region: region, Platforms: platforms})
	}

	return availability, nil
}

// AggregateSingleRegion returns the platforms for one region code. The
// region does not have to be in the catalog; an empty code means the
// configured default. The result is never nil.
func (a *Aggregator) AggregateSingleRegion(ctx context.Context, id int, mediaType models.MediaType, region string) ([]models.Platform, error) {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		region = a.defaultRegion
	}

	providers, err := a.catalog.GetRegionalProviders(ctx, id, mediaType)
	if err != nil {
		a.logger.Warnf("[Availability] provider lookup failed for %s %d in %s: %v", mediaType, id, region, err)
		return []models.Platform{}, err
	}

	return catalog.ClassifyAll(providers[region]), nil
}
