// Package services provides the catalog client, the availability pipeline and
// the recommendation composer, wired together through a dependency container.
package services

//go:generate mockgen -destination=mocks/mock_services.go -package=mocks . ResolverService,RecommenderService

import (
	"context"

	"github.com/amaumene/gostreamfinder/internal/catalog"
	"github.com/amaumene/gostreamfinder/internal/database"
	"github.com/amaumene/gostreamfinder/internal/models"
	"github.com/amaumene/gostreamfinder/pkg/logger"
)

// Container holds all application services for dependency injection.
type Container struct {
	Catalog      CatalogService
	Regions      *catalog.RegionCatalog
	Availability AvailabilityService
	Resolver     ResolverService
	// Recommender is nil when no language model credential is configured.
	Recommender RecommenderService
	// DB is the vector index backing retrieval; nil when retrieval is disabled.
	DB     database.Database
	Logger logger.Logger
}

// CatalogService defines the outbound catalog operations. Every method makes
// exactly one upstream request.
type CatalogService interface {
	SearchTitles(ctx context.Context, query string) ([]models.CandidateTitle, error)
	GetRegionalProviders(ctx context.Context, id int, mediaType models.MediaType) (models.RegionalProviders, error)
	GetSeasons(ctx context.Context, seriesID int) ([]models.SeasonSummary, error)
	GetTopRated(ctx context.Context, page int) ([]models.CandidateTitle, error)
}

// AvailabilityService reduces provider listings to platform availability.
type AvailabilityService interface {
	AggregateAllRegions(ctx context.Context, id int, mediaType models.MediaType) (models.RegionAvailabilityMap, error)
	AggregateSingleRegion(ctx context.Context, id int, mediaType models.MediaType, region string) ([]models.Platform, error)
}

// ResolverService turns a free-text query into availability reports.
// Failures are reported in the result, never returned.
type ResolverService interface {
	Resolve(ctx context.Context, query string) *models.ResolveResult
}

// RecommenderService composes a grounded reply with per-title platforms.
type RecommenderService interface {
	Recommend(ctx context.Context, req models.ChatRequest) *models.ChatResponse
}

// RAGChain is the retrieval+generation collaborator.
type RAGChain interface {
	Invoke(ctx context.Context, query string) (*models.RAGResult, error)
}
