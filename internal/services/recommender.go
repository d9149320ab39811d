package services

import (
	"context"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/amaumene/gostreamfinder/internal/constants"
	"github.com/amaumene/gostreamfinder/internal/metrics"
	"github.com/amaumene/gostreamfinder/internal/models"
	"github.com/amaumene/gostreamfinder/pkg/logger"
)

var _ RecommenderService = (*Recommender)(nil)

// Recommender combines the RAG chain's answer with per-title platform
// availability for the requester's location.
type Recommender struct {
	chain           RAGChain
	availability    AvailabilityService
	defaultLocation string
	workers         int
	logger          logger.Logger
}

func NewRecommender(chain RAGChain, availability AvailabilityService, defaultLocation string, workers int, log logger.Logger) *Recommender {
	defaultLocation = strings.ToUpper(strings.TrimSpace(defaultLocation))
	if defaultLocation == "" {
		defaultLocation = constants.DefaultRecommendLocation
	}
	if workers <= 0 {
		workers = constants.DefaultCatalogWorkers
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Recommender{
		chain:           chain,
		availability:    availability,
		defaultLocation: defaultLocation,
		workers:         workers,
		logger:          log,
	}
}

// Recommend never returns an error. A chain failure yields an empty reply
// with Error set; an availability failure leaves that title's platforms empty.
func (r *Recommender) Recommend(ctx context.Context, req models.ChatRequest) *models.ChatResponse {
	location := strings.ToUpper(strings.TrimSpace(req.Location))
	if location == "" {
		location = r.defaultLocation
	}

	result, err := r.chain.Invoke(ctx, req.Message)
	if err != nil {
		r.logger.Errorf("[Recommender] chain invocation failed: %v", err)
		metrics.RecommendationsTotal.WithLabelValues("failed").Inc()
		return &models.ChatResponse{
			Recommendations: []models.Recommendation{},
			Error:           constants.MsgRecommendationFail,
		}
	}

	if result == nil {
		result = &models.RAGResult{}
	}

	recs := make([]models.Recommendation, len(result.Context))
	p := pool.New().WithMaxGoroutines(r.workers)
	for i, doc := range result.Context {
		p.Go(func() {
			platforms, err := r.availability.AggregateSingleRegion(ctx, doc.TMDBID, models.MediaTypeMovie, location)
			if err != nil {
				platforms = []models.Platform{}
			}
			recs[i] = models.Recommendation{
				Title:    doc.Title,
				Overview: doc.Overview,
				Platform: platforms,
			}
		})
	}
	p.Wait()

	metrics.RecommendationsTotal.WithLabelValues("ok").Inc()
	r.logger.Infof("[Recommender] %d recommendations for location %s", len(recs), location)

	return &models.ChatResponse{
		Reply:           result.Answer,
		Recommendations: recs,
	}
}
