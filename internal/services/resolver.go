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

var _ ResolverService = (*Resolver)(nil)

// Resolver runs the content resolution pipeline: search, then per-candidate
// availability and (for series) season enrichment.
type Resolver struct {
	catalog      CatalogService
	availability AvailabilityService
	workers      int
	logger       logger.Logger
}

func NewResolver(cs CatalogService, availability AvailabilityService, workers int, log logger.Logger) *Resolver {
	if workers <= 0 {
		workers = constants.DefaultCatalogWorkers
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Resolver{catalog: cs, availability: availability, workers: workers, logger: log}
}

// Resolve never returns an error: no hits and search failures are reported
// through the result's Error field, and per-title lookup failures mark the
// report as partial.
func (r *Resolver) Resolve(ctx context.Context, query string) *models.ResolveResult {
	query = strings.TrimSpace(query)
	if query == "" {
		metrics.ResolutionsTotal.WithLabelValues("no_results").Inc()
		return noResults(constants.MsgNoResults)
	}

	titles, err := r.catalog.SearchTitles(ctx, query)
	if err != nil {
		r.logger.Errorf("[Resolver] search failed for %q: %v", query, err)
		metrics.ResolutionsTotal.WithLabelValues("search_failed").Inc()
		return noResults(constants.MsgSearchUnavailable)
	}

	metrics.ResolutionCandidates.Observe(float64(len(titles)))
	if len(titles) == 0 {
		r.logger.Infof("[Resolver] no movies or TV shows found for %q", query)
		metrics.ResolutionsTotal.WithLabelValues("no_results").Inc()
		return noResults(constants.MsgNoResults)
	}

	// Each task writes only its own slot, so order follows the search
	// results regardless of completion order.
	reports := make([]models.ContentAvailabilityReport, len(titles))
	p := pool.New().WithMaxGoroutines(r.workers)
	for i, title := range titles {
		p.Go(func() {
			reports[i] = r.buildReport(ctx, title)
		})
	}
	p.Wait()

	outcome := "ok"
	for _, report := range reports {
		if report.Partial {
			outcome = "partial"
			break
		}
	}
	metrics.ResolutionsTotal.WithLabelValues(outcome).Inc()

	r.logger.Infof("[Resolver] resolved %q to %d titles (%s)", query, len(reports), outcome)
	return &models.ResolveResult{
		Results:    reports,
		TotalFound: len(reports),
	}
}

func (r *Resolver) buildReport(ctx context.Context, title models.CandidateTitle) models.ContentAvailabilityReport {
	availability, err := r.availability.AggregateAllRegions(ctx, title.ID, title.MediaType)
	partial := err != nil

	report := models.NewContentAvailabilityReport(title, availability)

	if title.MediaType == models.MediaTypeSeries {
		seasons, err := r.catalog.GetSeasons(ctx, title.ID)
		if err != nil {
			r.logger.Warnf("[Resolver] season lookup failed for series %d: %v", title.ID, err)
			partial = true
			seasons = nil
		}
		report = report.WithSeasons(seasons)
	}

	report.Partial = partial
	return report
}

func noResults(message string) *models.ResolveResult {
	return &models.ResolveResult{
		Results:    []models.ContentAvailabilityReport{},
		TotalFound: 0,
		Error:      message,
	}
}
