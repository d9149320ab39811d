package services

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	apperrors "github.com/amaumene/gostreamfinder/internal/errors"
	"github.com/amaumene/gostreamfinder/internal/metrics"
	"github.com/amaumene/gostreamfinder/internal/models"
	"github.com/amaumene/gostreamfinder/pkg/logger"
)

var _ CatalogService = (*BreakerCatalog)(nil)

// BreakerConfig tunes the catalog circuit breaker.
type BreakerConfig struct {
	Name string
	// MaxRequests is the number of trial calls allowed while half-open.
	MaxRequests uint32
	// Interval is the cyclic reset period of the closed-state counts.
	Interval time.Duration
	// Timeout is how long the breaker stays open before going half-open.
	Timeout time.Duration
	// ConsecutiveFailures opens the breaker on its own.
	ConsecutiveFailures uint32
	// MinRequests and FailureRatio open the breaker on a sustained error rate.
	MinRequests  uint32
	FailureRatio float64
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:                "tmdb-api",
		MaxRequests:         3,
		Interval:            time.Minute,
		Timeout:             30 * time.Second,
		ConsecutiveFailures: 5,
		MinRequests:         10,
		FailureRatio:        0.6,
	}
}

// BreakerCatalog wraps a CatalogService with a circuit breaker so a failing
// catalog source is short-circuited instead of being hit once per candidate.
// Open-state rejections surface as UPSTREAM_UNAVAILABLE errors, which callers
// already degrade on.
type BreakerCatalog struct {
	next   CatalogService
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
	logger logger.Logger
}

func NewBreakerCatalog(next CatalogService, cfg BreakerConfig, log logger.Logger) *BreakerCatalog {
	if log == nil {
		log = logger.NewNop()
	}
	if cfg.Name == "" {
		cfg.Name = DefaultBreakerConfig().Name
	}

	metrics.CircuitBreakerState.WithLabelValues(cfg.Name).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if cfg.ConsecutiveFailures > 0 && counts.ConsecutiveFailures >= cfg.ConsecutiveFailures {
				return true
			}
			if cfg.MinRequests == 0 || counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnf("[Breaker] %s state %s -> %s", name, from, to)
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
		IsSuccessful: isBreakerSuccess,
	})

	return &BreakerCatalog{next: next, cb: cb, name: cfg.Name, logger: log}
}

// State reports the current breaker state.
func (b *BreakerCatalog) State() gobreaker.State {
	return b.cb.State()
}

func (b *BreakerCatalog) SearchTitles(ctx context.Context, query string) ([]models.CandidateTitle, error) {
	return breakerCall(b, func() ([]models.CandidateTitle, error) {
		return b.next.SearchTitles(ctx, query)
	})
}

func (b *BreakerCatalog) GetRegionalProviders(ctx context.Context, id int, mediaType models.MediaType) (models.RegionalProviders, error) {
	return breakerCall(b, func() (models.RegionalProviders, error) {
		return b.next.GetRegionalProviders(ctx, id, mediaType)
	})
}

func (b *BreakerCatalog) GetSeasons(ctx context.Context, seriesID int) ([]models.SeasonSummary, error) {
	return breakerCall(b, func() ([]models.SeasonSummary, error) {
		return b.next.GetSeasons(ctx, seriesID)
	})
}

func (b *BreakerCatalog) GetTopRated(ctx context.Context, page int) ([]models.CandidateTitle, error) {
	return breakerCall(b, func() ([]models.CandidateTitle, error) {
		return b.next.GetTopRated(ctx, page)
	})
}

func breakerCall[T any](b *BreakerCatalog, fn func() (T, error)) (T, error) {
	var zero T

	result, err := b.cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			b.logger.Debugf("[Breaker] %s rejected call: %v", b.name, err)
			return zero, apperrors.NewUpstreamError("TMDB", "circuit breaker is open", err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		return zero, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	return result.(T), nil
}

// isBreakerSuccess keeps caller-side problems (cancelled requests, invalid
// input) from counting against the upstream.
func isBreakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return true
	}
	return apperrors.IsType(err, apperrors.ErrorTypeInvalidRequest)
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
