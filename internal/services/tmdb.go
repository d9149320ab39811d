package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/amaumene/gostreamfinder/internal/config"
	"github.com/amaumene/gostreamfinder/internal/constants"
	apperrors "github.com/amaumene/gostreamfinder/internal/errors"
	"github.com/amaumene/gostreamfinder/internal/models"
	"github.com/amaumene/gostreamfinder/pkg/httputil"
	"github.com/amaumene/gostreamfinder/pkg/logger"
	"github.com/amaumene/gostreamfinder/pkg/ratelimiter"
	"github.com/amaumene/gostreamfinder/pkg/security"
)

var _ CatalogService = (*TMDB)(nil)

// TMDB is the catalog client backed by The Movie Database REST API.
type TMDB struct {
	apiKey      string
	baseURL     string
	rateLimiter ratelimiter.RateLimiter
	httpClient  *http.Client
	logger      logger.Logger
}

// NewTMDB builds a client from validated configuration. A nil httpClient or
// limiter is replaced by one derived from cfg.
func NewTMDB(cfg config.TMDBConfig, httpClient *http.Client, limiter ratelimiter.RateLimiter, log logger.Logger) (*TMDB, error) {
	validator := security.NewAPIKeyValidator()

	apiKey := validator.SanitizeAPIKey(cfg.APIKey)
	if apiKey == "" {
		return nil, apperrors.NewMissingCredentialError("TMDB_API_KEY")
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = constants.TMDBBaseURL
	}
	if httpClient == nil {
		httpClient = httputil.NewHTTPClient(cfg.Timeout)
	}
	if limiter == nil {
		limiter = ratelimiter.NewTokenBucket(int64(cfg.RateBurst), int64(cfg.RateLimit))
	}
	if log == nil {
		log = logger.NewNop()
	}

	log.Debugf("[TMDB] client configured for %s (key: %s)", baseURL, validator.MaskAPIKey(apiKey))

	return &TMDB{
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
		httpClient:  httpClient,
		logger:      log,
	}, nil
}

// SearchTitles runs a multi search and keeps movies and series among the
// first MaxSearchResults raw hits, in source order.
func (t *TMDB) SearchTitles(ctx context.Context, query string) ([]models.CandidateTitle, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("language", constants.TMDBLanguage)

	var resp models.TMDBSearchResponse
	if err := t.get(ctx, "search_multi", "/search/multi", params, &resp); err != nil {
		return nil, err
	}

	raw := resp.Results
	if len(raw) > constants.MaxSearchResults {
		raw = raw[:constants.MaxSearchResults]
	}

	titles := make([]models.CandidateTitle, 0, len(raw))
	for _, r := range raw {
		if title, ok := t.processSearchResult(r); ok {
			titles = append(titles, title)
		}
	}

	t.logger.Debugf("[TMDB] search %q returned %d raw results, %d titles", query, len(resp.Results), len(titles))
	return titles, nil
}

// GetRegionalProviders returns the subscription (flatrate) providers per region.
func (t *TMDB) GetRegionalProviders(ctx context.Context, id int, mediaType models.MediaType) (models.RegionalProviders, error) {
	if !mediaType.Valid() {
		return nil, apperrors.NewInvalidRequestError(fmt.Sprintf("unsupported media type: %s", mediaType))
	}

	path := fmt.Sprintf("/%s/%d/watch/providers", mediaType, id)
	var resp models.TMDBWatchProvidersResponse
	if err := t.get(ctx, "watch_providers", path, nil, &resp); err != nil {
		return nil, err
	}

	return t.extractFlatrate(resp.Results), nil
}

// GetSeasons returns the regular seasons of a series, specials excluded.
func (t *TMDB) GetSeasons(ctx context.Context, seriesID int) ([]models.SeasonSummary, error) {
	var details models.TMDBTVDetails
	if err := t.get(ctx, "tv_details", "/tv/"+strconv.Itoa(seriesID), nil, &details); err != nil {
		return nil, err
	}

	return t.convertSeasons(details.Seasons), nil
}

// GetTopRated returns one page of the top rated movies, used to seed the vector index.
func (t *TMDB) GetTopRated(ctx context.Context, page int) ([]models.CandidateTitle, error) {
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("language", constants.TMDBLanguage)
	params.Set("page", strconv.Itoa(page))

	var resp models.TMDBMovieResponse
	if err := t.get(ctx, "top_rated", "/movie/top_rated", params, &resp); err != nil {
		return nil, err
	}

	titles := make([]models.CandidateTitle, 0, len(resp.Results))
	for _, m := range resp.Results {
		titles = append(titles, t.convertMovie(m))
	}
	return titles, nil
}
