package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	apperrors "github.com/amaumene/gostreamfinder/internal/errors"
	"github.com/amaumene/gostreamfinder/internal/metrics"
	"github.com/amaumene/gostreamfinder/internal/models"
)

// get issues one GET request and decodes a 200 response into out. The API
// key never appears in logs or returned errors.
func (t *TMDB) get(ctx context.Context, operation, path string, params url.Values, out interface{}) error {
	if err := t.rateLimiter.Wait(ctx); err != nil {
		return apperrors.NewUpstreamError("TMDB", operation+" rate limit wait aborted", err)
	}

	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("api_key", t.apiKey)
	apiURL := fmt.Sprintf("%s%s?%s", t.baseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return apperrors.NewUpstreamError("TMDB", "failed to build request", redactURLError(err))
	}
	req.Header.Set("Accept", "application/json")

	t.logger.Debugf("[TMDB] GET %s", path)

	start := time.Now()
	resp, err := t.httpClient.Do(req)
	if err != nil {
		metrics.RecordCatalogRequest(operation, 0, time.Since(start))
		return apperrors.NewUpstreamError("TMDB", operation+" request failed", redactURLError(err))
	}
	defer resp.Body.Close()

	metrics.RecordCatalogRequest(operation, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		t.logger.Warnf("[TMDB] %s %s returned status %d", operation, path, resp.StatusCode)
		return apperrors.NewUpstreamStatusError("TMDB", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewUpstreamError("TMDB", "failed to decode "+operation+" response", err)
	}

	return nil
}

// redactURLError strips the request URL (which carries the API key) from
// transport errors.
func redactURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}

func (t *TMDB) processSearchResult(r models.TMDBMultiResult) (models.CandidateTitle, bool) {
	mediaType := models.MediaType(r.MediaType)
	if !mediaType.Valid() {
		return models.CandidateTitle{}, false
	}

	title := r.Title
	if title == "" {
		title = r.Name
	}
	releaseDate := r.ReleaseDate
	if releaseDate == "" {
		releaseDate = r.FirstAirDate
	}

	return models.CandidateTitle{
		ID:          r.ID,
		Title:       title,
		Overview:    r.Overview,
		MediaType:   mediaType,
		ReleaseDate: releaseDate,
		PosterPath:  r.PosterPath,
	}, true
}

func (t *TMDB) convertMovie(m models.TMDBMovie) models.CandidateTitle {
	return models.CandidateTitle{
		ID:          m.ID,
		Title:       m.Title,
		Overview:    m.Overview,
		MediaType:   models.MediaTypeMovie,
		ReleaseDate: m.ReleaseDate,
		PosterPath:  m.PosterPath,
	}
}

func (t *TMDB) extractFlatrate(results map[string]models.TMDBRegionProviders) models.RegionalProviders {
	regional := make(models.RegionalProviders, len(results))
	for code, region := range results {
		if len(region.Flatrate) == 0 {
			continue
		}
		providers := make([]models.Provider, 0, len(region.Flatrate))
		for _, p := range region.Flatrate {
			providers = append(providers, models.Provider{ID: p.ProviderID, Name: p.ProviderName})
		}
		regional[strings.ToUpper(code)] = providers
	}
	return regional
}

func (t *TMDB) convertSeasons(raw []models.TMDBSeason) []models.SeasonSummary {
	seasons := make([]models.SeasonSummary, 0, len(raw))
	for _, s := range raw {
		if s.SeasonNumber <= 0 {
			continue
		}
		name := s.Name
		if name == "" {
			name = fmt.Sprintf("Season %d", s.SeasonNumber)
		}
		episodes := s.EpisodeCount
		if episodes < 0 {
			episodes = 0
		}
		seasons = append(seasons, models.SeasonSummary{
			SeasonNumber: s.SeasonNumber,
			Name:         name,
			EpisodeCount: episodes,
			AirDate:      s.AirDate,
		})
	}
	return seasons
}
