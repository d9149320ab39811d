package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	apperrors "github.com/amaumene/gostreamfinder/internal/errors"
	"github.com/amaumene/gostreamfinder/internal/models"
)

// fakeCatalog is an in-memory CatalogService that counts calls.
type fakeCatalog struct {
	mu sync.Mutex

	titles    []models.CandidateTitle
	providers map[int]models.RegionalProviders
	seasons   map[int][]models.SeasonSummary
	topRated  map[int][]models.CandidateTitle

	searchErr    error
	providersErr map[int]error
	seasonsErr   map[int]error
	// delays per title id, to shuffle completion order
	delays map[int]time.Duration

	searchCalls    int
	providerCalls  int
	seasonCalls    int
	topRatedCalls  int
	providerCallBy map[int]int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		providers:      map[int]models.RegionalProviders{},
		seasons:        map[int][]models.SeasonSummary{},
		topRated:       map[int][]models.CandidateTitle{},
		providersErr:   map[int]error{},
		seasonsErr:     map[int]error{},
		delays:         map[int]time.Duration{},
		providerCallBy: map[int]int{},
	}
}

func (f *fakeCatalog) SearchTitles(_ context.Context, _ string) ([]models.CandidateTitle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	out := make([]models.CandidateTitle, len(f.titles))
	copy(out, f.titles)
	return out, nil
}

func (f *fakeCatalog) GetRegionalProviders(_ context.Context, id int, _ models.MediaType) (models.RegionalProviders, error) {
	f.mu.Lock()
	f.providerCalls++
	f.providerCallBy[id]++
	delay := f.delays[id]
	err := f.providersErr[id]
	providers := f.providers[id]
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if err != nil {
		return nil, err
	}
	if providers == nil {
		return models.RegionalProviders{}, nil
	}
	return providers, nil
}

func (f *fakeCatalog) GetSeasons(_ context.Context, id int) ([]models.SeasonSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seasonCalls++
	if err := f.seasonsErr[id]; err != nil {
		return nil, err
	}
	return f.seasons[id], nil
}

func (f *fakeCatalog) GetTopRated(_ context.Context, page int) ([]models.CandidateTitle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topRatedCalls++
	return f.topRated[page], nil
}

func (f *fakeCatalog) counts() (search, providers, seasons int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.searchCalls, f.providerCalls, f.seasonCalls
}

func upstreamDown() error {
	return apperrors.NewUpstreamStatusError("TMDB", 503)
}

// fakeChain is a RAGChain returning a canned result.
type fakeChain struct {
	result *models.RAGResult
	err    error
	query  string
}

func (c *fakeChain) Invoke(_ context.Context, query string) (*models.RAGResult, error) {
	c.query = query
	if c.err != nil {
		return nil, c.err
	}
	return c.result, nil
}

func provider(id int) models.Provider {
	return models.Provider{ID: id, Name: fmt.Sprintf("provider-%d", id)}
}
