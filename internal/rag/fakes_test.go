package rag

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amaumene/gostreamfinder/internal/database"
	"github.com/amaumene/gostreamfinder/internal/models"
)

// fakeEmbedder maps known texts to fixed vectors; unknown texts get [0, 0, 1].
type fakeEmbedder struct {
	mu         sync.Mutex
	vectors    map[string][]float32
	queryCalls int
	docCalls   int
	err        error
}

func (f *fakeEmbedder) vector(text string) []float32 {
	if v, ok := f.vectors[text]; ok {
		return v
	}
	return []float32{0, 0, 1}
}

func (f *fakeEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queryCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.vector(text), nil
}

func (f *fakeEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docCalls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = f.vector(text)
	}
	return out, nil
}

type fakeGenerator struct {
	answer string
	err    error
	prompt string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.answer, f.err
}

type fakeRetriever struct {
	docs []models.RAGDocument
	err  error
}

func (f *fakeRetriever) Retrieve(context.Context, string) ([]models.RAGDocument, error) {
	return f.docs, f.err
}

// fakeSource serves top-rated pages from a map; missing pages are empty.
type fakeSource struct {
	pages   map[int][]models.CandidateTitle
	failOn  int
	fetched []int
}

func (f *fakeSource) GetTopRated(_ context.Context, page int) ([]models.CandidateTitle, error) {
	f.fetched = append(f.fetched, page)
	if page == f.failOn {
		return nil, errors.New("catalog down")
	}
	return f.pages[page], nil
}

func openTestDB(t *testing.T) *database.BoltDB {
	t.Helper()
	db, err := database.NewBolt(filepath.Join(t.TempDir(), "vectors.db"), "movies")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}
