package rag

import (
	"context"
	"strings"

	"github.com/amaumene/gostreamfinder/internal/cache"
	"github.com/amaumene/gostreamfinder/internal/database"
	"github.com/amaumene/gostreamfinder/internal/metrics"
	"github.com/amaumene/gostreamfinder/internal/models"
	"github.com/amaumene/gostreamfinder/pkg/logger"
)

// Retriever finds the indexed movies closest to a query.
type Retriever struct {
	embedder Embedder
	db       database.Database
	cache    cache.Cache[[]float32]
	topK     int
	logger   logger.Logger
}

// NewRetriever creates a retriever. embeddings may be nil to disable query
// embedding caching.
func NewRetriever(embedder Embedder, db database.Database, embeddings cache.Cache[[]float32], topK int, log logger.Logger) *Retriever {
	if topK <= 0 {
		topK = 1
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Retriever{
		embedder: embedder,
		db:       db,
		cache:    embeddings,
		topK:     topK,
		logger:   log,
	}
}

// Retrieve returns up to topK documents ranked by similarity.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]models.RAGDocument, error) {
	vec, err := r.queryEmbedding(ctx, query)
	if err != nil {
		return nil, err
	}

	hits, err := r.db.Search(vec, r.topK)
	if err != nil {
		return nil, err
	}

	docs := make([]models.RAGDocument, 0, len(hits))
	for _, hit := range hits {
		docs = append(docs, models.RAGDocument{
			TMDBID:      hit.TMDBID,
			Title:       hit.Title,
			Overview:    hit.Overview,
			PageContent: hit.Content,
			Score:       hit.Score,
		})
	}

	r.logger.Debugf("[Retriever] %d documents for %q", len(docs), query)
	return docs, nil
}

func (r *Retriever) queryEmbedding(ctx context.Context, query string) ([]float32, error) {
	key := strings.ToLower(strings.TrimSpace(query))
	if r.cache != nil {
		if vec, ok := r.cache.Get(key); ok {
			metrics.EmbeddingCacheHits.Inc()
			return vec, nil
		}
		metrics.EmbeddingCacheMisses.Inc()
	}

	vec, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		r.cache.Set(key, vec)
	}
	return vec, nil
}
