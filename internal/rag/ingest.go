package rag

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/amaumene/gostreamfinder/internal/constants"
	"github.com/amaumene/gostreamfinder/internal/database"
	"github.com/amaumene/gostreamfinder/internal/metrics"
	"github.com/amaumene/gostreamfinder/internal/models"
	"github.com/amaumene/gostreamfinder/pkg/logger"
)

// TitleSource lists the titles to index.
type TitleSource interface {
	GetTopRated(ctx context.Context, page int) ([]models.CandidateTitle, error)
}

// IngestStats summarizes one ingestion run.
type IngestStats struct {
	Loaded  int
	Indexed int
	Total   int
}

// Ingester loads top-rated movies, embeds them and upserts them into the index.
type Ingester struct {
	source   TitleSource
	embedder Embedder
	db       database.Database
	index    string
	workers  int
	logger   logger.Logger
	now      func() time.Time
}

func NewIngester(source TitleSource, embedder Embedder, db database.Database, index string, workers int, log logger.Logger) *Ingester {
	if workers <= 0 {
		workers = 1
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Ingester{
		source:   source,
		embedder: embedder,
		db:       db,
		index:    index,
		workers:  workers,
		logger:   log,
		now:      time.Now,
	}
}

// DocumentID is the index key for a catalog title.
func DocumentID(tmdbID int) string {
	return fmt.Sprintf("tmdb:%d", tmdbID)
}

// Run indexes pages 1..pages. Titles seen on several pages are indexed once,
// and re-running replaces existing documents.
func (in *Ingester) Run(ctx context.Context, pages int) (IngestStats, error) {
	if pages <= 0 {
		pages = 1
	}

	var docs []database.Document
	seen := make(map[int]bool)
	for page := 1; page <= pages; page++ {
		titles, err := in.source.GetTopRated(ctx, page)
		if err != nil {
			return IngestStats{}, fmt.Errorf("failed to load top rated page %d: %w", page, err)
		}
		for _, title := range titles {
			if seen[title.ID] {
				continue
			}
			seen[title.ID] = true
			docs = append(docs, database.Document{
				ID:       DocumentID(title.ID),
				TMDBID:   title.ID,
				Title:    title.Title,
				Overview: title.Overview,
				Content:  PageContent(title.Title, title.Overview),
			})
		}
	}

	stats := IngestStats{Loaded: len(docs)}
	in.logger.Infof("[Ingest] Loaded %d movies from TMDB", len(docs))
	if len(docs) == 0 {
		return in.finish(stats)
	}

	in.logger.Infof("[Ingest] Creating embeddings and uploading to index %q...", in.index)

	p := pool.New().WithContext(ctx).WithCancelOnError().WithMaxGoroutines(in.workers)
	for start := 0; start < len(docs); start += constants.MaxEmbedBatchSize {
		batch := docs[start:min(start+constants.MaxEmbedBatchSize, len(docs))]
		p.Go(func(ctx context.Context) error {
			return in.indexBatch(ctx, batch)
		})
	}
	if err := p.Wait(); err != nil {
		return stats, err
	}

	stats.Indexed = len(docs)
	in.logger.Infof("[Ingest] Ingestion completed! Indexed %d movies.", stats.Indexed)
	return in.finish(stats)
}

func (in *Ingester) indexBatch(ctx context.Context, batch []database.Document) error {
	texts := make([]string, len(batch))
	for i, doc := range batch {
		texts[i] = doc.Content
	}

	vectors, err := in.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed batch: %w", err)
	}
	if len(vectors) != len(batch) {
		return fmt.Errorf("embedder returned %d vectors for %d documents", len(vectors), len(batch))
	}

	indexedAt := in.now()
	for i := range batch {
		batch[i].Embedding = vectors[i]
		batch[i].IndexedAt = indexedAt
	}

	if err := in.db.UpsertDocuments(batch); err != nil {
		return fmt.Errorf("failed to store batch: %w", err)
	}
	return nil
}

func (in *Ingester) finish(stats IngestStats) (IngestStats, error) {
	total, err := in.db.Count()
	if err != nil {
		return stats, fmt.Errorf("failed to count documents: %w", err)
	}
	stats.Total = total
	metrics.IndexedDocuments.WithLabelValues(in.index).Set(float64(total))
	return stats, nil
}
