package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T, index string) *BoltDB {
	t.Helper()
	db, err := NewBolt(filepath.Join(t.TempDir(), "nested", "vectors.db"), index)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUpsertAndGet(t *testing.T) {
	db := openTestDB(t, "movies")

	err := db.UpsertDocuments([]Document{
		{ID: "tmdb:278", TMDBID: 278, Title: "The Shawshank Redemption", Embedding: []float32{1, 0}},
	})
	require.NoError(t, err)

	doc, err := db.GetDocument("tmdb:278")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, 278, doc.TMDBID)
	assert.False(t, doc.IndexedAt.IsZero())

	missing, err := db.GetDocument("tmdb:1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	// upsert replaces rather than duplicates
	require.NoError(t, db.UpsertDocuments([]Document{
		{ID: "tmdb:278", TMDBID: 278, Title: "Shawshank", Embedding: []float32{1, 0}},
	}))
	n, err := db.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	doc, err = db.GetDocument("tmdb:278")
	require.NoError(t, err)
	assert.Equal(t, "Shawshank", doc.Title)
}

func TestUpsertRejectsInvalidDocuments(t *testing.T) {
	db := openTestDB(t, "movies")

	assert.ErrorIs(t, db.UpsertDocuments([]Document{{Embedding: []float32{1}}}), ErrInvalidDocument)
	assert.ErrorIs(t, db.UpsertDocuments([]Document{{ID: "x"}}), ErrEmptyEmbedding)

	n, err := db.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSearchRanksByCosine(t *testing.T) {
	db := openTestDB(t, "movies")

	require.NoError(t, db.UpsertDocuments([]Document{
		{ID: "a", Title: "orthogonal", Embedding: []float32{0, 1}},
		{ID: "b", Title: "exact", Embedding: []float32{2, 0}},
		{ID: "c", Title: "close", Embedding: []float32{1, 0.2}},
		{ID: "d", Title: "other dimension", Embedding: []float32{1, 0, 0}},
	}))

	hits, err := db.Search([]float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "exact", hits[0].Title)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-9)
	assert.Equal(t, "close", hits[1].Title)

	all, err := db.Search([]float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := db.Search([]float32{1, 0}, 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = db.Search(nil, 3)
	assert.ErrorIs(t, err, ErrEmptyEmbedding)
}

func TestIndexesAreIsolated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vectors.db")

	movies, err := NewBolt(path, "movies")
	require.NoError(t, err)
	require.NoError(t, movies.UpsertDocuments([]Document{{ID: "a", Embedding: []float32{1}}}))
	require.NoError(t, movies.Close())

	shows, err := NewBolt(path, "shows")
	require.NoError(t, err)
	defer shows.Close()

	n, err := shows.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestDeleteDocument(t *testing.T) {
	db := openTestDB(t, "movies")
	require.NoError(t, db.UpsertDocuments([]Document{{ID: "a", Embedding: []float32{1}}}))
	require.NoError(t, db.DeleteDocument("a"))

	n, err := db.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
