package database

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"time"

	json "github.com/goccy/go-json"
	bolt "go.etcd.io/bbolt"
)

const (
	// Default database file permissions
	dbFileMode = 0600
	dbDirMode  = 0755

	// Default database filename
	defaultDBFile = "vectors.db"

	openTimeout = time.Second
)

// BoltDB implements Database on a single bbolt file. Each index name maps
// to its own bucket so several indexes can share one file.
type BoltDB struct {
	db     *bolt.DB
	bucket []byte
}

// NewBolt opens (or creates) the database at dbPath and ensures the index bucket exists.
// If dbPath is empty, uses the default database file in current directory.
func NewBolt(dbPath, index string) (*BoltDB, error) {
	if dbPath == "" {
		dbPath = filepath.Join(".", defaultDBFile)
	}
	if index == "" {
		return nil, fmt.Errorf("vector index name is required")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), dbDirMode); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := bolt.Open(dbPath, dbFileMode, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	bucket := []byte(index)
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index bucket %q: %w", index, err)
	}

	return &BoltDB{db: db, bucket: bucket}, nil
}

func (b *BoltDB) Close() error {
	return b.db.Close()
}

// UpsertDocuments writes all documents in a single transaction.
func (b *BoltDB) UpsertDocuments(docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	now := time.Now().UTC()
	return b.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(b.bucket)
		for i := range docs {
			doc := docs[i]
			if doc.ID == "" {
				return ErrInvalidDocument
			}
			if len(doc.Embedding) == 0 {
				return fmt.Errorf("document %s: %w", doc.ID, ErrEmptyEmbedding)
			}
			if doc.IndexedAt.IsZero() {
				doc.IndexedAt = now
			}

			data, err := json.Marshal(&doc)
			if err != nil {
				return fmt.Errorf("failed to encode document %s: %w", doc.ID, err)
			}
			if err := bkt.Put([]byte(doc.ID), data); err != nil {
				return fmt.Errorf("failed to store document %s: %w", doc.ID, err)
			}
		}
		return nil
	})
}

// GetDocument returns nil if not found, without error.
func (b *BoltDB) GetDocument(id string) (*Document, error) {
	var doc *Document
	err := b.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(b.bucket).Get([]byte(id))
		if data == nil {
			return nil
		}
		doc = &Document{}
		return json.Unmarshal(data, doc)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", id, err)
	}
	return doc, nil
}

func (b *BoltDB) DeleteDocument(id string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(b.bucket).Delete([]byte(id))
	})
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", id, err)
	}
	return nil
}

func (b *BoltDB) Count() (int, error) {
	var n int
	err := b.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(b.bucket).Stats().KeyN
		return nil
	})
	return n, err
}

// Search scans the index and ranks documents by cosine similarity.
// Documents whose dimension differs from the query are skipped.
func (b *BoltDB) Search(query []float32, k int) ([]ScoredDocument, error) {
	if len(query) == 0 {
		return nil, ErrEmptyEmbedding
	}
	if k <= 0 {
		return []ScoredDocument{}, nil
	}

	queryNorm := norm(query)
	var hits []ScoredDocument

	err := b.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(b.bucket).ForEach(func(_, data []byte) error {
			var doc Document
			if err := json.Unmarshal(data, &doc); err != nil {
				return fmt.Errorf("failed to decode document: %w", err)
			}
			if len(doc.Embedding) != len(query) {
				return nil
			}
			hits = append(hits, ScoredDocument{
				Document: doc,
				Score:    cosine(query, doc.Embedding, queryNorm),
			})
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search index: %w", err)
	}

	// Ties keep key order so results are deterministic.
	slices.SortStableFunc(hits, func(a, b ScoredDocument) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	if hits == nil {
		hits = []ScoredDocument{}
	}
	return hits, nil
}

func norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

func cosine(query, doc []float32, queryNorm float64) float64 {
	docNorm := norm(doc)
	if queryNorm == 0 || docNorm == 0 {
		return 0
	}
	var dot float64
	for i := range query {
		dot += float64(query[i]) * float64(doc[i])
	}
	return dot / (queryNorm * docNorm)
}
