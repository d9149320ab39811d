// Package database provides the persistent vector index used for retrieval.
package database

import (
	"errors"
	"time"
)

var (
	// ErrEmptyEmbedding is returned when a document or query carries no vector.
	ErrEmptyEmbedding = errors.New("embedding is empty")
	// ErrInvalidDocument is returned for documents without an ID.
	ErrInvalidDocument = errors.New("document id is required")
)

// Document is one indexed movie record with its embedding.
type Document struct {
	ID        string    `json:"id"`
	TMDBID    int       `json:"tmdb_id"`
	Title     string    `json:"title"`
	Overview  string    `json:"overview"`
	Content   string    `json:"content"`
	Embedding []float32 `json:"embedding"`
	IndexedAt time.Time `json:"indexed_at"`
}

// ScoredDocument is a search hit with its cosine similarity to the query.
type ScoredDocument struct {
	Document
	Score float64
}

// Database defines the interface for vector index operations.
type Database interface {
	// UpsertDocuments stores documents, replacing any with the same ID
	UpsertDocuments(docs []Document) error
	// GetDocument returns nil without error when the ID is unknown
	GetDocument(id string) (*Document, error)
	// DeleteDocument removes a document by ID
	DeleteDocument(id string) error
	// Search returns up to k documents ranked by cosine similarity
	Search(query []float32, k int) ([]ScoredDocument, error)
	// Count returns the number of indexed documents
	Count() (int, error)
	// Close closes the database connection
	Close() error
}
