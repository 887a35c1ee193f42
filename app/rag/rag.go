// Package rag indexes the generated world material in a vector store so
// chapter drafting can pull only the excerpts relevant to each outline entry.
package rag

import (
	"context"

	"GoScribeAI/app/state"
)

type VectorDoc struct {
	ID       string
	Content  string
	Metadata map[string]any
	Vector   []float32
}

type Interface interface {
	IndexBook(ctx context.Context, b *state.Book) error
	Search(ctx context.Context, text string, k int) ([]string, error)
}

type vectorStore interface {
	EnsureCollection(ctx context.Context, vectorSize int) error
	UpsertBatch(ctx context.Context, docs []VectorDoc) error
	Query(ctx context.Context, vector []float32, k int) ([]VectorDoc, error)
	Close() error
}
