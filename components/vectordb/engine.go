package vectordb

import (
	"context"
)

type EngineType string

const (
	Memory  EngineType = "memory"
	Chromem EngineType = "chromem"
)

// Engine stores embeddings in named collections and answers similarity queries.
// Search returns records ordered by descending Score, a cosine similarity.
type Engine interface {
	Insert(ctx context.Context, collection string, records ...Record) error
	Search(context.Context, []float64, ...SearchOption) ([]Record, error)
	Count(ctx context.Context, collection string) (int, error)
}
