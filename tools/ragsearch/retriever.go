package ragsearch

import (
	"context"
	"errors"
	"fmt"

	"github.com/agentlab/corag-agents/components"
	"github.com/agentlab/corag-agents/components/embedder"
	"github.com/agentlab/corag-agents/components/vectordb"
)

var ErrEmptyQuery = errors.New("query is empty")

// Retriever returns text snippets relevant to a query, most relevant first
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]string, error)
}

// RetrieverFunc adapts a function to Retriever
type RetrieverFunc func(ctx context.Context, query string) ([]string, error)

func (f RetrieverFunc) Retrieve(ctx context.Context, query string) ([]string, error) {
	return f(ctx, query)
}

// VectorRetriever embeds the query and searches a vectordb collection
type VectorRetriever struct {
	embedder   embedder.Embedder
	engine     vectordb.Engine
	collection string
	topK       int
	usage      *components.LLMUsage
}

var _ Retriever = (*VectorRetriever)(nil)

type VectorOption func(*VectorRetriever)

func WithCollection(name string) VectorOption {
	return func(r *VectorRetriever) {
		r.collection = name
	}
}

func WithTopK(topK int) VectorOption {
	return func(r *VectorRetriever) {
		r.topK = topK
	}
}

// WithUsage accumulates embedding token usage into usage
func WithUsage(usage *components.LLMUsage) VectorOption {
	return func(r *VectorRetriever) {
		r.usage = usage
	}
}

func NewVectorRetriever(e embedder.Embedder, engine vectordb.Engine, opts ...VectorOption) *VectorRetriever {
	ret := &VectorRetriever{
		embedder: e,
		engine:   engine,
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

func (r *VectorRetriever) Retrieve(ctx context.Context, query string) ([]string, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}
	var embedding embedder.Embedding
	if err := r.embedder.Embed(ctx, query, &embedding, r.usage); err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	records, err := r.engine.Search(ctx, embedding.Embedding,
		vectordb.SearchWithCollection(r.collection),
		vectordb.SearchWithTopK(r.topK),
	)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", r.collection, err)
	}
	ret := make([]string, 0, len(records))
	for _, record := range records {
		ret = append(ret, record.Embedding.Object)
	}
	return ret, nil
}
