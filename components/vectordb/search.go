package vectordb

import "github.com/agentlab/corag-agents/components/embedder"

type SearchOptions struct {
	Collection string
	TopK       int
	Meta       map[string]string
	Include    string
	Exclude    string
}

type SearchOption func(*SearchOptions)

func SearchWithCollection(name string) SearchOption {
	return func(r *SearchOptions) {
		r.Collection = name
	}
}

func SearchWithTopK(topK int) SearchOption {
	return func(r *SearchOptions) {
		r.TopK = topK
	}
}

func SearchWithMeta(meta map[string]string) SearchOption {
	return func(r *SearchOptions) {
		r.Meta = meta
	}
}

// SearchWithInclude keeps only documents containing v
func SearchWithInclude(v string) SearchOption {
	return func(r *SearchOptions) {
		r.Include = v
	}
}

// SearchWithExclude drops documents containing v
func SearchWithExclude(v string) SearchOption {
	return func(r *SearchOptions) {
		r.Exclude = v
	}
}

// NewSearchOptions applies opts
func NewSearchOptions(opts ...SearchOption) SearchOptions {
	var ret SearchOptions
	for _, opt := range opts {
		opt(&ret)
	}
	return ret
}

// Record represents a single result from a vector similarity search.
type Record struct {
	// ID is the identifier for the result
	ID string
	// Score is the similarity score for the result
	Score float64
	// Embedding embeddings for doc
	Embedding embedder.Embedding
}

// NewRecord wraps an embedding, deriving its id from the content
func NewRecord(e embedder.Embedding) Record {
	return Record{
		ID:        e.UUID(),
		Embedding: e,
	}
}
