// Package rag indexes documents into a vector collection and retrieves them for the rag_search tool.
package rag

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/agentlab/corag-agents/components"
	"github.com/agentlab/corag-agents/components/document"
	"github.com/agentlab/corag-agents/components/embedder"
	"github.com/agentlab/corag-agents/components/vectordb"
	"github.com/agentlab/corag-agents/tools/ragsearch"
)

const (
	DefaultBatchSize   = 32
	DefaultConcurrency = 4
)

var ErrNoEmbedder = errors.New("rag: embedder is required")

type Options struct {
	name        string
	collection  string
	embedder    embedder.Embedder
	chunker     embedder.Chunker
	vectordb    vectordb.Engine
	batchSize   int
	concurrency int
	topK        int
	logger      zerolog.Logger
}

// Index chunks, embeds and stores documents in one collection
type Index struct {
	Options
}

type Option func(*Options)

func WithName(name string) Option {
	return func(r *Options) {
		r.name = name
	}
}

func WithCollection(name string) Option {
	return func(r *Options) {
		r.collection = name
	}
}

func WithChunker(chunker embedder.Chunker) Option {
	return func(r *Options) {
		r.chunker = chunker
	}
}

func WithEmbedder(e embedder.Embedder) Option {
	return func(r *Options) {
		r.embedder = e
	}
}

func WithVectorDB(v vectordb.Engine) Option {
	return func(r *Options) {
		r.vectordb = v
	}
}

// WithBatchSize sets how many chunks go into one embedding request
func WithBatchSize(size int) Option {
	return func(r *Options) {
		r.batchSize = size
	}
}

// WithConcurrency sets how many documents are embedded at once
func WithConcurrency(n int) Option {
	return func(r *Options) {
		r.concurrency = n
	}
}

func WithTopK(topK int) Option {
	return func(r *Options) {
		r.topK = topK
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(r *Options) {
		r.logger = l
	}
}

func NewIndex(opts ...Option) (*Index, error) {
	ret := &Index{
		Options: Options{
			collection:  "corag",
			batchSize:   DefaultBatchSize,
			concurrency: DefaultConcurrency,
			topK:        vectordb.DefaultTopK,
			logger:      zerolog.Nop(),
		},
	}
	for _, opt := range opts {
		opt(&ret.Options)
	}
	if ret.embedder == nil {
		return nil, ErrNoEmbedder
	}
	if ret.vectordb == nil {
		return nil, errors.New("rag: vector db is required")
	}
	if ret.concurrency <= 0 {
		ret.concurrency = 1
	}
	return ret, nil
}

func (r *Index) Name() string {
	return r.name
}

func (r *Index) Collection() string {
	return r.collection
}

// AddDocuments chunks and embeds docs concurrently and inserts the chunks.
// It returns the number of stored chunks and the accumulated embedding usage.
func (r *Index) AddDocuments(ctx context.Context, docs ...*document.Document) (int, *components.LLMUsage, error) {
	var (
		mu         sync.Mutex
		total      int
		totalUsage = new(components.LLMUsage)
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for _, doc := range docs {
		g.Go(func() error {
			usage := new(components.LLMUsage)
			n, err := r.addDocument(gctx, doc, usage)
			mu.Lock()
			total += n
			totalUsage.Merge(usage)
			mu.Unlock()
			return err
		})
	}
	err := g.Wait()
	return total, totalUsage, err
}

func (r *Index) addDocument(ctx context.Context, doc *document.Document, usage *components.LLMUsage) (int, error) {
	var parts []string
	if r.chunker != nil {
		parts = r.chunker.SplitText(doc.Content)
	} else {
		parts = []string{doc.Content}
	}
	if len(parts) == 0 {
		return 0, nil
	}
	embeddings, err := embedder.EmbedChunks(ctx, r.embedder, parts, r.batchSize, doc.Meta, usage)
	if err != nil {
		return 0, fmt.Errorf("embed %s: %w", doc.Title(), err)
	}
	records := make([]vectordb.Record, 0, len(embeddings))
	for _, embedding := range embeddings {
		embedding.Meta["chunk"] = strconv.Itoa(embedding.Index)
		records = append(records, vectordb.NewRecord(embedding))
	}
	if err := r.vectordb.Insert(ctx, r.collection, records...); err != nil {
		return 0, fmt.Errorf("insert %s: %w", doc.Title(), err)
	}
	r.logger.Debug().Str("doc", doc.Title()).Int("chunks", len(records)).Msg("indexed")
	return len(records), nil
}

// Search returns the records closest to query
func (r *Index) Search(ctx context.Context, query string, opts ...vectordb.SearchOption) ([]vectordb.Record, *components.LLMUsage, error) {
	var embedding embedder.Embedding
	usage := new(components.LLMUsage)
	if err := r.embedder.Embed(ctx, query, &embedding, usage); err != nil {
		return nil, usage, err
	}
	opts = append([]vectordb.SearchOption{
		vectordb.SearchWithCollection(r.collection),
		vectordb.SearchWithTopK(r.topK),
	}, opts...)
	records, err := r.vectordb.Search(ctx, embedding.Embedding, opts...)
	if err != nil {
		return nil, usage, err
	}
	return records, usage, nil
}

// Retriever returns a ragsearch retriever over the indexed collection
func (r *Index) Retriever(usage *components.LLMUsage) *ragsearch.VectorRetriever {
	return ragsearch.NewVectorRetriever(r.embedder, r.vectordb,
		ragsearch.WithCollection(r.collection),
		ragsearch.WithTopK(r.topK),
		ragsearch.WithUsage(usage),
	)
}
