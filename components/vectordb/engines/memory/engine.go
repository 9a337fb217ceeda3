package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/agentlab/corag-agents/components/embedder"
	"github.com/agentlab/corag-agents/components/vectordb"
)

// Engine implements the vectordb.Engine interface using in-memory storage.
// It provides thread-safe operations for managing collections and performing
// vector similarity searches without the need for external database systems.
type Engine struct {
	// collections stores all vector collections in memory
	collections *sync.Map
	vectordb.Options
}

var _ vectordb.Engine = (*Engine)(nil)

// Collection is a named set of records, upserted by ID.
type Collection struct {
	records map[string]vectordb.Record
	mu      sync.RWMutex
}

func (c *Collection) AddRecords(records ...vectordb.Record) {
	c.mu.Lock()
	for _, record := range records {
		c.records[record.ID] = record
	}
	c.mu.Unlock()
}

// Records returns a snapshot of the records
func (c *Collection) Records() []vectordb.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ret := make([]vectordb.Record, 0, len(c.records))
	for _, v := range c.records {
		ret = append(ret, v)
	}
	return ret
}

func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// New creates a new in-memory vector database instance.
func New(opts ...vectordb.Option) *Engine {
	ret := &Engine{
		collections: new(sync.Map),
	}
	vectordb.WithEngine(vectordb.Memory)(&ret.Options)
	for _, opt := range opts {
		opt(&ret.Options)
	}
	return ret
}

// HasCollection checks if a collection with the given name exists in the database.
func (e *Engine) HasCollection(name string) bool {
	_, exists := e.collections.Load(name)
	return exists
}

// DropCollection removes a collection and all its data from the database.
func (e *Engine) DropCollection(name string) {
	e.collections.Delete(name)
}

// Collection returns the named collection, creating it on first use.
func (e *Engine) Collection(_ context.Context, name string) *Collection {
	col, _ := e.collections.LoadOrStore(name, &Collection{records: make(map[string]vectordb.Record)})
	return col.(*Collection)
}

func (e *Engine) Count(ctx context.Context, collectionName string) (int, error) {
	return e.Collection(ctx, collectionName).Len(), nil
}

func (e *Engine) Insert(ctx context.Context, collectionName string, records ...vectordb.Record) error {
	col := e.Collection(ctx, collectionName)
	docs := make([]vectordb.Record, 0, len(records))
	for _, record := range records {
		if record.ID == "" {
			record.ID = record.Embedding.UUID()
		}
		docs = append(docs, record)
	}
	col.AddRecords(docs...)
	return nil
}

func (e *Engine) Search(ctx context.Context, vectors []float64, opts ...vectordb.SearchOption) ([]vectordb.Record, error) {
	option := vectordb.NewSearchOptions(opts...)
	col := e.Collection(ctx, option.Collection)
	var records []vectordb.Record
	for _, record := range col.Records() {
		if !recordMatchesFilters(&record, &option) {
			continue
		}
		score, err := embedder.Cosine(vectors, record.Embedding.Embedding)
		if err != nil {
			return nil, err
		}
		if score < e.MinScore {
			continue
		}
		record.Score = score
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Score == records[j].Score {
			return records[i].ID < records[j].ID
		}
		return records[i].Score > records[j].Score
	})
	topK := min(e.ResolveTopK(option.TopK), len(records))
	return records[:topK], nil
}

// recordMatchesFilters checks if a document matches the given filters.
func recordMatchesFilters(record *vectordb.Record, opts *vectordb.SearchOptions) bool {
	// A document's metadata must have *all* the fields in the where clause.
	for k, v := range opts.Meta {
		if record.Embedding.Meta[k] != v {
			return false
		}
	}
	if opts.Include != "" && !strings.Contains(record.Embedding.Object, opts.Include) {
		return false
	}
	if opts.Exclude != "" && strings.Contains(record.Embedding.Object, opts.Exclude) {
		return false
	}
	return true
}
