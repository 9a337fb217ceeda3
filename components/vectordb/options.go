package vectordb

type Options struct {
	EngineType EngineType // Database type (e.g., "chromem", "memory")
	TopK       int        // Maximum number of results to return
	MinScore   float64    // Minimum similarity score threshold
}

// Option is a function type for configuring VectorDB instances.
// It follows the functional options pattern for clean and flexible configuration.
type Option func(*Options)

// WithEngine sets the database type.
// Supported types:
// - "memory": In-memory database for testing
// - "chromem": chromem-go backed storage, optionally persisted to disk
func WithEngine(engine EngineType) Option {
	return func(c *Options) {
		c.EngineType = engine
	}
}

// WithTopK sets the default maximum number of results to return.
// The actual number of results may be less if MinScore filtering is applied.
func WithTopK(k int) Option {
	return func(c *Options) {
		c.TopK = k
	}
}

// WithMinScore sets the minimum similarity score threshold.
// Results with scores below this threshold will be filtered out.
func WithMinScore(score float64) Option {
	return func(c *Options) {
		c.MinScore = score
	}
}

// DefaultTopK is used when neither the engine nor the search sets TopK
const DefaultTopK = 5

// ResolveTopK picks the search topK, falling back to the engine default
func (o Options) ResolveTopK(search int) int {
	if search > 0 {
		return search
	}
	if o.TopK > 0 {
		return o.TopK
	}
	return DefaultTopK
}
