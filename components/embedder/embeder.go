package embedder

import (
	"context"
	"errors"
	"math"

	"github.com/agentlab/corag-agents/components"
)

var ErrVectorLengthMismatch = errors.New("vector length mismatch")

type Embedder interface {
	Provider() Provider
	Model() string
	Embed(context.Context, string, *Embedding, *components.LLMUsage) error
	BatchEmbed(ctx context.Context, parts []string, usage *components.LLMUsage) ([]Embedding, error)
}

// EmbedChunks embeds chunks in batches of batchSize and tags every embedding with meta.
// Embedding indices follow the chunk order.
func EmbedChunks(ctx context.Context, e Embedder, chunks []string, batchSize int, meta map[string]string, usage *components.LLMUsage) ([]Embedding, error) {
	if batchSize <= 0 {
		batchSize = len(chunks)
	}
	ret := make([]Embedding, 0, len(chunks))
	for offset := 0; offset < len(chunks); offset += batchSize {
		end := min(offset+batchSize, len(chunks))
		list, err := e.BatchEmbed(ctx, chunks[offset:end], usage)
		if err != nil {
			return nil, err
		}
		for _, v := range list {
			v.Index += offset
			v.Meta = make(map[string]string, len(meta)+1)
			for k, val := range meta {
				v.Meta[k] = val
			}
			ret = append(ret, v)
		}
	}
	return ret, nil
}

// DotProduct calculates the dot product of the embedding vector with another
// embedding vector. Both vectors must have the same length; otherwise, an
// ErrVectorLengthMismatch is returned.
func (e *Embedding) DotProduct(other *Embedding) (float64, error) {
	if len(e.Embedding) != len(other.Embedding) {
		return 0, ErrVectorLengthMismatch
	}
	var dotProduct float64
	for i := range e.Embedding {
		dotProduct += e.Embedding[i] * other.Embedding[i]
	}
	return dotProduct, nil
}

// Cosine returns the cosine similarity of two vectors, 0 when either is zero
func Cosine(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrVectorLengthMismatch
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), nil
}
