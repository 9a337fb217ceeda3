package embedder

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentlab/corag-agents/components"
)

type lengthEmbedder struct {
	Options
	calls int
}

func (e *lengthEmbedder) Embed(ctx context.Context, text string, embedding *Embedding, usage *components.LLMUsage) error {
	embedding.Object = text
	embedding.Embedding = []float64{float64(len(text)), 1}
	return nil
}

func (e *lengthEmbedder) BatchEmbed(ctx context.Context, parts []string, usage *components.LLMUsage) ([]Embedding, error) {
	e.calls++
	ret := make([]Embedding, 0, len(parts))
	for idx, part := range parts {
		var v Embedding
		e.Embed(ctx, part, &v, usage)
		v.Index = idx
		ret = append(ret, v)
	}
	return ret, nil
}

func TestEmbedChunks(t *testing.T) {
	e := new(lengthEmbedder)
	chunks := []string{"a", "bb", "ccc", "dddd", "eeeee"}
	list, err := EmbedChunks(context.Background(), e, chunks, 2, map[string]string{"source": "doc.md"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, e.calls)
	require.Len(t, list, 5)
	for idx, v := range list {
		assert.Equal(t, idx, v.Index)
		assert.Equal(t, chunks[idx], v.Object)
		assert.Equal(t, "doc.md", v.Meta["source"])
	}
}

func TestUUIDStable(t *testing.T) {
	a := Embedding{Object: "text", Meta: map[string]string{"a": "1", "b": "2", "c": "3"}}
	b := Embedding{Object: "text", Meta: map[string]string{"c": "3", "b": "2", "a": "1"}}
	assert.Equal(t, a.UUID(), b.UUID())
	assert.NotEqual(t, a.UUID(), Embedding{Object: strings.ToUpper("text")}.UUID())
}

func TestCosine(t *testing.T) {
	v, err := Cosine([]float64{1, 0}, []float64{1, 0})
	require.NoError(t, err)
	assert.InDelta(t, 1, v, 1e-9)
	v, err = Cosine([]float64{1, 0}, []float64{0, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0, v, 1e-9)
	_, err = Cosine([]float64{1}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrVectorLengthMismatch)

	a := &Embedding{Embedding: []float64{1, 2}}
	dot, err := a.DotProduct(&Embedding{Embedding: []float64{3, 4}})
	require.NoError(t, err)
	assert.Equal(t, 11.0, dot)
}
