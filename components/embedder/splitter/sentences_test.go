package splitter

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanSentences(t *testing.T) {
	scanner := bufio.NewScanner(strings.NewReader("Pi is 3.14 roughly. Really?! Yes...  trailing words"))
	scanner.Split(ScanSentences)
	var got []string
	for scanner.Scan() {
		got = append(got, scanner.Text())
	}
	require.NoError(t, scanner.Err())
	assert.Equal(t, []string{"Pi is 3.14 roughly.", "Really?!", "Yes...", "trailing words"}, got)
}

func TestSentences(t *testing.T) {
	input := "Basic chunking one. Chunking two? Chunking three!"
	tests := []struct {
		name       string
		chunkSize  int
		overlap    int
		wantChunks []string
	}{
		{
			name:       "one sentence per chunk",
			chunkSize:  1,
			wantChunks: []string{"Basic chunking one.", "Chunking two?", "Chunking three!"},
		},
		{
			name:       "two sentences fit",
			chunkSize:  5,
			wantChunks: []string{"Basic chunking one. Chunking two?", "Chunking three!"},
		},
		{
			name:       "with overlap",
			chunkSize:  5,
			overlap:    1,
			wantChunks: []string{"Basic chunking one. Chunking two?", "Chunking two? Chunking three!"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splitter := NewSentences(WithChunkSize(tt.chunkSize), WithOverlap(tt.overlap))
			assert.Equal(t, tt.wantChunks, splitter.SplitText(input))
			assert.Equal(t, 3, splitter.TokenCount(tt.wantChunks[0][:19]))
		})
	}
}
