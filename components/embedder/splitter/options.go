package splitter

import (
	"bufio"
	"io"
	"strings"

	"github.com/agentlab/corag-agents/components/embedder"
)

// Options packs scanned parts into chunks of at most chunkSize tokens.
// Consecutive chunks share trailing parts worth about overlap tokens.
type Options struct {
	chunkSize    int
	overlap      int
	tokenCounter TokenCounter
	split        bufio.SplitFunc
	delimiter    string
}

var _ embedder.Chunker = (*Options)(nil)

// Option is a function type for configuring chunkcer Options.
// This follows the functional options pattern for clean and flexible configuration.
type Option func(*Options)

func WithChunkSize(size int) Option {
	return func(o *Options) {
		o.chunkSize = size
	}
}

func WithOverlap(overlap int) Option {
	return func(o *Options) {
		o.overlap = overlap
	}
}

func WithTokenCounter(counter TokenCounter) Option {
	return func(o *Options) {
		o.tokenCounter = counter
	}
}

func newOptions(split bufio.SplitFunc, opts ...Option) Options {
	ret := Options{
		chunkSize: 200,
		split:     split,
		delimiter: " ",
	}
	for _, opt := range opts {
		opt(&ret)
	}
	if ret.tokenCounter == nil {
		ret.tokenCounter = new(WordsTokenCounter)
	}
	if ret.chunkSize <= 0 {
		ret.chunkSize = 200
	}
	return ret
}

// Split reads r to the end and returns its chunks
func (o *Options) Split(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	scanner.Split(o.split)
	var (
		parts  []string
		tokens []int
	)
	for scanner.Scan() {
		part := scanner.Text()
		if part == "" {
			continue
		}
		parts = append(parts, part)
		tokens = append(tokens, o.tokenCounter.Count([]byte(part)))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return o.pack(parts, tokens), nil
}

func (o *Options) pack(parts []string, tokens []int) []string {
	var chunks []string
	for start := 0; start < len(parts); {
		end, size := start, 0
		for end < len(parts) {
			if size > 0 && size+tokens[end] > o.chunkSize {
				break
			}
			size += tokens[end]
			end++
		}
		chunks = append(chunks, strings.Join(parts[start:end], o.delimiter))
		if end >= len(parts) {
			break
		}
		next, shared := end, 0
		for next > start+1 && shared < o.overlap {
			next--
			shared += tokens[next]
		}
		start = next
	}
	return chunks
}

func (o *Options) SplitText(txt string) []string {
	chunks, err := o.Split(strings.NewReader(txt))
	if err != nil {
		return nil
	}
	return chunks
}

func (o *Options) TokenCount(txt string) int {
	return o.tokenCounter.Count([]byte(txt))
}
