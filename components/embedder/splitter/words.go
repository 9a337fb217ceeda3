package splitter

import "bufio"

type Words struct {
	Options
}

// NewWords returns a splitter packing whitespace separated words
func NewWords(opts ...Option) *Words {
	return &Words{Options: newOptions(bufio.ScanWords, opts...)}
}
