package splitter

import (
	"bytes"
	"unicode"
)

type Sentences struct {
	Options
}

// NewSentences returns a splitter packing whole sentences
func NewSentences(opts ...Option) *Sentences {
	return &Sentences{Options: newOptions(ScanSentences, opts...)}
}

func isTerminal(b byte) bool {
	return b == '.' || b == '!' || b == '?'
}

// ScanSentences is a bufio.SplitFunc returning sentences ended by '.', '!' or '?' followed by a space.
// Punctuation inside a token such as "3.14" does not end a sentence.
func ScanSentences(data []byte, atEOF bool) (int, []byte, error) {
	start := 0
	for start < len(data) && unicode.IsSpace(rune(data[start])) {
		start++
	}
	for i := start; i < len(data); i++ {
		if !isTerminal(data[i]) {
			continue
		}
		j := i + 1
		for j < len(data) && isTerminal(data[j]) {
			j++
		}
		if j == len(data) {
			if atEOF {
				return j, data[start:j], nil
			}
			return start, nil, nil
		}
		if unicode.IsSpace(rune(data[j])) {
			return j, data[start:j], nil
		}
		i = j - 1
	}
	if atEOF && start < len(data) {
		return len(data), bytes.TrimRightFunc(data[start:], unicode.IsSpace), nil
	}
	return start, nil, nil
}
