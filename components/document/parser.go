package document

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Parser turns raw bytes into document text
type Parser interface {
	Parse(ctx context.Context, data []byte, meta map[string]string) (*Document, error)
}

// TextParser keeps plain text and markdown as they are
type TextParser struct{}

var _ Parser = (*TextParser)(nil)

func (TextParser) Parse(_ context.Context, data []byte, meta map[string]string) (*Document, error) {
	return newDocument(string(bytes.ToValidUTF8(data, []byte("�"))), meta)
}

var textExtensions = map[string]struct{}{
	".txt":      {},
	".md":       {},
	".markdown": {},
	".rst":      {},
	".csv":      {},
	".json":     {},
}

var htmlExtensions = map[string]struct{}{
	".html": {},
	".htm":  {},
}

// Detect picks a parser from the file name extension, falling back to content sniffing
func Detect(name string, data []byte) (Parser, string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := htmlExtensions[ext]; ok {
		return NewHTML2MDParser(), "text/html", nil
	}
	if _, ok := textExtensions[ext]; ok {
		return TextParser{}, "text/plain", nil
	}
	mime := mimetype.Detect(data)
	// text/html descends from text/plain, so it is checked first
	if mime.Is("text/html") {
		return NewHTML2MDParser(), mime.String(), nil
	}
	for m := mime; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return TextParser{}, mime.String(), nil
		}
	}
	return nil, mime.String(), fmt.Errorf("%w: %s", ErrUnsupported, mime.String())
}

// Parse detects the content type of data and parses it
func Parse(ctx context.Context, name string, data []byte, meta map[string]string) (*Document, error) {
	parser, mime, err := Detect(name, data)
	if err != nil {
		return nil, err
	}
	doc, err := parser.Parse(ctx, data, meta)
	if err != nil {
		return nil, err
	}
	doc.Meta["mime"] = mime
	return doc, nil
}
