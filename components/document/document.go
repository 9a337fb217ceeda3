package document

import (
	"errors"
	"strings"
)

var (
	ErrUnsupported = errors.New("unsupported document type")
	ErrEmpty       = errors.New("document is empty")
)

// Document is a text document container with metadata
type Document struct {
	Content string
	Meta    map[string]string
}

// Title returns the document title, falling back to its source
func (d *Document) Title() string {
	if v := d.Meta["title"]; v != "" {
		return v
	}
	return d.Meta["source"]
}

func newDocument(content string, meta map[string]string) (*Document, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmpty
	}
	ret := &Document{
		Content: content,
		Meta:    make(map[string]string, len(meta)+1),
	}
	for k, v := range meta {
		ret.Meta[k] = v
	}
	return ret, nil
}
