package document

import (
	"bytes"
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
)

// boilerplate is removed before conversion
const boilerplate = "script, style, noscript, nav, header, footer, iframe, form"

// HTML2MDParser is a parser which parse html content to markdown
type HTML2MDParser struct {
	opts []converter.ConvertOptionFunc
}

var _ Parser = (*HTML2MDParser)(nil)

func NewHTML2MDParser(opts ...converter.ConvertOptionFunc) *HTML2MDParser {
	return &HTML2MDParser{
		opts: opts,
	}
}

// Parse strips page chrome from the html and converts the main content to markdown
func (h *HTML2MDParser) Parse(ctx context.Context, data []byte, meta map[string]string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	doc.Find(boilerplate).Remove()
	root := doc.Find("main").First()
	if root.Length() == 0 {
		root = doc.Find("body").First()
	}
	if root.Length() == 0 {
		root = doc.Selection
	}
	opts := append([]converter.ConvertOptionFunc{converter.WithContext(ctx)}, h.opts...)
	bs, err := htmltomarkdown.ConvertNode(root.Nodes[0], opts...)
	if err != nil {
		return nil, err
	}
	ret, err := newDocument(string(bs), meta)
	if err != nil {
		return nil, err
	}
	if title != "" {
		ret.Meta["title"] = title
	}
	return ret, nil
}
