// Package webscraper turns web pages into markdown for agents
package webscraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/PuerkitoBio/goquery"

	"github.com/agentlab/corag-agents/tools"
)

// Name is the tool name
const Name = "scrape_page"

type Input struct {
	// URL of the webpage to scrape.
	URL string `json:"url" jsonschema:"title=url,description=URL of the webpage to scrape." validate:"required,http_url"`
	// IncludeLinks Whether to preserve hyperlinks in the markdown output.
	IncludeLinks bool `json:"include_links,omitempty" jsonschema:"title=include_links,description=Whether to preserve hyperlinks in the markdown output."`
}

// Metadata of a scraped page
type Metadata struct {
	Title       string `json:"title,omitempty"`
	Author      string `json:"author,omitempty"`
	Description string `json:"description,omitempty"`
	Keywords    string `json:"keywords,omitempty"`
	SiteName    string `json:"sitename,omitempty"`
	Domain      string `json:"domain,omitempty"`
}

type Output struct {
	// Content The scraped content in markdown format.
	Content  string    `json:"content"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

// contentCandidates are tried in order, the first match holds the main content
var contentCandidates = []string{
	"main",
	"article",
	"#content, #main",
	".content, .main",
	"body",
}

var blankLines = regexp.MustCompile(`\n{3,}`)

// Scraper downloads a page and extracts its main content as markdown
type Scraper struct {
	userAgent        string
	timeout          time.Duration
	maxContentLength int64
	httpClient       *http.Client
}

func NewScraper(opts ...Option) *Scraper {
	ret := new(Scraper)
	for _, opt := range opts {
		opt(ret)
	}
	if ret.userAgent == "" {
		ret.userAgent = DefaultUserAgent
	}
	if ret.timeout <= 0 {
		ret.timeout = DefaultTimeout
	}
	if ret.maxContentLength <= 0 {
		ret.maxContentLength = DefaultMaxContentLength
	}
	if ret.httpClient == nil {
		ret.httpClient = &http.Client{Timeout: ret.timeout}
	}
	return ret
}

// Scrape fetches input.URL and converts its main content to markdown
func (s *Scraper) Scrape(ctx context.Context, input *Input) (*Output, error) {
	parsedURL, err := url.ParseRequestURI(input.URL)
	if err != nil {
		return nil, err
	}
	doc, err := s.fetch(ctx, input.URL)
	if err != nil {
		return nil, err
	}
	meta := extractMetadata(doc)
	meta.Domain = parsedURL.Host
	content := extractMainContent(doc, input.IncludeLinks)
	markdown, err := htmltomarkdown.ConvertString(content,
		converter.WithContext(ctx),
		converter.WithDomain(fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)),
	)
	if err != nil {
		return nil, err
	}
	return &Output{
		Content:  cleanMarkdown(markdown),
		Metadata: meta,
	}, nil
}

func (s *Scraper) fetch(ctx context.Context, link string) (*goquery.Document, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("User-Agent", s.userAgent)
	httpReq.Header.Set("Accept", DefaultAccept)
	httpResp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %s", link, httpResp.Status)
	}
	return goquery.NewDocumentFromReader(io.LimitReader(httpResp.Body, s.maxContentLength))
}

func extractMetadata(doc *goquery.Document) *Metadata {
	meta := &Metadata{
		Title: strings.TrimSpace(doc.Find("head title").First().Text()),
	}
	meta.Author, _ = doc.Find("meta[name='author']").Attr("content")
	meta.Description, _ = doc.Find("meta[name='description']").Attr("content")
	meta.Keywords, _ = doc.Find("meta[name='keywords']").Attr("content")
	meta.SiteName, _ = doc.Find("meta[property='og:site_name']").Attr("content")
	return meta
}

// extractMainContent strips page chrome and returns the html of the best content candidate
func extractMainContent(doc *goquery.Document, includeLinks bool) string {
	doc.Find("script, style, noscript, nav, header, footer, iframe").Remove()
	if !includeLinks {
		doc.Find("a").Each(func(_ int, a *goquery.Selection) {
			if children := a.Contents(); children.Length() > 0 {
				children.Unwrap()
				return
			}
			a.Remove()
		})
	}
	for _, selector := range contentCandidates {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if html, err := sel.Html(); err == nil && strings.TrimSpace(html) != "" {
			return html
		}
	}
	html, _ := doc.Html()
	return html
}

func cleanMarkdown(content string) string {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	content = blankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(content) + "\n"
}

// New returns the scrape_page tool
func New(scraper *Scraper, opts ...tools.Option) *tools.Func[Input, Output] {
	if scraper == nil {
		scraper = NewScraper()
	}
	opts = append([]tools.Option{
		tools.WithDescription("Fetch a web page and return its main content as markdown together with the page metadata."),
	}, opts...)
	return tools.NewFunc(Name, scraper.Scrape, opts...)
}
