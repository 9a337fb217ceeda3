package webscraper

import (
	"net/http"
	"time"
)

const (
	DefaultUserAgent        = "Mozilla/5.0 (compatible; corag-agents/1.0; +https://github.com/agentlab/corag-agents)"
	DefaultAccept           = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	DefaultTimeout          = 30 * time.Second
	DefaultMaxContentLength = 1_000_000
)

type Option func(*Scraper)

func WithUserAgent(ua string) Option {
	return func(s *Scraper) {
		s.userAgent = ua
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(s *Scraper) {
		s.timeout = timeout
	}
}

// WithMaxContentLength caps the bytes read from a page
func WithMaxContentLength(l int64) Option {
	return func(s *Scraper) {
		s.maxContentLength = l
	}
}

func WithHTTPClient(clt *http.Client) Option {
	return func(s *Scraper) {
		s.httpClient = clt
	}
}
