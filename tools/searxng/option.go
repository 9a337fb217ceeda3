package searxng

import (
	"net/http"
	"strings"
)

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func WithLanguage(lang string) Option {
	return func(c *Client) {
		c.language = lang
	}
}

// WithMaxResults caps the number of results per query
func WithMaxResults(n int) Option {
	return func(c *Client) {
		c.maxResults = n
	}
}

// WithCategory sets the category Retrieve searches in
func WithCategory(category Category) Option {
	return func(c *Client) {
		c.category = category
	}
}

func WithHTTPClient(clt *http.Client) Option {
	return func(c *Client) {
		c.httpClient = clt
	}
}
