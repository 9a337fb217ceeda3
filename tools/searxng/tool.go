// Package searxng searches the web through a SearxNG instance, as a retriever and as a tool
package searxng

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/agentlab/corag-agents/tools"
	"github.com/agentlab/corag-agents/tools/ragsearch"
)

// Name is the tool name
const Name = "web_search"

const DefaultMaxResults = 10

var ErrNoQueries = errors.New("no search queries")

type Category = string

const (
	GeneralCategory     Category = "general"
	NewsCategory        Category = "news"
	SocialMediaCategory Category = "social_media"
)

// Input for searching for information, news, references, and other content using SearxNG.
type Input struct {
	// Queries list of search queries.
	Queries []string `json:"queries" jsonschema:"title=queries,description=List of search queries." validate:"required,min=1,dive,required"`
	// Category of the search queries.
	Category Category `json:"category,omitempty" jsonschema:"title=category,enum=general,enum=news,enum=social_media,default=general,description=Category of the search queries." validate:"omitempty,oneof=general news social_media"`
}

// SearchResultItem represents a single search result item
type SearchResultItem struct {
	URL     string  `json:"url"`
	Title   string  `json:"title"`
	Content string  `json:"content,omitempty"`
	Score   float64 `json:"score,omitempty"`
	// Query the query used to obtain this result
	Query string `json:"query"`
}

// String renders the item as a text snippet
func (s SearchResultItem) String() string {
	parts := make([]string, 0, 3)
	for _, v := range []string{s.Title, s.URL, s.Content} {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, "\n")
}

// searchResponse is the json body returned by /search
type searchResponse struct {
	Query           string             `json:"query"`
	NumberOfResults int                `json:"number_of_results"`
	Results         []SearchResultItem `json:"results"`
}

// Output of the search tool
type Output struct {
	Results  []SearchResultItem `json:"results"`
	Category Category           `json:"category,omitempty"`
}

// Client queries the json api of a SearxNG instance
type Client struct {
	language   string
	baseURL    string
	category   Category
	maxResults int
	httpClient *http.Client
}

var _ ragsearch.Retriever = (*Client)(nil)

func NewClient(opts ...Option) *Client {
	ret := new(Client)
	for _, opt := range opts {
		opt(ret)
	}
	if ret.maxResults <= 0 {
		ret.maxResults = DefaultMaxResults
	}
	if ret.category == "" {
		ret.category = GeneralCategory
	}
	if ret.httpClient == nil {
		ret.httpClient = http.DefaultClient
	}
	return ret
}

// Search runs every query concurrently and merges the results.
// Results are deduplicated by URL, ordered by score and capped at the max results.
func (c *Client) Search(ctx context.Context, category Category, queries ...string) ([]SearchResultItem, error) {
	if len(queries) == 0 {
		return nil, ErrNoQueries
	}
	if category == "" {
		category = c.category
	}
	batches := make([][]SearchResultItem, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	for idx, query := range queries {
		g.Go(func() error {
			items, err := c.fetch(gctx, query, category)
			if err != nil {
				return err
			}
			batches[idx] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	ret := make([]SearchResultItem, 0, c.maxResults)
	for _, items := range batches {
		for _, item := range items {
			if item.URL == "" || item.Title == "" {
				continue
			}
			if _, found := seen[item.URL]; found {
				continue
			}
			seen[item.URL] = struct{}{}
			ret = append(ret, item)
		}
	}
	sort.SliceStable(ret, func(i, j int) bool {
		return ret[i].Score > ret[j].Score
	})
	if len(ret) > c.maxResults {
		ret = ret[:c.maxResults]
	}
	return ret, nil
}

// Retrieve searches the configured category and returns each result as a snippet
func (c *Client) Retrieve(ctx context.Context, query string) ([]string, error) {
	if query == "" {
		return nil, ragsearch.ErrEmptyQuery
	}
	items, err := c.Search(ctx, c.category, query)
	if err != nil {
		return nil, err
	}
	ret := make([]string, 0, len(items))
	for _, item := range items {
		ret = append(ret, item.String())
	}
	return ret, nil
}

func (c *Client) fetch(ctx context.Context, query string, category Category) ([]SearchResultItem, error) {
	values := url.Values{}
	values.Set("q", query)
	values.Set("safesearch", "0")
	values.Set("format", "json")
	if c.language != "" {
		values.Set("language", c.language)
	}
	if category != "" {
		values.Set("categories", category)
	}
	searchURL := fmt.Sprintf("%s/search?%s", c.baseURL, values.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("query searxng: %w", err)
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 response from searxng: %d", httpResp.StatusCode)
	}
	var resp searchResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode searxng response: %w", err)
	}
	for idx := range resp.Results {
		resp.Results[idx].Query = query
	}
	return resp.Results, nil
}

// New returns the web_search tool over client
func New(client *Client, opts ...tools.Option) *tools.Func[Input, Output] {
	opts = append([]tools.Option{
		tools.WithDescription("Search the web for information, news and references. Returns result titles, URLs and content snippets."),
	}, opts...)
	return tools.NewFunc(Name, func(ctx context.Context, in *Input) (*Output, error) {
		category := in.Category
		if category == "" {
			category = GeneralCategory
		}
		items, err := client.Search(ctx, category, in.Queries...)
		if err != nil {
			return nil, err
		}
		return &Output{Results: items, Category: category}, nil
	}, opts...)
}
