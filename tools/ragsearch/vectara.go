package ragsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultVectaraURL is the Vectara REST api root
const DefaultVectaraURL = "https://api.vectara.io"

// Vectara retrieves snippets from a Vectara corpus through the v2 query api
type Vectara struct {
	client               *http.Client
	baseURL              string
	apiKey               string
	customerID           string
	corpusKey            string
	limit                int
	lexicalInterpolation float64
	rerankerID           string
}

var _ Retriever = (*Vectara)(nil)

type VectaraOption func(*Vectara)

func WithHTTPClient(client *http.Client) VectaraOption {
	return func(v *Vectara) {
		v.client = client
	}
}

func WithBaseURL(baseURL string) VectaraOption {
	return func(v *Vectara) {
		v.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func WithCustomerID(id string) VectaraOption {
	return func(v *Vectara) {
		v.customerID = id
	}
}

func WithLimit(limit int) VectaraOption {
	return func(v *Vectara) {
		v.limit = limit
	}
}

func WithLexicalInterpolation(lambda float64) VectaraOption {
	return func(v *Vectara) {
		v.lexicalInterpolation = lambda
	}
}

func WithReranker(id string) VectaraOption {
	return func(v *Vectara) {
		v.rerankerID = id
	}
}

func NewVectara(apiKey string, corpusKey string, opts ...VectaraOption) *Vectara {
	ret := &Vectara{
		apiKey:               apiKey,
		corpusKey:            corpusKey,
		baseURL:              DefaultVectaraURL,
		limit:                25,
		lexicalInterpolation: 0.005,
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.client == nil {
		ret.client = &http.Client{Timeout: 60 * time.Second}
	}
	return ret
}

type vectaraCorpus struct {
	CorpusKey            string  `json:"corpus_key"`
	MetadataFilter       string  `json:"metadata_filter"`
	LexicalInterpolation float64 `json:"lexical_interpolation"`
}

type vectaraContext struct {
	SentencesBefore int `json:"sentences_before"`
	SentencesAfter  int `json:"sentences_after"`
}

type vectaraReranker struct {
	Type       string `json:"type"`
	RerankerID string `json:"reranker_id"`
}

type vectaraSearch struct {
	Corpora              []vectaraCorpus  `json:"corpora"`
	Offset               int              `json:"offset"`
	Limit                int              `json:"limit"`
	ContextConfiguration vectaraContext   `json:"context_configuration"`
	Reranker             *vectaraReranker `json:"reranker,omitempty"`
}

type vectaraRequest struct {
	Query          string        `json:"query"`
	Search         vectaraSearch `json:"search"`
	StreamResponse bool          `json:"stream_response"`
}

type vectaraResponse struct {
	SearchResults []struct {
		Text  string  `json:"text"`
		Score float64 `json:"score"`
	} `json:"search_results"`
	Messages []string `json:"messages,omitempty"`
}

// VectaraError is a non 2xx answer from the api
type VectaraError struct {
	StatusCode int
	Body       string
}

func (e *VectaraError) Error() string {
	return fmt.Sprintf("vectara: status %d: %s", e.StatusCode, e.Body)
}

func (v *Vectara) Retrieve(ctx context.Context, query string) ([]string, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}
	payload := vectaraRequest{
		Query: query,
		Search: vectaraSearch{
			Corpora: []vectaraCorpus{{
				CorpusKey:            v.corpusKey,
				LexicalInterpolation: v.lexicalInterpolation,
			}},
			Limit: v.limit,
			ContextConfiguration: vectaraContext{
				SentencesBefore: 2,
				SentencesAfter:  2,
			},
		},
	}
	if v.rerankerID != "" {
		payload.Search.Reranker = &vectaraReranker{
			Type:       "customer_reranker",
			RerankerID: v.rerankerID,
		}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL+"/v2/query", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-key", v.apiKey)
	if v.customerID != "" {
		req.Header.Set("customer-id", v.customerID)
	}
	resp, err := v.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bs, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &VectaraError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(bs))}
	}
	var res vectaraResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("vectara: decode response: %w", err)
	}
	ret := make([]string, 0, len(res.SearchResults))
	for _, r := range res.SearchResults {
		ret = append(ret, r.Text)
	}
	return ret, nil
}
