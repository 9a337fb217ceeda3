package searxng

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startSearxngServer(t *testing.T, results map[string][]SearchResultItem) (*httptest.Server, func() []string) {
	var (
		mu         sync.Mutex
		categories []string
	)
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "json", q.Get("format"))
		mu.Lock()
		categories = append(categories, q.Get("categories"))
		mu.Unlock()
		if q.Get("q") == "broken" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(searchResponse{
			Query:   q.Get("q"),
			Results: results[q.Get("q")],
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), categories...)
	}
}

func TestSearch(t *testing.T) {
	srv, categories := startSearxngServer(t, map[string][]SearchResultItem{
		"go": {
			{URL: "https://go.dev", Title: "Go", Content: "The Go programming language", Score: 2},
			{URL: "https://example.com/untitled"},
		},
		"golang": {
			{URL: "https://go.dev", Title: "Go again", Score: 1},
			{URL: "https://pkg.go.dev", Title: "Packages", Score: 3},
		},
	})
	client := NewClient(WithBaseURL(srv.URL+"/"), WithMaxResults(5))

	items, err := client.Search(context.Background(), NewsCategory, "go", "golang")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "https://pkg.go.dev", items[0].URL)
	assert.Equal(t, "golang", items[0].Query)
	assert.Equal(t, "Go", items[1].Title)
	assert.Equal(t, []string{NewsCategory, NewsCategory}, categories())

	_, err = client.Search(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoQueries)

	_, err = client.Search(context.Background(), "", "go", "broken")
	assert.ErrorContains(t, err, "non-200")
}

func TestRetrieve(t *testing.T) {
	srv, categories := startSearxngServer(t, map[string][]SearchResultItem{
		"go": {{URL: "https://go.dev", Title: "Go", Content: "The Go programming language"}},
	})
	client := NewClient(WithBaseURL(srv.URL), WithMaxResults(1))
	got, err := client.Retrieve(context.Background(), "go")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go\nhttps://go.dev\nThe Go programming language"}, got)
	assert.Equal(t, []string{GeneralCategory}, categories())
}

func TestTool(t *testing.T) {
	srv, _ := startSearxngServer(t, map[string][]SearchResultItem{
		"go": {{URL: "https://go.dev", Title: "Go"}},
	})
	tool := New(NewClient(WithBaseURL(srv.URL)))
	assert.Equal(t, Name, tool.Definition().Name)

	out, err := tool.Call(context.Background(), `{"queries":["go"]}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"results":[{"url":"https://go.dev","title":"Go","query":"go"}],"category":"general"}`, out)

	_, err = tool.Call(context.Background(), `{"queries":[]}`)
	assert.Error(t, err)
	_, err = tool.Call(context.Background(), `{"queries":["go"],"category":"images"}`)
	assert.Error(t, err)
}
