package webscraper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html>
<head>
  <title>Regions and nations</title>
  <meta name="author" content="Jane Doe">
  <meta name="description" content="How regions group nations">
  <meta property="og:site_name" content="TPC-H notes">
</head>
<body>
  <nav><a href="/">Home</a></nav>
  <main>
    <h1>Regions</h1>
    <p>Every nation belongs to one <a href="/region">region</a>.</p>


    <script>alert("x")</script>
  </main>
  <footer>copyright</footer>
</body>
</html>`

func newServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/page", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(page))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestScrape(t *testing.T) {
	srv := newServer(t)
	scraper := NewScraper(WithHTTPClient(srv.Client()))

	out, err := scraper.Scrape(context.Background(), &Input{URL: srv.URL + "/page"})
	require.NoError(t, err)
	assert.Contains(t, out.Content, "# Regions")
	assert.Contains(t, out.Content, "Every nation belongs to one region.")
	for _, chrome := range []string{"Home", "alert", "copyright", "]("} {
		assert.NotContains(t, out.Content, chrome)
	}
	assert.NotContains(t, out.Content, "\n\n\n")
	require.NotNil(t, out.Metadata)
	assert.Equal(t, "Regions and nations", out.Metadata.Title)
	assert.Equal(t, "Jane Doe", out.Metadata.Author)
	assert.Equal(t, "How regions group nations", out.Metadata.Description)
	assert.Equal(t, "TPC-H notes", out.Metadata.SiteName)
	assert.Equal(t, srv.Listener.Addr().String(), out.Metadata.Domain)

	linked, err := scraper.Scrape(context.Background(), &Input{URL: srv.URL + "/page", IncludeLinks: true})
	require.NoError(t, err)
	assert.Contains(t, linked.Content, "[region]("+srv.URL+"/region)")
	assert.NotContains(t, linked.Content, "Home")

	_, err = scraper.Scrape(context.Background(), &Input{URL: srv.URL + "/missing"})
	assert.ErrorContains(t, err, "404")
}

func TestTool(t *testing.T) {
	srv := newServer(t)
	tool := New(NewScraper(WithHTTPClient(srv.Client())))
	assert.Equal(t, Name, tool.Definition().Name)

	raw, err := tool.Call(context.Background(), `{"url":"`+srv.URL+`/page"}`)
	require.NoError(t, err)
	var out Output
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	assert.Contains(t, out.Content, "Every nation belongs to one region.")

	_, err = tool.Call(context.Background(), `{"url":"not a url"}`)
	assert.Error(t, err)
}
