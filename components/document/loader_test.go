package document

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html>
<html>
<head><title>Solar System</title><style>body{color:red}</style></head>
<body>
<nav><a href="/">Home</a></nav>
<main>
<h1>Planets</h1>
<p>Mars is the <strong>fourth</strong> planet.</p>
<script>alert("x")</script>
</main>
</body>
</html>`

func TestParseHTML(t *testing.T) {
	doc, err := Parse(context.Background(), "page.html", []byte(page), map[string]string{"source": "page.html"})
	require.NoError(t, err)
	assert.Equal(t, "Solar System", doc.Title())
	assert.Contains(t, doc.Content, "# Planets")
	assert.Contains(t, doc.Content, "**fourth**")
	assert.NotContains(t, doc.Content, "alert")
	assert.NotContains(t, doc.Content, "Home")
}

func TestDetect(t *testing.T) {
	_, mime, err := Detect("noext", []byte(page))
	require.NoError(t, err)
	assert.Contains(t, mime, "text/html")

	parser, _, err := Detect("notes", []byte("plain words here"))
	require.NoError(t, err)
	assert.IsType(t, TextParser{}, parser)

	_, _, err = Detect("image", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestLoadFileAndWalk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("# A\n\nalpha"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.txt"), []byte("   "), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "HEAD"), []byte("ref"), 0o644))

	files, err := Walk(dir)
	require.NoError(t, err)
	assert.Len(t, files, 2)

	doc, err := LoadFile(context.Background(), filepath.Join(dir, "a.md"))
	require.NoError(t, err)
	assert.Equal(t, "# A\n\nalpha", doc.Content)
	assert.Equal(t, "a.md", doc.Meta["filename"])
	assert.Equal(t, "text/plain", doc.Meta["mime"])

	_, err = LoadFile(context.Background(), filepath.Join(dir, "sub", "b.txt"))
	assert.ErrorIs(t, err, ErrEmpty)
	_, err = LoadFile(context.Background(), dir)
	assert.Error(t, err)
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(page))
	}))
	defer srv.Close()

	doc, err := Fetch(context.Background(), srv.Client(), srv.URL+"/planets")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/planets", doc.Meta["source"])
	assert.Contains(t, doc.Content, "Mars")

	_, err = Fetch(context.Background(), srv.Client(), srv.URL+"/missing")
	assert.Error(t, err)
}
