package jsondb

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentlab/corag-agents/tools"
)

const restaurant = `{
  "tables": [
    {"id": 1, "seats": 4, "reserved_by": null},
    {"id": 2, "seats": 2, "reserved_by": "Ann"}
  ],
  "menu": {"soup": 7.5}
}`

func newStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte(restaurant), 0o644))
	store, err := Open(path)
	require.NoError(t, err)
	return store
}

func TestOpenCreates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.json")
	store, err := Open(path)
	require.NoError(t, err)
	v, err := store.Get(nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, v)
}

func TestGet(t *testing.T) {
	store := newStore(t)
	v, err := store.Get([]string{"tables", "1", "reserved_by"})
	require.NoError(t, err)
	assert.Equal(t, "Ann", v)

	v, err = store.Get([]string{"tables", "0", "id"})
	require.NoError(t, err)
	assert.Equal(t, json.Number("1"), v)

	_, err = store.Get([]string{"tables", "5"})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get([]string{"tables", "first"})
	assert.ErrorIs(t, err, ErrInvalidPath)
	_, err = store.Get([]string{"menu", "soup", "price"})
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestSet(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set([]string{"tables", "0", "reserved_by"}, "Bob"))
	require.NoError(t, store.Set([]string{"hours", "monday"}, "9-17"))

	v, err := store.Get([]string{"tables", "0", "reserved_by"})
	require.NoError(t, err)
	assert.Equal(t, "Bob", v)
	v, err = store.Get([]string{"hours", "monday"})
	require.NoError(t, err)
	assert.Equal(t, "9-17", v)

	// integers are written back unchanged
	bs, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(bs), `"seats": 4`)
}

func TestAppendAndDelete(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Append([]string{"tables"}, map[string]any{"id": 3}))
	require.NoError(t, store.Append([]string{"waitlist"}, "Cid"))
	assert.ErrorIs(t, store.Append([]string{"menu"}, "x"), ErrNotArray)

	v, err := store.Get([]string{"tables"})
	require.NoError(t, err)
	assert.Len(t, v, 3)
	v, err = store.Get([]string{"waitlist"})
	require.NoError(t, err)
	assert.Equal(t, []any{"Cid"}, v)

	require.NoError(t, store.Delete([]string{"tables", "0"}))
	v, err = store.Get([]string{"tables", "0", "id"})
	require.NoError(t, err)
	assert.Equal(t, json.Number("2"), v)

	require.NoError(t, store.Delete([]string{"menu", "soup"}))
	assert.ErrorIs(t, store.Delete([]string{"menu", "soup"}), ErrNotFound)
	assert.ErrorIs(t, store.Delete(nil), ErrInvalidPath)
	assert.ErrorIs(t, store.Delete([]string{"nope", "x"}), ErrNotFound)
}

func TestFailedMutationLeavesFile(t *testing.T) {
	store := newStore(t)
	before, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Error(t, store.Set([]string{"tables", "9", "id"}, 1))
	after, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestDecode(t *testing.T) {
	v, err := Decode([]byte("{\"a\": 1}\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": json.Number("1")}, v)

	for _, in := range []string{`{"a":1} garbage`, `1 2`, `"x"}`} {
		_, err := Decode([]byte(in))
		assert.ErrorIs(t, err, ErrTrailingData, in)
	}
	_, err = Decode([]byte(`{"a":`))
	assert.Error(t, err)
}

func TestTools(t *testing.T) {
	store := newStore(t)
	reg := tools.NewRegistry(Tools(store)...)
	require.Equal(t, 5, reg.Len())
	ctx := context.Background()

	get, _ := reg.Get("db_get")
	out, err := get.Call(ctx, `{"path":["menu"]}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true,"value":{"soup":7.5}}`, out)

	set, _ := reg.Get("db_set")
	_, err = set.Call(ctx, `{"path":["menu","bread"],"value":"3"}`)
	require.NoError(t, err)
	_, err = set.Call(ctx, `{"path":["menu","bread"],"value":"{oops"}`)
	assert.ErrorContains(t, err, "not valid JSON")
	_, err = set.Call(ctx, `{"path":["menu","bread"],"value":"{\"a\":1} garbage"}`)
	assert.ErrorIs(t, err, ErrTrailingData)

	app, _ := reg.Get("db_append")
	_, err = app.Call(ctx, `{"path":["tables"],"value":"{\"id\": 3}"}`)
	require.NoError(t, err)

	del, _ := reg.Get("db_delete")
	_, err = del.Call(ctx, `{"path":["tables","1"]}`)
	require.NoError(t, err)

	gen, _ := reg.Get("generate_id")
	out, err = gen.Call(ctx, `{"prefix":"res"}`)
	require.NoError(t, err)
	assert.Regexp(t, `^\{"id":"RES[0-9A-V]{20}"\}$`, out)

	info := NewContextProvider(store, "Database").Info()
	assert.True(t, strings.HasPrefix(info, "```json"))
	assert.Contains(t, info, `"bread": 3`)
	assert.NotContains(t, info, `"Ann"`)
}
