package jsondb

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/xid"

	"github.com/agentlab/corag-agents/tools"
)

type PathInput struct {
	Path []string `json:"path" jsonschema:"title=path,description=Object keys and array indices leading to the target value. An empty list addresses the whole document."`
}

type ValueInput struct {
	Path  []string `json:"path" jsonschema:"title=path,description=Object keys and array indices leading to the target value."`
	Value string   `json:"value" jsonschema:"title=value,description=The new value encoded as JSON text such as an object or a number or a quoted string." validate:"required"`
}

type IDInput struct {
	Prefix string `json:"prefix" jsonschema:"title=prefix,description=Short uppercase prefix of the id such as RES for a reservation."`
}

type IDOutput struct {
	ID string `json:"id"`
}

type Output struct {
	OK    bool            `json:"ok"`
	Value json.RawMessage `json:"value,omitempty"`
}

func decodeValue(value string) (any, error) {
	v, err := Decode([]byte(strings.TrimSpace(value)))
	if err != nil {
		return nil, fmt.Errorf("value is not valid JSON: %w", err)
	}
	return v, nil
}

// NewID returns a unique record id starting with prefix
func NewID(prefix string) string {
	return strings.ToUpper(strings.TrimSpace(prefix)) + strings.ToUpper(xid.New().String())
}

// Tools returns the declared operations over store: db_get, db_set, db_append, db_delete and generate_id
func Tools(store *Store, opts ...tools.Option) []tools.Tool {
	get := tools.NewFunc("db_get", func(_ context.Context, in *PathInput) (*Output, error) {
		v, err := store.Get(in.Path)
		if err != nil {
			return nil, err
		}
		bs, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return &Output{OK: true, Value: bs}, nil
	}, append([]tools.Option{tools.WithDescription("Read the value stored at a path of the JSON database.")}, opts...)...)

	set := tools.NewFunc("db_set", func(_ context.Context, in *ValueInput) (*Output, error) {
		v, err := decodeValue(in.Value)
		if err != nil {
			return nil, err
		}
		if err := store.Set(in.Path, v); err != nil {
			return nil, err
		}
		return &Output{OK: true}, nil
	}, append([]tools.Option{tools.WithDescription("Create or replace the value at a path of the JSON database.")}, opts...)...)

	appendTool := tools.NewFunc("db_append", func(_ context.Context, in *ValueInput) (*Output, error) {
		v, err := decodeValue(in.Value)
		if err != nil {
			return nil, err
		}
		if err := store.Append(in.Path, v); err != nil {
			return nil, err
		}
		return &Output{OK: true}, nil
	}, append([]tools.Option{tools.WithDescription("Append a value to the array at a path of the JSON database.")}, opts...)...)

	del := tools.NewFunc("db_delete", func(_ context.Context, in *PathInput) (*Output, error) {
		if err := store.Delete(in.Path); err != nil {
			return nil, err
		}
		return &Output{OK: true}, nil
	}, append([]tools.Option{tools.WithDescription("Delete the value at a path of the JSON database.")}, opts...)...)

	newID := tools.NewFunc("generate_id", func(_ context.Context, in *IDInput) (*IDOutput, error) {
		return &IDOutput{ID: NewID(in.Prefix)}, nil
	}, append([]tools.Option{tools.WithDescription("Generate a unique id for a new record.")}, opts...)...)

	return []tools.Tool{get, set, appendTool, del, newID}
}

// ContextProvider exposes the current document to a system prompt
type ContextProvider struct {
	store *Store
	title string
}

func NewContextProvider(store *Store, title string) *ContextProvider {
	return &ContextProvider{store: store, title: title}
}

func (p *ContextProvider) Title() string {
	return p.title
}

func (p *ContextProvider) Info() string {
	snapshot, err := p.store.Snapshot()
	if err != nil {
		return fmt.Sprintf("database unavailable: %v", err)
	}
	return "```json\n" + snapshot + "\n```"
}
