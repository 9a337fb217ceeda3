package jsondb

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

var (
	ErrNotFound     = errors.New("path not found")
	ErrInvalidPath  = errors.New("invalid path")
	ErrNotArray     = errors.New("target is not an array")
	ErrTrailingData = errors.New("trailing data after JSON value")
)

// Store is a JSON document kept in a single file.
// Every mutation reads the file, applies the change to the decoded copy and replaces the file,
// so a failed operation leaves the file untouched.
type Store struct {
	mu   sync.Mutex
	path string
}

// Open returns a Store for path, creating an empty object document when the file does not exist
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := s.write(map[string]any{}); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the file backing the store
func (s *Store) Path() string {
	return s.path
}

// Get returns the value at path, the whole document for an empty path
func (s *Store) Get(path []string) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	node := doc
	for i, key := range path {
		switch n := node.(type) {
		case map[string]any:
			child, ok := n[key]
			if !ok {
				return nil, pathError(ErrNotFound, path[:i+1])
			}
			node = child
		case []any:
			idx, err := index(n, key, path[:i+1])
			if err != nil {
				return nil, err
			}
			node = n[idx]
		default:
			return nil, pathError(ErrInvalidPath, path[:i+1])
		}
	}
	return node, nil
}

// Set stores value at path, creating missing intermediate objects.
// An empty path replaces the whole document.
func (s *Store) Set(path []string, value any) error {
	return s.mutate(func(doc any) (any, error) {
		if len(path) == 0 {
			return value, nil
		}
		return update(doc, path, path, true, func(parent any, key string) (any, error) {
			switch n := parent.(type) {
			case map[string]any:
				n[key] = value
				return n, nil
			case []any:
				idx, err := index(n, key, path)
				if err != nil {
					return nil, err
				}
				n[idx] = value
				return n, nil
			}
			return nil, pathError(ErrInvalidPath, path)
		})
	})
}

// Append adds value to the array at path. A missing key becomes a one element array.
func (s *Store) Append(path []string, value any) error {
	return s.mutate(func(doc any) (any, error) {
		if len(path) == 0 {
			arr, ok := doc.([]any)
			if !ok {
				return nil, ErrNotArray
			}
			return append(arr, value), nil
		}
		return update(doc, path, path, true, func(parent any, key string) (any, error) {
			switch n := parent.(type) {
			case map[string]any:
				existing, ok := n[key]
				if !ok {
					n[key] = []any{value}
					return n, nil
				}
				arr, ok := existing.([]any)
				if !ok {
					return nil, pathError(ErrNotArray, path)
				}
				n[key] = append(arr, value)
				return n, nil
			case []any:
				idx, err := index(n, key, path)
				if err != nil {
					return nil, err
				}
				arr, ok := n[idx].([]any)
				if !ok {
					return nil, pathError(ErrNotArray, path)
				}
				n[idx] = append(arr, value)
				return n, nil
			}
			return nil, pathError(ErrInvalidPath, path)
		})
	})
}

// Delete removes the value at path
func (s *Store) Delete(path []string) error {
	if len(path) == 0 {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	return s.mutate(func(doc any) (any, error) {
		return update(doc, path, path, false, func(parent any, key string) (any, error) {
			switch n := parent.(type) {
			case map[string]any:
				if _, ok := n[key]; !ok {
					return nil, pathError(ErrNotFound, path)
				}
				delete(n, key)
				return n, nil
			case []any:
				idx, err := index(n, key, path)
				if err != nil {
					return nil, err
				}
				return append(n[:idx], n[idx+1:]...), nil
			}
			return nil, pathError(ErrInvalidPath, path)
		})
	})
}

// Snapshot returns the indented document text
func (s *Store) Snapshot() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bs, err := os.ReadFile(s.path)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, bs, "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *Store) mutate(fn func(any) (any, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	doc, err = fn(doc)
	if err != nil {
		return err
	}
	return s.write(doc)
}

func (s *Store) read() (any, error) {
	bs, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	return Decode(bs)
}

// write replaces the file through a temp file in the same directory
func (s *Store) write(doc any) error {
	bs, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(bs); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// Decode parses a single JSON value keeping numbers as json.Number so integers survive a rewrite
func Decode(bs []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(bs))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if err := dec.Decode(new(json.RawMessage)); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}
	return v, nil
}

// update descends to the parent of the last path segment and lets leaf rewrite it
func update(node any, path []string, full []string, create bool, leaf func(any, string) (any, error)) (any, error) {
	if len(path) == 1 {
		return leaf(node, path[0])
	}
	key := path[0]
	walked := full[:len(full)-len(path)+1]
	switch n := node.(type) {
	case map[string]any:
		child, ok := n[key]
		if !ok {
			if !create {
				return nil, pathError(ErrNotFound, walked)
			}
			child = map[string]any{}
		}
		next, err := update(child, path[1:], full, create, leaf)
		if err != nil {
			return nil, err
		}
		n[key] = next
		return n, nil
	case []any:
		idx, err := index(n, key, walked)
		if err != nil {
			return nil, err
		}
		next, err := update(n[idx], path[1:], full, create, leaf)
		if err != nil {
			return nil, err
		}
		n[idx] = next
		return n, nil
	}
	return nil, pathError(ErrInvalidPath, walked)
}

func index(arr []any, key string, path []string) (int, error) {
	idx, err := strconv.Atoi(key)
	if err != nil {
		return 0, pathError(ErrInvalidPath, path)
	}
	if idx < 0 || idx >= len(arr) {
		return 0, pathError(ErrNotFound, path)
	}
	return idx, nil
}

func pathError(err error, path []string) error {
	bs, _ := json.Marshal(path)
	return fmt.Errorf("%w: %s", err, bs)
}
