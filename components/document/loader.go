package document

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
)

// MaxSize bounds the bytes read from a single source
const MaxSize = 16 << 20

// LoadFile reads and parses a local file
func LoadFile(ctx context.Context, fname string) (*Document, error) {
	info, err := os.Stat(fname)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", fname)
	}
	if info.Size() > MaxSize {
		return nil, fmt.Errorf("%s exceeds %d bytes", fname, MaxSize)
	}
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	return Parse(ctx, fname, data, map[string]string{
		"source":   fname,
		"filename": filepath.Base(fname),
		"modtime":  strconv.FormatInt(info.ModTime().Unix(), 10),
	})
}

// Fetch downloads and parses a web page
func Fetch(ctx context.Context, client *http.Client, link string) (*Document, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %s", link, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxSize))
	if err != nil {
		return nil, err
	}
	return Parse(ctx, req.URL.Path, data, map[string]string{
		"source": link,
		"url":    link,
	})
}

// Walk lists the loadable files under root, root itself when it is a file
func Walk(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}
	var ret []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && len(d.Name()) > 1 && d.Name()[0] == '.' {
				return filepath.SkipDir
			}
			return nil
		}
		ret = append(ret, path)
		return nil
	})
	return ret, err
}
