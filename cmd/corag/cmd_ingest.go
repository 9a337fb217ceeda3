package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/agentlab/corag-agents/agents/rag"
	"github.com/agentlab/corag-agents/components/document"
	"github.com/agentlab/corag-agents/components/embedder/splitter"
)

type ingestFlags struct {
	concurrency int
	batchSize   int
	tiktoken    string
	timeout     time.Duration
}

func newIngestCmd(a *app) *cobra.Command {
	var flags ingestFlags
	cmd := &cobra.Command{
		Use:   "ingest <path|url>...",
		Short: "Load files, directories or web pages into the knowledge base",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []rag.Option{
				rag.WithConcurrency(flags.concurrency),
				rag.WithBatchSize(flags.batchSize),
			}
			if flags.tiktoken != "" {
				counter, err := splitter.NewTikTokenCounter(flags.tiktoken)
				if err != nil {
					return err
				}
				opts = append(opts, rag.WithChunker(a.chunker(splitter.WithTokenCounter(counter))))
			}
			idx, err := a.index(opts...)
			if err != nil {
				return err
			}
			httpClient := &http.Client{Timeout: flags.timeout}
			docs, err := loadDocuments(cmd.Context(), a, httpClient, args, flags.concurrency)
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				return errors.New("no loadable documents found")
			}
			n, usage, err := idx.AddDocuments(cmd.Context(), docs...)
			a.usage.Merge(usage)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d chunks from %d documents into %q\n", n, len(docs), idx.Collection())
			if a.cfg.Retrieval.Backend == "memory" {
				a.logger.Warn().Msg("the memory backend does not persist, use chromem to keep the index")
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&flags.concurrency, "concurrency", rag.DefaultConcurrency, "documents loaded and embedded at once")
	f.IntVar(&flags.batchSize, "batch-size", rag.DefaultBatchSize, "chunks per embedding request")
	f.StringVar(&flags.tiktoken, "tiktoken", "", "count chunk tokens with this tiktoken encoding, e.g. cl100k_base")
	f.DurationVar(&flags.timeout, "timeout", 30*time.Second, "timeout for fetching web pages")
	return cmd
}

// loadDocuments expands directories and loads every source concurrently.
// Unsupported and empty files are skipped.
func loadDocuments(ctx context.Context, a *app, client *http.Client, sources []string, concurrency int) ([]*document.Document, error) {
	var paths []string
	for _, src := range sources {
		if isURL(src) {
			paths = append(paths, src)
			continue
		}
		files, err := document.Walk(src)
		if err != nil {
			return nil, err
		}
		paths = append(paths, files...)
	}
	docs := make([]*document.Document, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))
	for i, path := range paths {
		g.Go(func() error {
			var (
				doc *document.Document
				err error
			)
			if isURL(path) {
				doc, err = document.Fetch(gctx, client, path)
			} else {
				doc, err = document.LoadFile(gctx, path)
			}
			if errors.Is(err, document.ErrUnsupported) || errors.Is(err, document.ErrEmpty) {
				a.logger.Warn().Err(err).Str("source", path).Msg("skipped")
				return nil
			}
			if err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	ret := docs[:0]
	for _, doc := range docs {
		if doc != nil {
			ret = append(ret, doc)
		}
	}
	return ret, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
