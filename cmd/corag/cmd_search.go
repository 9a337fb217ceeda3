package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentlab/corag-agents/components/vectordb"
	"github.com/agentlab/corag-agents/tools/ragsearch"
)

func newSearchCmd(a *app) *cobra.Command {
	var contains, excludes string
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Print the knowledge base snippets retrieved for a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			var (
				results []string
				err     error
			)
			if contains != "" || excludes != "" {
				results, err = a.filteredSearch(cmd.Context(), query, contains, excludes)
			} else {
				var retriever ragsearch.Retriever
				if retriever, err = a.retriever(); err == nil {
					results, err = retriever.Retrieve(cmd.Context(), query)
				}
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, "No results.")
				return nil
			}
			for i, text := range results {
				fmt.Fprintf(out, "%d. %s\n\n", i+1, text)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&contains, "contains", "", "only return chunks containing this text (local backends)")
	cmd.Flags().StringVar(&excludes, "exclude", "", "drop chunks containing this text (local backends)")
	return cmd
}

// filteredSearch queries the local index with document content filters
func (a *app) filteredSearch(ctx context.Context, query, contains, excludes string) ([]string, error) {
	idx, err := a.index()
	if err != nil {
		return nil, err
	}
	var opts []vectordb.SearchOption
	if contains != "" {
		opts = append(opts, vectordb.SearchWithInclude(contains))
	}
	if excludes != "" {
		opts = append(opts, vectordb.SearchWithExclude(excludes))
	}
	records, usage, err := idx.Search(ctx, query, opts...)
	a.usage.Merge(usage)
	if err != nil {
		return nil, err
	}
	ret := make([]string, 0, len(records))
	for _, record := range records {
		ret = append(ret, record.Embedding.Object)
	}
	return ret, nil
}
