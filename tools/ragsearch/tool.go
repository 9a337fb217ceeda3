package ragsearch

import (
	"context"
	"strings"

	"github.com/agentlab/corag-agents/tools"
)

// Name is the tool name the researcher prompt refers to
const Name = "rag_search"

type Input struct {
	Query string `json:"query" jsonschema:"title=query,description=The search query to find relevant information in the knowledge base." validate:"required"`
}

// Output is the ordered list of snippets, most relevant first
type Output struct {
	Results []string `json:"results"`
}

// New returns the rag_search tool over retriever
func New(retriever Retriever, opts ...tools.Option) *tools.Func[Input, Output] {
	opts = append([]tools.Option{
		tools.WithDescription("Search through the knowledge base to find relevant information. Returns a list of text chunks ordered by relevance."),
	}, opts...)
	return tools.NewFunc(Name, func(ctx context.Context, in *Input) (*Output, error) {
		query := strings.TrimSpace(in.Query)
		if query == "" {
			return nil, ErrEmptyQuery
		}
		results, err := retriever.Retrieve(ctx, query)
		if err != nil {
			return nil, err
		}
		if results == nil {
			results = []string{}
		}
		return &Output{Results: results}, nil
	}, opts...)
}
