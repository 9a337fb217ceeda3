package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"github.com/agentlab/corag-agents/agents"
	"github.com/agentlab/corag-agents/agents/corag"
	"github.com/agentlab/corag-agents/agents/rag"
	"github.com/agentlab/corag-agents/components"
	"github.com/agentlab/corag-agents/components/embedder"
	openaiembedder "github.com/agentlab/corag-agents/components/embedder/providers/openai"
	"github.com/agentlab/corag-agents/components/embedder/splitter"
	"github.com/agentlab/corag-agents/components/llm"
	anthropicprovider "github.com/agentlab/corag-agents/components/llm/providers/anthropic"
	openaiprovider "github.com/agentlab/corag-agents/components/llm/providers/openai"
	"github.com/agentlab/corag-agents/components/systemprompt/simple"
	"github.com/agentlab/corag-agents/components/vectordb"
	"github.com/agentlab/corag-agents/components/vectordb/engines"
	"github.com/agentlab/corag-agents/internal/config"
	"github.com/agentlab/corag-agents/internal/logging"
	"github.com/agentlab/corag-agents/internal/render"
	"github.com/agentlab/corag-agents/tools/ragsearch"
	"github.com/agentlab/corag-agents/tools/searxng"
)

var errNoAPIKey = errors.New("no api key configured")

// app holds the configured collaborators shared by the commands
type app struct {
	cfg     *config.Config
	logger  zerolog.Logger
	console *render.Console
	usage   *components.LLMUsage
	closer  io.Closer
}

func (a *app) init(cfg *config.Config, closer io.Closer, console *render.Console) {
	a.cfg = cfg
	a.closer = closer
	a.console = console
	a.logger = logging.New("cli")
	a.usage = new(components.LLMUsage)
}

// Close logs the accumulated token usage and closes the log file
func (a *app) Close() error {
	if a.usage != nil {
		a.logger.Info().
			Int64("input_tokens", a.usage.InputTokens).
			Int64("output_tokens", a.usage.OutputTokens).
			Msg("token usage")
	}
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

func (a *app) chatClient() (llm.Client, error) {
	c := a.cfg.LLM
	if c.APIKey == "" {
		return nil, fmt.Errorf("%s: %w", c.Provider, errNoAPIKey)
	}
	switch c.Provider {
	case llm.ProviderAnthropic:
		return anthropicprovider.NewFromKey(c.APIKey, c.BaseURL), nil
	case llm.ProviderOpenAI:
		return openaiprovider.NewFromKey(c.APIKey, c.BaseURL), nil
	}
	return nil, fmt.Errorf("unsupported llm provider: %s", c.Provider)
}

// agentOptions applies the model settings shared by every agent
func (a *app) agentOptions(model string) []agents.Option {
	return []agents.Option{
		agents.WithModel(model),
		agents.WithTemperature(a.cfg.LLM.Temperature),
		agents.WithMaxTokens(a.cfg.LLM.MaxTokens),
		agents.WithMaxToolRounds(a.cfg.LLM.MaxToolRounds),
		agents.WithLogger(logging.New("agent")),
	}
}

func (a *app) embedder() (*openaiembedder.Embedder, error) {
	c := a.cfg.Embedding
	if c.APIKey == "" {
		return nil, fmt.Errorf("embedding: %w", errNoAPIKey)
	}
	cfg := openai.DefaultConfig(c.APIKey)
	if c.BaseURL != "" {
		cfg.BaseURL = c.BaseURL
	}
	return openaiembedder.New(openai.NewClientWithConfig(cfg), embedder.WithModel(c.Model)), nil
}

// chunker returns the configured splitter, extra options apply after the size settings
func (a *app) chunker(extra ...splitter.Option) embedder.Chunker {
	r := a.cfg.Retrieval
	opts := append([]splitter.Option{
		splitter.WithChunkSize(r.ChunkSize),
		splitter.WithOverlap(r.Overlap),
	}, extra...)
	if r.Splitter == "sentences" {
		return splitter.NewSentences(opts...)
	}
	return splitter.NewWords(opts...)
}

// promptOverride replaces a built-in system prompt with configured text
func promptOverride(text string) []agents.Option {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return []agents.Option{agents.WithSystemPromptGenerator(simple.New(text))}
}

// index opens the local knowledge base
func (a *app) index(opts ...rag.Option) (*rag.Index, error) {
	r := a.cfg.Retrieval
	switch r.Backend {
	case "vectara":
		return nil, errors.New("the vectara backend is managed remotely, use the vectara console to index documents")
	case "searxng":
		return nil, errors.New("the searxng backend searches the web and has no local index")
	}
	e, err := a.embedder()
	if err != nil {
		return nil, err
	}
	engine, err := engines.Open(vectordb.EngineType(r.Backend), r.Path, vectordb.WithTopK(r.TopK))
	if err != nil {
		return nil, err
	}
	opts = append([]rag.Option{
		rag.WithName("knowledge base"),
		rag.WithEmbedder(e),
		rag.WithVectorDB(engine),
		rag.WithChunker(a.chunker()),
		rag.WithCollection(r.Collection),
		rag.WithTopK(r.TopK),
		rag.WithLogger(logging.New("rag")),
	}, opts...)
	return rag.NewIndex(opts...)
}

// retriever returns the search backend behind the rag_search tool
func (a *app) retriever() (ragsearch.Retriever, error) {
	r := a.cfg.Retrieval
	switch r.Backend {
	case "vectara":
		opts := []ragsearch.VectaraOption{
			ragsearch.WithCustomerID(r.Vectara.CustomerID),
		}
		if r.Vectara.BaseURL != "" {
			opts = append(opts, ragsearch.WithBaseURL(r.Vectara.BaseURL))
		}
		return ragsearch.NewVectara(r.Vectara.APIKey, r.Vectara.CorpusKey, opts...), nil
	case "searxng":
		return a.searxng(), nil
	}
	idx, err := a.index()
	if err != nil {
		return nil, err
	}
	return idx.Retriever(a.usage), nil
}

// searxng returns the web search client, nil when no instance is configured
func (a *app) searxng() *searxng.Client {
	r := a.cfg.Retrieval
	if r.SearXNG.BaseURL == "" {
		return nil
	}
	return searxng.NewClient(
		searxng.WithBaseURL(r.SearXNG.BaseURL),
		searxng.WithLanguage(r.SearXNG.Language),
		searxng.WithCategory(r.SearXNG.Category),
		searxng.WithMaxResults(r.TopK),
	)
}

func (a *app) researchFactory(client llm.Client) (corag.AgentFactory, error) {
	retriever, err := a.retriever()
	if err != nil {
		return nil, err
	}
	opts := append(a.agentOptions(a.cfg.LLM.Model), promptOverride(a.cfg.Corag.ResearcherPrompt)...)
	return corag.ResearchAgentFactory(client, retriever, opts...), nil
}

func (a *app) evaluatorFactory(client llm.Client) corag.AgentFactory {
	opts := append(a.agentOptions(a.cfg.EvaluatorModel()), promptOverride(a.cfg.Corag.EvaluatorPrompt)...)
	return corag.EvaluatorAgentFactory(client, opts...)
}

func (a *app) researcher(client llm.Client) (*corag.AgentResearcher, error) {
	factory, err := a.researchFactory(client)
	if err != nil {
		return nil, err
	}
	return corag.NewAgentResearcher(factory,
		corag.WithUsage(a.usage),
		corag.WithCollaboratorLogger(logging.New("researcher")),
	), nil
}

// orchestrator wires researcher, evaluator and observers from the configuration
func (a *app) orchestrator(maxAttempts int, policy string, observers ...corag.Observer) (*corag.Orchestrator, error) {
	client, err := a.chatClient()
	if err != nil {
		return nil, err
	}
	researcher, err := a.researcher(client)
	if err != nil {
		return nil, err
	}
	evaluator := corag.NewModelEvaluator(
		a.evaluatorFactory(client),
		corag.WithUsage(a.usage),
		corag.WithCollaboratorLogger(logging.New("evaluator")),
	)
	if maxAttempts == 0 {
		maxAttempts = a.cfg.Corag.MaxAttempts
	}
	if policy == "" {
		policy = a.cfg.Corag.FaultPolicy
	}
	faultPolicy, err := corag.ParseFaultPolicy(policy)
	if err != nil {
		return nil, err
	}
	logger := logging.New("orchestrator")
	observers = append(observers, corag.NewLogObserver(logger))
	return corag.New(researcher, evaluator,
		corag.WithMaxAttempts(maxAttempts),
		corag.WithFaultPolicy(faultPolicy),
		corag.WithObserver(corag.MultiObserver(observers)),
		corag.WithLogger(logger),
	), nil
}
