// Package config loads corag settings from a yaml file, a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/agentlab/corag-agents/internal/logging"
)

const (
	// EnvConfig names the environment variable holding the config file path
	EnvConfig = "CORAG_CONFIG"
	// DefaultFile is read from the working directory when present
	DefaultFile = "corag.yaml"
)

type Config struct {
	LLM       LLM             `yaml:"llm" validate:"required"`
	Embedding Embedding       `yaml:"embedding"`
	Retrieval Retrieval       `yaml:"retrieval"`
	Corag     Corag           `yaml:"corag"`
	Log       logging.Options `yaml:"log"`
	// Database is the JSON file used by the host assistant
	Database string `yaml:"database"`
}

type LLM struct {
	Provider       string  `yaml:"provider" validate:"oneof=openai anthropic"`
	Model          string  `yaml:"model" validate:"required"`
	EvaluatorModel string  `yaml:"evaluator_model"`
	Temperature    float32 `yaml:"temperature" validate:"gte=0,lte=2"`
	MaxTokens      int     `yaml:"max_tokens" validate:"gte=0"`
	MaxToolRounds  int     `yaml:"max_tool_rounds" validate:"gte=1"`
	APIKey         string  `yaml:"api_key"`
	BaseURL        string  `yaml:"base_url" validate:"omitempty,url"`
}

type Embedding struct {
	Model   string `yaml:"model" validate:"required"`
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url" validate:"omitempty,url"`
}

type Retrieval struct {
	Backend    string  `yaml:"backend" validate:"oneof=chromem memory vectara searxng"`
	Path       string  `yaml:"path"`
	Collection string  `yaml:"collection" validate:"required"`
	TopK       int     `yaml:"top_k" validate:"gte=1"`
	ChunkSize  int     `yaml:"chunk_size" validate:"gte=1"`
	Overlap    int     `yaml:"overlap" validate:"gte=0,ltfield=ChunkSize"`
	Splitter   string  `yaml:"splitter" validate:"oneof=words sentences"`
	Vectara    Vectara `yaml:"vectara"`
	SearXNG    SearXNG `yaml:"searxng"`
}

type Vectara struct {
	APIKey     string `yaml:"api_key"`
	CorpusKey  string `yaml:"corpus_key"`
	CustomerID string `yaml:"customer_id"`
	BaseURL    string `yaml:"base_url" validate:"omitempty,url"`
}

// SearXNG configures web search as the retrieval backend
type SearXNG struct {
	BaseURL  string `yaml:"base_url" validate:"omitempty,url"`
	Language string `yaml:"language"`
	Category string `yaml:"category" validate:"omitempty,oneof=general news social_media"`
}

type Corag struct {
	MaxAttempts int    `yaml:"max_attempts" validate:"gte=1"`
	FaultPolicy string `yaml:"fault_policy" validate:"oneof=abort continue"`
	// ResearcherPrompt and EvaluatorPrompt replace the built-in system prompts when set
	ResearcherPrompt string `yaml:"researcher_prompt"`
	EvaluatorPrompt  string `yaml:"evaluator_prompt"`
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		LLM: LLM{
			Provider:      "openai",
			Model:         "gpt-4o-mini",
			MaxToolRounds: 5,
		},
		Embedding: Embedding{
			Model: "text-embedding-3-small",
		},
		Retrieval: Retrieval{
			Backend:    "chromem",
			Path:       ".corag/db",
			Collection: "corag",
			TopK:       5,
			ChunkSize:  200,
			Overlap:    20,
			Splitter:   "words",
		},
		Corag: Corag{
			MaxAttempts: 3,
			FaultPolicy: "abort",
		},
		Log: logging.Options{
			Level:  "info",
			Format: logging.FormatConsole,
		},
		Database: "db.json",
	}
}

// Load reads .env, then the yaml file at path, then environment overrides, and validates the result.
// An empty path falls back to $CORAG_CONFIG and then to corag.yaml when it exists.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	explicit := path != ""
	if path == "" {
		path = os.Getenv(EnvConfig)
		explicit = path != ""
	}
	if path == "" {
		path = DefaultFile
	}
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	switch c.LLM.Provider {
	case "anthropic":
		setFromEnv(&c.LLM.APIKey, "ANTHROPIC_API_KEY")
		setFromEnv(&c.LLM.BaseURL, "ANTHROPIC_API_BASE_URL")
	default:
		setFromEnv(&c.LLM.APIKey, "OPENAI_API_KEY")
		setFromEnv(&c.LLM.BaseURL, "OPENAI_API_BASE_URL")
	}
	setFromEnv(&c.Embedding.APIKey, "OPENAI_API_KEY")
	setFromEnv(&c.Embedding.BaseURL, "OPENAI_API_BASE_URL")
	setFromEnv(&c.Retrieval.Vectara.APIKey, "VECTARA_API_KEY")
	setFromEnv(&c.Retrieval.Vectara.CustomerID, "VECTARA_CUSTOMER_ID")
	setFromEnv(&c.Retrieval.Vectara.CorpusKey, "VECTARA_CORPUS_KEY")
	setFromEnv(&c.Retrieval.SearXNG.BaseURL, "SEARXNG_BASE_URL")
}

// setFromEnv overrides dst with a non empty environment value
func setFromEnv(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

// Validate checks field constraints and cross field requirements
func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Retrieval.Backend == "vectara" && (c.Retrieval.Vectara.APIKey == "" || c.Retrieval.Vectara.CorpusKey == "") {
		return errors.New("invalid config: vectara backend needs an api key and a corpus key")
	}
	if c.Retrieval.Backend == "searxng" && c.Retrieval.SearXNG.BaseURL == "" {
		return errors.New("invalid config: searxng backend needs a base url")
	}
	return nil
}

// EvaluatorModel returns the judge model, defaulting to the research model
func (c *Config) EvaluatorModel() string {
	if c.LLM.EvaluatorModel != "" {
		return c.LLM.EvaluatorModel
	}
	return c.LLM.Model
}
