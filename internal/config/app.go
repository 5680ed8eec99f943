package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/sidenote/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"SIDENOTE_RUNTIME_PATH" envDefault:".sidenote"`

	// LLM provider selection
	LLMProvider string `env:"LLM_PROVIDER" envDefault:"openai"`
	Model       string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`

	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	OpenRouterAPIKey string `env:"OPENROUTER_API_KEY"`
	OllamaBaseURL    string `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	OllamaAPIKey     string `env:"OLLAMA_API_KEY"`
	CustomBaseURL    string `env:"CUSTOM_OPENAI_BASE_URL"`
	CustomAPIKey     string `env:"CUSTOM_OPENAI_API_KEY"`

	// Pipeline tuning
	FlushInterval    time.Duration `env:"SIDENOTE_FLUSH_INTERVAL" envDefault:"15s"`
	EnrichTimeout    time.Duration `env:"SIDENOTE_ENRICH_TIMEOUT" envDefault:"30s"`
	DedupWindow      time.Duration `env:"SIDENOTE_DEDUP_WINDOW" envDefault:"2s"`
	HistoryLimit     int           `env:"SIDENOTE_HISTORY_LIMIT" envDefault:"8000"`
	MinFragmentLen   int           `env:"SIDENOTE_MIN_FRAGMENT_LEN" envDefault:"5"`
	BatchTokenBudget int           `env:"SIDENOTE_BATCH_TOKEN_BUDGET" envDefault:"2000"`

	// EnrichMode selects what each batch is mined for: topics, actions, both.
	EnrichMode string `env:"SIDENOTE_ENRICH_MODE" envDefault:"topics"`

	// AbandonOnStop runs enrichment under the session context so stopping a
	// session also cancels in-flight calls. When false, late results from
	// in-flight calls still land as cards.
	AbandonOnStop bool `env:"SIDENOTE_ABANDON_ON_STOP" envDefault:"true"`

	// Capture source: demo (scripted meeting), htmlfeed, or none
	// (transport-fed fragments only).
	CaptureSource    string        `env:"SIDENOTE_CAPTURE_SOURCE" envDefault:"demo"`
	DemoInterval     time.Duration `env:"SIDENOTE_DEMO_INTERVAL" envDefault:"12s"`
	HTMLFeedURL      string        `env:"SIDENOTE_HTMLFEED_URL"`
	HTMLFeedInterval time.Duration `env:"SIDENOTE_HTMLFEED_INTERVAL" envDefault:"5s"`

	// Transport flags
	EnableTelegram bool `env:"ENABLE_TELEGRAM" envDefault:"false"`
	EnableCLI      bool `env:"ENABLE_CLI" envDefault:"true"`
	EnableTUI      bool `env:"ENABLE_TUI" envDefault:"false"`
	EnableMCP      bool `env:"ENABLE_MCP" envDefault:"false"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetHistoryPath() string {
	return filepath.Join(c.RuntimePath, "input_history")
}

func (c AppConfig) APIKeyConfigured() bool {
	switch c.LLMProvider {
	case "openai":
		return c.OpenAIAPIKey != ""
	case "openrouter":
		return c.OpenRouterAPIKey != ""
	case "ollama":
		return true // local, key optional
	case "custom":
		return c.CustomBaseURL != ""
	default:
		return false
	}
}
