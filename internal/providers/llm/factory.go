package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/sidenote/internal/config"
	"github.com/sandevgo/sidenote/internal/core"
	"github.com/sandevgo/sidenote/pkg/log"
)

// NewProvider creates the appropriate AIProvider based on configuration.
// A nil, nil return means no API key is configured: the caller falls back to
// the local demo generator instead of failing the session.
func NewProvider(ctx context.Context, cfg *config.AppConfig) (core.AIProvider, error) {
	logger := log.FromCtx(ctx)

	if !cfg.APIKeyConfigured() {
		logger.Warn().Str("provider", cfg.LLMProvider).Msg("no API key configured, enrichment runs in demo mode")
		return nil, nil
	}

	logger.Info().
		Str("provider", cfg.LLMProvider).
		Str("model", cfg.Model).
		Msg("starting llm provider")

	switch cfg.LLMProvider {
	case "openai":
		return NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:    "https://api.openai.com",
			APIKey:     cfg.OpenAIAPIKey,
			Model:      cfg.Model,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
		}), nil
	case "openrouter":
		return NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:    "https://openrouter.ai/api",
			APIKey:     cfg.OpenRouterAPIKey,
			Model:      cfg.Model,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
			ExtraHeaders: map[string]string{
				"HTTP-Referer": core.AppRepositoryURL,
				"X-Title":      core.AppName,
			},
		}), nil
	case "ollama":
		return NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:    cfg.OllamaBaseURL,
			APIKey:     cfg.OllamaAPIKey,
			Model:      cfg.Model,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
		}), nil
	case "custom":
		return NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:    cfg.CustomBaseURL,
			APIKey:     cfg.CustomAPIKey,
			Model:      cfg.Model,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
		}), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLMProvider)
	}
}
