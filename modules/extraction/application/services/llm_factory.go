package services

import (
	"strings"

	"gitscribe/modules/extraction/domain/services"
	"gitscribe/modules/extraction/infrastructure/providers"
	"gitscribe/seedwork/infrastructure/config"
)

// NewLLMClient selects a provider by LLMConfig.Provider, generalizing the
// teacher's AudioProcessorFactory.CreateProcessor switch-on-config-string
// pattern. An unrecognized or empty provider, or a provider missing its
// credential, falls back to the "none" provider rather than failing
// construction — spec.md §7's fallback mode starts here.
func NewLLMClient(cfg config.LLMConfig) services.LLMClient {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))

	switch provider {
	case "anthropic":
		if cfg.APIKey == "" {
			return providers.NewFallbackProvider()
		}
		return withRetry(providers.NewAnthropicProvider(cfg.APIKey, cfg.Model, cfg.BaseURL), cfg.MaxRetries)
	case "openai":
		if cfg.APIKey == "" {
			return providers.NewFallbackProvider()
		}
		return withRetry(providers.NewOpenAIProvider(cfg.APIKey, cfg.Model, cfg.BaseURL), cfg.MaxRetries)
	case "groq":
		if cfg.APIKey == "" {
			return providers.NewFallbackProvider()
		}
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "https://api.groq.com/openai/v1"
		}
		return withRetry(providers.NewHTTPCompatProvider("groq", baseURL, cfg.APIKey, cfg.Model), cfg.MaxRetries)
	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434/v1"
		}
		return withRetry(providers.NewHTTPCompatProvider("ollama", baseURL, cfg.APIKey, cfg.Model), cfg.MaxRetries)
	default:
		return providers.NewFallbackProvider()
	}
}
