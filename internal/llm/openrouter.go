package llm

import "errors"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// openRouterModels maps the short names accepted in configuration to
// OpenRouter's vendor-prefixed ids.
var openRouterModels = map[string]string{
	"gemini-flash": "google/gemini-2.0-flash-001",
	"gpt-4o-mini":  "openai/gpt-4o-mini",
	"claude-haiku": "anthropic/claude-haiku-4.5",
}

// OpenRouterProvider is an OpenAIProvider pointed at OpenRouter's
// OpenAI-compatible API.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter API key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	inner := newOpenAIProviderRaw(OpenAIConfig{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: baseURL}, openRouterModels)
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}
