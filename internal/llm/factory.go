package llm

import (
	"fmt"
	"os"
	"strings"

	"github.com/menpente/aclarador-clean/internal/model"
)

// NewProvider creates an LLM provider based on configuration. An empty
// provider name disables rewriting and returns nil, nil.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)

	case "groq":
		return NewGroqProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, groq, anthropic, ollama)", config.Provider)
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config, filling in
// the API key from the provider's conventional environment variable
// when the config leaves it empty
func ConfigFromModel(modelConfig model.LLMConfig) Config {
	config := Config{
		Provider:   modelConfig.Provider,
		Model:      modelConfig.Model,
		APIKey:     modelConfig.APIKey,
		BaseURL:    modelConfig.BaseURL,
		Timeout:    modelConfig.Timeout,
		MaxTokens:  modelConfig.MaxTokens,
		HTTPProxy:  modelConfig.HTTPProxy,
		HTTPSProxy: modelConfig.HTTPSProxy,
	}

	if config.APIKey == "" {
		switch strings.ToLower(config.Provider) {
		case "openai":
			config.APIKey = os.Getenv("OPENAI_API_KEY")
		case "groq":
			config.APIKey = os.Getenv("GROQ_API_KEY")
		case "anthropic", "claude":
			config.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	}

	return config
}
