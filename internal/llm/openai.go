package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// groqBaseURL is the OpenAI-compatible endpoint Groq exposes
const groqBaseURL = "https://api.groq.com/openai/v1"

// groqDefaultModel matches the model the hosted assistant uses
const groqDefaultModel = "llama-3.3-70b-versatile"

// OpenAIProvider implements Provider over any OpenAI-compatible chat
// API. Groq reuses it with its own base URL and default model.
type OpenAIProvider struct {
	name         string
	client       *openai.Client
	defaultModel string
	config       Config
}

// NewOpenAIProvider creates a provider for the OpenAI API
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	return newCompatibleProvider("openai", config, config.BaseURL, openai.GPT4oMini)
}

// NewGroqProvider creates a provider for Groq's OpenAI-compatible API
func NewGroqProvider(config Config) (*OpenAIProvider, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = groqBaseURL
	}
	return newCompatibleProvider("groq", config, baseURL, groqDefaultModel)
}

func newCompatibleProvider(name string, config Config, baseURL, defaultModel string) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("%s API key is required", name)
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}

	return &OpenAIProvider{
		name:         name,
		client:       openai.NewClientWithConfig(clientConfig),
		defaultModel: defaultModel,
		config:       config,
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return p.name
}

// IsAvailable checks if the provider is properly configured
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	_, err := p.client.ListModels(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s API check failed: %v\n", p.name, err)
		return false
	}
	return true
}

// Rewrite rewrites text using the chat completions API
func (p *OpenAIProvider) Rewrite(ctx context.Context, req RewriteRequest) (*RewriteResponse, error) {
	prompt := req.Prompt
	if prompt == "" {
		prompt = BuildRewritePrompt(req.Text, req.Issues)
	}

	model := req.Model
	if model == "" {
		model = p.config.Model
	}
	if model == "" {
		model = p.defaultModel
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.config.MaxTokens
	}
	if maxTokens == 0 {
		maxTokens = 1500
	}

	timeout := time.Duration(p.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	chatReq := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: rewriteSystemMessage,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.3, // Lower temperature keeps the rewrite close to the original
	}

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, chatReq)
	if err != nil {
		return nil, fmt.Errorf("%s API error: %w", p.name, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from %s", p.name)
	}

	rewritten := ExtractRewrittenText(strings.TrimSpace(resp.Choices[0].Message.Content))

	return &RewriteResponse{
		Text:       rewritten,
		Model:      model,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}
