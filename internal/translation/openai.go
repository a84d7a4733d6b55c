package translation

import (
	"context"
	"fmt"
	"sort"

	"github.com/sashabaranov/go-openai"
)

// OpenAIBackend translates through any OpenAI-compatible chat endpoint,
// including Ollama's /v1 API
type OpenAIBackend struct {
	config *Config
	client *openai.Client
}

// NewOpenAIBackend creates a chat completion backend
func NewOpenAIBackend(config *Config) *OpenAIBackend {
	apiKey := config.APIKey
	if apiKey == "" {
		// Local OpenAI-compatible servers accept any key
		apiKey = "neural"
	}
	clientConfig := openai.DefaultConfig(apiKey)
	if config.URL != "" {
		clientConfig.BaseURL = config.URL
	}
	return &OpenAIBackend{
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

// Name returns the provider name
func (b *OpenAIBackend) Name() string {
	return ProviderOpenAI
}

func (b *OpenAIBackend) model() string {
	return b.config.ModelName()
}

// Translate asks the chat model for a translation
func (b *OpenAIBackend) Translate(ctx context.Context, req *Request) (*Response, error) {
	chatReq := openai.ChatCompletionRequest{
		Model: b.model(),
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(req),
			},
		},
		Temperature: b.config.Temperature,
		TopP:        b.config.TopP,
	}
	if req.Document {
		chatReq.MaxTokens = 4096
	}

	resp, err := b.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, ErrNoTranslation
	}

	return clean(resp.Choices[0].Message.Content)
}

// CheckHealth lists the models, which needs a reachable and authorised API
func (b *OpenAIBackend) CheckHealth(ctx context.Context) (bool, error) {
	if _, err := b.client.ListModels(ctx); err != nil {
		return false, fmt.Errorf("failed to check health: %w", err)
	}
	return true, nil
}

// ListModels returns the model IDs sorted by name
func (b *OpenAIBackend) ListModels(ctx context.Context) ([]string, error) {
	models, err := b.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	names := make([]string, 0, len(models.Models))
	for _, model := range models.Models {
		names = append(names, model.ID)
	}
	sort.Strings(names)
	return names, nil
}
