package translation

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiBackend translates with Google Gemini
type GeminiBackend struct {
	config *Config
	client *genai.Client
}

// NewGeminiBackend creates a Gemini API backend
func NewGeminiBackend(ctx context.Context, config *Config) (*GeminiBackend, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.URL != "" {
		clientConfig.HTTPOptions.BaseURL = config.URL
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiBackend{config: config, client: client}, nil
}

// Name returns the provider name
func (b *GeminiBackend) Name() string {
	return ProviderGemini
}

func (b *GeminiBackend) model() string {
	return b.config.ModelName()
}

// Translate generates the translation with a single prompt
func (b *GeminiBackend) Translate(ctx context.Context, req *Request) (*Response, error) {
	genConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(b.config.Temperature),
		TopP:        genai.Ptr(b.config.TopP),
	}

	resp, err := b.client.Models.GenerateContent(ctx, b.model(), genai.Text(BuildPrompt(req)), genConfig)
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	return clean(resp.Text())
}

// CheckHealth fetches the configured model's metadata
func (b *GeminiBackend) CheckHealth(ctx context.Context) (bool, error) {
	if _, err := b.client.Models.Get(ctx, b.model(), nil); err != nil {
		return false, fmt.Errorf("failed to check health: %w", err)
	}
	return true, nil
}

// ListModels returns the first page of available models
func (b *GeminiBackend) ListModels(ctx context.Context) ([]string, error) {
	page, err := b.client.Models.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	names := make([]string, 0, len(page.Items))
	for _, m := range page.Items {
		names = append(names, strings.TrimPrefix(m.Name, "models/"))
	}
	return names, nil
}
