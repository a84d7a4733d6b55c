package translation

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

const (
	// DefaultOllamaURL is where a local Ollama server listens
	DefaultOllamaURL = "http://localhost:11434"
	// DefaultOllamaModel is a small model that translates well
	DefaultOllamaModel = "qwen2.5:3b"
)

// OllamaBackend uses the native Ollama generate API
type OllamaBackend struct {
	config *Config
	http   *resty.Client
}

type ollamaGenerateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
}

type ollamaTagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// NewOllamaBackend creates a backend for the Ollama server in config.URL
func NewOllamaBackend(config *Config) *OllamaBackend {
	base := config.URL
	if base == "" {
		base = DefaultOllamaURL
	}
	client := resty.New().SetBaseURL(strings.TrimRight(base, "/"))
	if config.Timeout > 0 {
		client.SetTimeout(config.Timeout)
	}
	return &OllamaBackend{config: config, http: client}
}

// Name returns the provider name
func (b *OllamaBackend) Name() string {
	return ProviderOllama
}

func (b *OllamaBackend) model() string {
	return b.config.ModelName()
}

// Translate sends the prompt to /api/generate
func (b *OllamaBackend) Translate(ctx context.Context, req *Request) (*Response, error) {
	options := map[string]any{
		"temperature": b.config.Temperature,
		"top_p":       b.config.TopP,
	}
	if req.Document {
		options["num_predict"] = 4096
	}

	var out ollamaGenerateResponse
	resp, err := b.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(ollamaGenerateRequest{
			Model:   b.model(),
			Prompt:  BuildPrompt(req),
			Stream:  false,
			Options: options,
		}).
		SetResult(&out).
		Post("/api/generate")
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("API error: %s", resp.Status())
	}

	return clean(out.Response)
}

// CheckHealth asks /api/tags, which answers as soon as the server is up
func (b *OllamaBackend) CheckHealth(ctx context.Context) (bool, error) {
	resp, err := b.http.R().SetContext(ctx).Get("/api/tags")
	if err != nil {
		return false, fmt.Errorf("failed to check health: %w", err)
	}
	return resp.IsSuccess(), nil
}

// ListModels returns the names of the locally installed models
func (b *OllamaBackend) ListModels(ctx context.Context) ([]string, error) {
	var tags ollamaTagsResponse
	resp, err := b.http.R().SetContext(ctx).SetResult(&tags).Get("/api/tags")
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("ollama list models: %s", resp.Status())
	}

	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names, nil
}
