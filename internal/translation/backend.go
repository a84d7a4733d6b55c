package translation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/neural/internal/language"
)

// ErrNoTranslation is returned when a backend answers without any text
var ErrNoTranslation = errors.New("no translation returned")

// Request is a single translation request as sent to a backend. From must
// already be a concrete language (see language.Pair.EffectiveFrom).
type Request struct {
	Text string
	From language.Language
	To   language.Language

	// Document selects the long-form prompt that preserves markdown
	Document bool
}

// Response holds the backend answer
type Response struct {
	TranslatedText string
}

// Backend is the request/response surface of a translation service
type Backend interface {
	// Translate translates the request text
	Translate(ctx context.Context, req *Request) (*Response, error)

	// CheckHealth reports whether the service is reachable. A transport
	// failure is returned as an error, an unhealthy answer as false.
	CheckHealth(ctx context.Context) (bool, error)

	// Name returns the provider name
	Name() string
}

// ModelLister is implemented by backends that can enumerate their models
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// Provider names accepted by NewBackend
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config holds the backend configuration
type Config struct {
	Provider string // "ollama", "openai" or "gemini"
	URL      string // Base URL, provider specific default when empty
	Model    string
	APIKey   string
	Timeout  time.Duration

	Temperature float32
	TopP        float32

	// Circuit breaker, disabled when BreakerFailures is 0
	BreakerFailures uint32
	BreakerTimeout  time.Duration

	// Logger receives backend events, log.Default() when nil
	Logger *log.Logger
}

// DefaultConfig returns the configuration of the local Ollama setup
func DefaultConfig() *Config {
	return &Config{
		Provider:        ProviderOllama,
		URL:             DefaultOllamaURL,
		Model:           DefaultOllamaModel,
		Timeout:         60 * time.Second,
		Temperature:     0.3,
		TopP:            0.9,
		BreakerFailures: 5,
		BreakerTimeout:  30 * time.Second,
	}
}

// NewBackend creates the backend selected by the configuration, wrapped in a
// circuit breaker when one is configured
func NewBackend(config *Config) (Backend, error) {
	if config == nil {
		config = DefaultConfig()
	}

	var (
		backend Backend
		err     error
	)
	switch strings.ToLower(config.Provider) {
	case ProviderOllama, "":
		backend = NewOllamaBackend(config)
	case ProviderOpenAI:
		backend = NewOpenAIBackend(config)
	case ProviderGemini:
		backend, err = NewGeminiBackend(context.Background(), config)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown translation provider: %s", config.Provider)
	}

	if config.BreakerFailures > 0 {
		backend = NewBreaker(backend, config.BreakerFailures, config.BreakerTimeout, config.Logger)
	}
	return backend, nil
}

// ModelName returns the configured model, or the provider default when none
// is set
func (c *Config) ModelName() string {
	if c.Model != "" {
		return c.Model
	}
	switch strings.ToLower(c.Provider) {
	case ProviderOpenAI:
		return openai.GPT4oMini
	case ProviderGemini:
		return DefaultGeminiModel
	default:
		return DefaultOllamaModel
	}
}

// BuildPrompt returns the instruction sent to generative backends
func BuildPrompt(req *Request) string {
	if req.Document {
		return fmt.Sprintf("Translate the following markdown document from %s to %s. "+
			"Preserve all markdown formatting, code blocks, links, and structure. "+
			"Only provide the translated content without explanations:\n\n%s",
			req.From, req.To, req.Text)
	}
	return fmt.Sprintf("Translate the following text from %s to %s. "+
		"Only provide the translation without any explanations or additional text:\n\n%s",
		req.From, req.To, req.Text)
}

// clean trims the model output and rejects empty answers
func clean(text string) (*Response, error) {
	translated := strings.TrimSpace(text)
	if translated == "" {
		return nil, ErrNoTranslation
	}
	return &Response{TranslatedText: translated}, nil
}
