package translation

import (
	"context"
	"os"
	"testing"

	"codeberg.org/snonux/neural/internal/language"
)

func TestNewGeminiBackend_NoAPIKey(t *testing.T) {
	_, err := NewGeminiBackend(context.Background(), &Config{Provider: "gemini"})
	if err == nil {
		t.Fatal("Expected error for missing API key")
	}
	if err.Error() != "Gemini API key is required" {
		t.Errorf("Expected 'Gemini API key is required' error, got: %v", err)
	}
}

func TestNewGeminiBackend(t *testing.T) {
	backend, err := NewGeminiBackend(context.Background(), &Config{Provider: "gemini", APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewGeminiBackend() unexpected error: %v", err)
	}
	if backend.Name() != "gemini" {
		t.Errorf("Name() = %s", backend.Name())
	}
	if backend.model() != DefaultGeminiModel {
		t.Errorf("model() = %s, want %s", backend.model(), DefaultGeminiModel)
	}
}

func TestGeminiBackend_Integration(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: GEMINI_API_KEY not set")
	}

	backend, err := NewGeminiBackend(context.Background(), &Config{APIKey: apiKey, Temperature: 0.3, TopP: 0.9})
	if err != nil {
		t.Fatalf("NewGeminiBackend() failed: %v", err)
	}

	resp, err := backend.Translate(context.Background(), &Request{Text: "apple", From: language.English, To: language.Japanese})
	if err != nil {
		t.Fatalf("Translate() failed: %v", err)
	}
	t.Logf("Translation of 'apple': %s", resp.TranslatedText)
}
