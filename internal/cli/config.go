package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"codeberg.org/snonux/neural/internal/history"
	"codeberg.org/snonux/neural/internal/language"
	"codeberg.org/snonux/neural/internal/orchestrator"
	"codeberg.org/snonux/neural/internal/translation"
)

// SetDefaults registers the default value of every configuration key
func SetDefaults() {
	backend := translation.DefaultConfig()

	viper.SetDefault("backend.provider", backend.Provider)
	viper.SetDefault("backend.timeout", backend.Timeout)
	viper.SetDefault("backend.temperature", backend.Temperature)
	viper.SetDefault("backend.top_p", backend.TopP)
	viper.SetDefault("backend.breaker_failures", backend.BreakerFailures)
	viper.SetDefault("backend.breaker_timeout", backend.BreakerTimeout)

	pair := language.DefaultPair()
	viper.SetDefault("languages.from", string(pair.From))
	viper.SetDefault("languages.to", string(pair.To))

	viper.SetDefault("clipboard.auto_translate", false)
	viper.SetDefault("clipboard.poll_interval", time.Second)
	viper.SetDefault("cache.size", translation.DefaultCacheSize)
	viper.SetDefault("ui.indicator_duration", orchestrator.DefaultIndicatorDuration)
	viper.SetDefault("health.interval", time.Duration(0))
	viper.SetDefault("health.timeout", orchestrator.DefaultHealthTimeout)
	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.path", history.DefaultPath())
}

// BackendConfig builds the translation backend configuration. URL and model
// stay empty unless configured so each provider applies its own default.
func BackendConfig() *translation.Config {
	provider := viper.GetString("backend.provider")
	return &translation.Config{
		Provider:        provider,
		URL:             viper.GetString("backend.url"),
		Model:           viper.GetString("backend.model"),
		APIKey:          GetAPIKey(provider),
		Timeout:         viper.GetDuration("backend.timeout"),
		Temperature:     float32(viper.GetFloat64("backend.temperature")),
		TopP:            float32(viper.GetFloat64("backend.top_p")),
		BreakerFailures: viper.GetUint32("backend.breaker_failures"),
		BreakerTimeout:  viper.GetDuration("backend.breaker_timeout"),
	}
}

// LanguagePair returns the configured language pair
func LanguagePair() (language.Pair, error) {
	pair, err := language.NewPair(viper.GetString("languages.from"), viper.GetString("languages.to"))
	if err != nil {
		return language.Pair{}, fmt.Errorf("invalid languages in config: %w", err)
	}
	return pair, nil
}

// OrchestratorConfig returns the orchestrator settings from the config.
// Backend, clipboard, shortcut source and history are wired by the caller.
func OrchestratorConfig() (orchestrator.Config, error) {
	pair, err := LanguagePair()
	if err != nil {
		return orchestrator.Config{}, err
	}
	return orchestrator.Config{
		Pair:              pair,
		AutoTranslate:     viper.GetBool("clipboard.auto_translate"),
		CacheSize:         viper.GetInt("cache.size"),
		PollInterval:      viper.GetDuration("clipboard.poll_interval"),
		IndicatorDuration: viper.GetDuration("ui.indicator_duration"),
		HealthInterval:    viper.GetDuration("health.interval"),
		HealthTimeout:     viper.GetDuration("health.timeout"),
	}, nil
}

// HistoryEnabled reports whether translations are recorded
func HistoryEnabled() bool {
	return viper.GetBool("history.enabled")
}

// HistoryPath returns the history database path
func HistoryPath() string {
	return viper.GetString("history.path")
}

// GetAPIKey retrieves the API key for provider from environment or config
func GetAPIKey(provider string) string {
	// First check the provider's own environment variable
	switch provider {
	case translation.ProviderOpenAI:
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			return key
		}
	case translation.ProviderGemini:
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			return key
		}
	}

	// Then check config file
	return viper.GetString("backend.api_key")
}
