package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "groq", "anthropic", "openai", "gemini", "openrouter", "mock"
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	Groq       GroqConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// MaxTokens caps every generation. Default: 4000.
	MaxTokens int

	// Temperature for generation. Default: 0.3.
	Temperature float64
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string
	Model   string // Default: "claude-haiku"
	BaseURL string
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// GroqConfig holds Groq-specific configuration.
type GroqConfig struct {
	APIKey  string
	Model   string // Default: "llama-3.3-70b-versatile"
	BaseURL string // Default: "https://api.groq.com/openai/v1"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.0-flash-exp"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "groq",
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		Groq: GroqConfig{
			Model: "llama-3.3-70b-versatile",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.0-flash-exp",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		MaxTokens:   4000,
		Temperature: 0.3,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("AITUTOR_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	setString(&cfg.Anthropic.APIKey, "AITUTOR_ANTHROPIC_API_KEY")
	setString(&cfg.Anthropic.Model, "AITUTOR_ANTHROPIC_MODEL")
	setString(&cfg.Anthropic.BaseURL, "AITUTOR_ANTHROPIC_BASE_URL")

	setString(&cfg.OpenAI.APIKey, "AITUTOR_OPENAI_API_KEY")
	setString(&cfg.OpenAI.Model, "AITUTOR_OPENAI_MODEL")
	setString(&cfg.OpenAI.BaseURL, "AITUTOR_OPENAI_BASE_URL")

	setString(&cfg.Gemini.APIKey, "AITUTOR_GEMINI_API_KEY")
	setString(&cfg.Gemini.Model, "AITUTOR_GEMINI_MODEL")

	// API_KEY / MODEL_NAME are the legacy Groq deployment variables.
	setString(&cfg.Groq.APIKey, "API_KEY")
	setString(&cfg.Groq.Model, "MODEL_NAME")
	setString(&cfg.Groq.APIKey, "AITUTOR_GROQ_API_KEY")
	setString(&cfg.Groq.Model, "AITUTOR_GROQ_MODEL")
	setString(&cfg.Groq.BaseURL, "AITUTOR_GROQ_BASE_URL")

	setString(&cfg.OpenRouter.APIKey, "AITUTOR_OPENROUTER_API_KEY")
	setString(&cfg.OpenRouter.Model, "AITUTOR_OPENROUTER_MODEL")

	if v, err := strconv.Atoi(os.Getenv("AITUTOR_LLM_MAX_TOKENS")); err == nil && v > 0 {
		cfg.MaxTokens = v
	}
	if v, err := strconv.ParseFloat(os.Getenv("AITUTOR_LLM_TEMPERATURE"), 64); err == nil && v >= 0 {
		cfg.Temperature = v
	}

	return cfg
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// DiscoverConfig probes standard API key env vars in priority order
// (Groq → Gemini → OpenAI → Anthropic → OpenRouter) and returns a Config
// for the first provider whose key is found. Returns (Config{}, false) if
// none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("GROQ_API_KEY"); k != "" {
		cfg.Provider = "groq"
		cfg.Groq.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Resolve returns the explicit environment config when it is usable and
// otherwise falls back to DiscoverConfig.
func Resolve() (Config, error) {
	cfg := ConfigFromEnv()
	err := cfg.Validate()
	if err == nil {
		return cfg, nil
	}
	if os.Getenv("AITUTOR_LLM_PROVIDER") != "" {
		return Config{}, err
	}
	if discovered, ok := DiscoverConfig(); ok {
		discovered.MaxTokens = cfg.MaxTokens
		discovered.Temperature = cfg.Temperature
		return discovered, nil
	}
	return Config{}, fmt.Errorf("no LLM provider configured: set AITUTOR_LLM_PROVIDER or one of GROQ_API_KEY, GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY")
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("AITUTOR_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("AITUTOR_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("AITUTOR_GEMINI_API_KEY is required for the gemini provider")
		}
	case "groq":
		if c.Groq.APIKey == "" {
			return fmt.Errorf("AITUTOR_GROQ_API_KEY is required for the groq provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("AITUTOR_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
