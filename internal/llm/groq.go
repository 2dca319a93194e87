package llm

import "fmt"

const defaultGroqBaseURL = "https://api.groq.com/openai/v1"

// groqModels maps retired model names still found in deployments to their
// current replacements.
var groqModels = map[string]string{
	"llama3-70b-8192": "llama-3.3-70b-versatile",
	"llama3-8b-8192":  "llama-3.1-8b-instant",
}

// GroqProvider wraps OpenAIProvider with Groq defaults.
type GroqProvider struct {
	*OpenAIProvider
}

// NewGroqProvider creates a provider targeting Groq's OpenAI-compatible API.
func NewGroqProvider(cfg GroqConfig) (*GroqProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("groq API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}

	return &GroqProvider{
		OpenAIProvider: newCompatProvider("groq", cfg.APIKey, baseURL, resolveModel(cfg.Model, groqModels)),
	}, nil
}
