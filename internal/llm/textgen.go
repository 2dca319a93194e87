package llm

import "context"

// PromptGenerator adapts a Provider to single-prompt text generation.
// Each call is one user message under a fixed system prompt.
type PromptGenerator struct {
	Provider    Provider
	System      string
	MaxTokens   int
	Temperature float64
}

// NewPromptGenerator returns a PromptGenerator using the limits in cfg.
func NewPromptGenerator(p Provider, system string, cfg Config) *PromptGenerator {
	return &PromptGenerator{
		Provider:    p,
		System:      system,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}
}

// Generate returns the raw model text for prompt.
func (g *PromptGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.Provider.Generate(ctx, Request{
		System:      g.System,
		Messages:    []Message{{Role: RoleUser, Content: prompt}},
		MaxTokens:   g.MaxTokens,
		Temperature: g.Temperature,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}
