package llm

import (
	"testing"
)

func TestNewOpenRouterProvider(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{
			APIKey: "sk-or-test",
			Model:  "google/gemini-2.0-flash-exp",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "google/gemini-2.0-flash-exp" {
			t.Errorf("model = %q, want %q", p.ModelID(), "google/gemini-2.0-flash-exp")
		}
		if p.Name() != "openrouter" {
			t.Errorf("name = %q, want openrouter", p.Name())
		}
	})

	t.Run("empty API key", func(t *testing.T) {
		if _, err := NewOpenRouterProvider(OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"}); err == nil {
			t.Fatal("expected error for empty API key")
		}
	})

	t.Run("custom model pass-through", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{
			APIKey: "sk-or-test",
			Model:  "anthropic/claude-3-haiku",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "anthropic/claude-3-haiku" {
			t.Errorf("model = %q, want %q", p.ModelID(), "anthropic/claude-3-haiku")
		}
	})
}

func TestNewGroqProvider(t *testing.T) {
	t.Run("legacy model name", func(t *testing.T) {
		p, err := NewGroqProvider(GroqConfig{APIKey: "gsk-test", Model: "llama3-70b-8192"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "llama-3.3-70b-versatile" {
			t.Errorf("model = %q, want llama-3.3-70b-versatile", p.ModelID())
		}
		if p.Name() != "groq" {
			t.Errorf("name = %q, want groq", p.Name())
		}
	})

	t.Run("empty API key", func(t *testing.T) {
		if _, err := NewGroqProvider(GroqConfig{}); err == nil {
			t.Fatal("expected error for empty API key")
		}
	})
}
