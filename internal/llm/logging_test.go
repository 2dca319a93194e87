package llm

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/abhisek/aitutor/internal/store"
)

type recordingRepo struct {
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func TestLoggingProvider_JournalsSuccess(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{Text: `{"questions":[]}`, Usage: Usage{InputTokens: 12, OutputTokens: 7}})
	p := WithLogging(mock, repo, nil)

	ctx := WithPurpose(context.Background(), PurposeQuiz)
	if _, err := p.Generate(ctx, Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "hello"}}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	e := repo.events[0]
	if e.Provider != "mock" || e.Model != "mock" || e.Purpose != PurposeQuiz {
		t.Errorf("event = %+v", e)
	}
	if !e.Success || e.InputTokens != 12 || e.OutputTokens != 7 {
		t.Errorf("event = %+v", e)
	}
	if !strings.Contains(e.RequestBody, "[system]\nsys") || !strings.Contains(e.RequestBody, "[user]\nhello") {
		t.Errorf("request body = %q", e.RequestBody)
	}
	if e.ResponseBody != `{"questions":[]}` {
		t.Errorf("response body = %q", e.ResponseBody)
	}
}

func TestLoggingProvider_JournalsFailure(t *testing.T) {
	repo := &recordingRepo{}
	p := WithLogging(NewMockProvider(MockResponse{Err: errors.New("boom")}), repo, nil)

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}
	if len(repo.events) != 1 || repo.events[0].Success || repo.events[0].ErrorMessage != "boom" {
		t.Fatalf("events = %+v", repo.events)
	}
}

func TestLoggingProvider_JournalErrorDoesNotFailRequest(t *testing.T) {
	repo := &recordingRepo{err: errors.New("disk full")}
	p := WithLogging(NewMockProvider(MockResponse{Text: "ok"}), repo, nil)

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "ok" {
		t.Fatalf("text = %q", resp.Text)
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("llama-3.3-70b-versatile")
	if c == nil {
		t.Fatal("expected pricing for groq llama")
	}
	if got := c.Cost(1_000_000, 1_000_000); got < 1.37 || got > 1.39 {
		t.Errorf("cost = %v, want ~1.38", got)
	}
	if LookupCost("nope") != nil {
		t.Error("expected nil for unknown model")
	}
}

func TestLookupCost_DefaultModels(t *testing.T) {
	cfg := DefaultConfig()
	for _, model := range []string{cfg.Anthropic.Model, cfg.OpenAI.Model, cfg.Gemini.Model, cfg.Groq.Model, cfg.OpenRouter.Model} {
		if LookupCost(model) == nil {
			t.Errorf("no pricing for default model %q", model)
		}
	}
}

func TestLookupCost_Normalization(t *testing.T) {
	tests := []struct {
		model string
		want  float64
	}{
		{"claude-haiku", 6},
		{"Claude-Haiku-4-5", 6},
		{"openai/gpt-4o-mini", 0.75},
		{"meta-llama/llama-3.3-70b-instruct:free", 0},
		{"google/gemini-2.0-flash-exp", 0},
	}
	for _, tt := range tests {
		c := LookupCost(tt.model)
		if c == nil {
			t.Errorf("%s: no pricing", tt.model)
			continue
		}
		if got := c.Cost(1_000_000, 1_000_000); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s: cost = %v, want %v", tt.model, got, tt.want)
		}
	}
}
