package recovery

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type step struct {
	text  string
	err   error
	block bool // wait for ctx cancellation
}

// scriptedGenerator replays steps in order and records prompts.
type scriptedGenerator struct {
	mu      sync.Mutex
	steps   []step
	prompts []string
}

func (g *scriptedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	g.prompts = append(g.prompts, prompt)
	if len(g.steps) == 0 {
		g.mu.Unlock()
		return "", errors.New("script exhausted")
	}
	s := g.steps[0]
	g.steps = g.steps[1:]
	g.mu.Unlock()

	if s.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return s.text, s.err
}

func (g *scriptedGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

const validQuiz = `{"questions": [{"question": "2+2?", "type": "mcq", "options": ["A) 4", "B) 5"], "correct_answer": "A"}]}`

func quizTask() Task {
	return Task{Prompt: "Create a quiz about arithmetic.", Instructions: "Respond with JSON.", Shape: ShapeQuiz}
}

func TestRecover_FirstAttempt(t *testing.T) {
	gen := &scriptedGenerator{steps: []step{{text: "```json\n" + validQuiz + "\n```"}}}
	o := New(gen, DefaultConfig(), nil)

	doc, err := o.Recover(context.Background(), quizTask())
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Attempts)
	assert.Equal(t, ShapeQuiz, doc.Shape)
	assert.Equal(t, StrategyFence, doc.Strategy)
	assert.Empty(t, doc.Failures)
	assert.Len(t, doc.Data["questions"], 1)
	assert.Equal(t, []string{"Create a quiz about arithmetic. Respond with JSON."}, gen.prompts)
}

func TestRecover_RetriesWithCorrectivePrompt(t *testing.T) {
	gen := &scriptedGenerator{steps: []step{
		{text: "Sure! Here are some questions: 1. What is 2+2?"},
		{text: validQuiz + " Hope that helps!"},
	}}
	o := New(gen, DefaultConfig(), nil)

	doc, err := o.Recover(context.Background(), quizTask())
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Attempts)
	assert.Equal(t, StrategyBraces, doc.Strategy)
	require.Len(t, doc.Failures, 1)
	assert.Equal(t, FailureUnparsable, doc.Failures[0].Kind)

	retry := gen.prompts[1]
	assert.True(t, strings.HasPrefix(retry, "Create a quiz about arithmetic."))
	assert.NotContains(t, retry, "Respond with JSON.")
	assert.Contains(t, retry, "'questions' field")
	assert.Contains(t, retry, "Starts directly with { and ends with }")
	assert.Contains(t, retry, "no text before or after")
}

func TestRecover_ExhaustsBudget(t *testing.T) {
	gen := &scriptedGenerator{steps: []step{{text: "nope"}, {text: "still nope"}, {text: "never"}, {text: validQuiz}}}
	o := New(gen, DefaultConfig(), nil)

	_, err := o.Recover(context.Background(), quizTask())
	var ex *RetryExhaustedError
	require.True(t, errors.As(err, &ex), "expected RetryExhaustedError, got %T", err)
	assert.Equal(t, 3, ex.Attempts)
	assert.Equal(t, FailureUnparsable, ex.Last)
	assert.Equal(t, 3, gen.calls())

	report := ex.Report()
	assert.Equal(t, FailureUnparsable, report.Reason)
	assert.Equal(t, UserMessage, report.Message)
}

func TestRecover_EmptyGeneration(t *testing.T) {
	gen := &scriptedGenerator{steps: []step{{text: ""}, {text: "   \n"}, {err: errors.New("connection reset")}}}
	o := New(gen, DefaultConfig(), nil)

	_, err := o.Recover(context.Background(), quizTask())
	var ex *RetryExhaustedError
	require.True(t, errors.As(err, &ex))
	assert.Equal(t, FailureEmptyGeneration, ex.Last)
	assert.Equal(t, 3, gen.calls())

	var empty *EmptyGenerationError
	require.True(t, errors.As(err, &empty))
	assert.EqualError(t, empty.Err, "connection reset")
}

func TestRecover_InvalidSchema(t *testing.T) {
	gen := &scriptedGenerator{steps: []step{
		{text: `{"topics": []}`},
		{text: `{"questions": "three"}`},
	}}
	o := New(gen, DefaultConfig(), nil)

	task := quizTask()
	task.MaxRetries = 2
	_, err := o.Recover(context.Background(), task)

	var ex *RetryExhaustedError
	require.True(t, errors.As(err, &ex))
	assert.Equal(t, FailureInvalidSchema, ex.Last)
	assert.Equal(t, 2, ex.Attempts)

	var verr *SchemaValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "not a list", verr.Reason)
}

func TestRecover_PrefersObjectWithRequiredField(t *testing.T) {
	gen := &scriptedGenerator{steps: []step{{text: `Metadata: {"version": 2}. Quiz: ` + validQuiz}}}
	o := New(gen, DefaultConfig(), nil)

	doc, err := o.Recover(context.Background(), quizTask())
	require.NoError(t, err)
	assert.Contains(t, doc.Data, "questions")
}

func TestRecover_SkipsObjectWithNonListField(t *testing.T) {
	gen := &scriptedGenerator{steps: []step{{text: `Draft: {"questions": "none yet"} Final: ` + validQuiz}}}
	o := New(gen, DefaultConfig(), nil)

	doc, err := o.Recover(context.Background(), quizTask())
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Attempts)
	assert.Equal(t, 1, gen.calls())
	assert.IsType(t, []any{}, doc.Data["questions"])
}

func TestRecover_AttemptTimeoutCountsAsEmpty(t *testing.T) {
	gen := &scriptedGenerator{steps: []step{{block: true}, {text: validQuiz}}}
	o := New(gen, Config{MaxRetries: 3, AttemptTimeout: 20 * time.Millisecond}, nil)

	doc, err := o.Recover(context.Background(), quizTask())
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Attempts)
	require.Len(t, doc.Failures, 1)
	assert.Equal(t, FailureEmptyGeneration, doc.Failures[0].Kind)
	assert.True(t, errors.Is(doc.Failures[0].Err, context.DeadlineExceeded))
}

func TestRecover_ParentCancelled(t *testing.T) {
	gen := &scriptedGenerator{steps: []step{{text: validQuiz}}}
	o := New(gen, DefaultConfig(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := o.Recover(ctx, quizTask())
	var ex *RetryExhaustedError
	require.True(t, errors.As(err, &ex))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, gen.calls())
}

func TestRecover_CancelledDuringAttemptStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	gen := GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		cancel()
		return "", ctx.Err()
	})
	o := New(gen, DefaultConfig(), nil)

	_, err := o.Recover(ctx, quizTask())
	var ex *RetryExhaustedError
	require.True(t, errors.As(err, &ex))
	assert.Equal(t, 1, ex.Attempts)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRecover_UnknownShape(t *testing.T) {
	gen := &scriptedGenerator{}
	o := New(gen, DefaultConfig(), nil)

	_, err := o.Recover(context.Background(), Task{Prompt: "x", Shape: "essay"})
	var ex *RetryExhaustedError
	require.True(t, errors.As(err, &ex))
	assert.Equal(t, 0, gen.calls())
}

func TestRecover_NeverExceedsBudget(t *testing.T) {
	for budget := 1; budget <= 5; budget++ {
		gen := &scriptedGenerator{}
		for i := 0; i < 10; i++ {
			gen.steps = append(gen.steps, step{text: "garbage"})
		}
		o := New(gen, Config{MaxRetries: budget}, nil)

		_, err := o.Recover(context.Background(), Task{Prompt: "p", Shape: ShapeLearningPath})
		require.Error(t, err)
		assert.Equal(t, budget, gen.calls(), "budget %d", budget)
	}
}

func TestConfig(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.Error(t, Config{MaxRetries: 0}.Validate())
	assert.Error(t, Config{MaxRetries: 1, AttemptTimeout: -time.Second}.Validate())

	t.Setenv("AITUTOR_MAX_RETRIES", "5")
	t.Setenv("AITUTOR_ATTEMPT_TIMEOUT", "15s")
	cfg := ConfigFromEnv()
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, 15*time.Second, cfg.AttemptTimeout)
}

func TestCorrectivePrompt_LearningPath(t *testing.T) {
	p := CorrectivePrompt("Plan Go for me.", ShapeLearningPath)
	assert.True(t, strings.HasPrefix(p, "Plan Go for me."))
	assert.Contains(t, p, "'topics' field")
	assert.Contains(t, p, "time_required")
}
