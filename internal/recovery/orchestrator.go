package recovery

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/abhisek/aitutor/internal/logger"
)

// Generator produces raw text for a prompt. It is the only blocking
// collaborator of the orchestrator.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Config bounds the regeneration loop.
type Config struct {
	// MaxRetries is the total number of generator calls allowed per task.
	MaxRetries int

	// AttemptTimeout bounds a single generator call. Zero disables it.
	AttemptTimeout time.Duration
}

// DefaultConfig returns three attempts of at most 60s each.
func DefaultConfig() Config {
	return Config{
		MaxRetries:     3,
		AttemptTimeout: 60 * time.Second,
	}
}

// ConfigFromEnv reads AITUTOR_MAX_RETRIES and AITUTOR_ATTEMPT_TIMEOUT over
// the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v, err := strconv.Atoi(os.Getenv("AITUTOR_MAX_RETRIES")); err == nil {
		cfg.MaxRetries = v
	}
	if v, err := time.ParseDuration(os.Getenv("AITUTOR_ATTEMPT_TIMEOUT")); err == nil {
		cfg.AttemptTimeout = v
	}
	return cfg
}

// Validate rejects configurations that could never produce a document.
func (c Config) Validate() error {
	if c.MaxRetries < 1 {
		return fmt.Errorf("max retries must be at least 1, got %d", c.MaxRetries)
	}
	if c.AttemptTimeout < 0 {
		return fmt.Errorf("attempt timeout must not be negative, got %s", c.AttemptTimeout)
	}
	return nil
}

// Task is one recovery request.
type Task struct {
	// Prompt is the base prompt, sent on every attempt.
	Prompt string

	// Instructions are appended to Prompt on the first attempt only.
	Instructions string

	Shape Shape

	// MaxRetries overrides Config.MaxRetries when positive.
	MaxRetries int
}

// Attempt records one failed generator call.
type Attempt struct {
	Number int
	Kind   FailureKind
	Err    error
}

// Document is a recovered, shape-checked object.
type Document struct {
	Shape    Shape
	Data     map[string]any
	Attempts int
	Strategy Strategy
	Failures []Attempt
}

// Orchestrator runs the bounded generate, extract, validate loop.
// Attempts are strictly sequential.
type Orchestrator struct {
	gen Generator
	cfg Config
	log *logger.Logger
}

// New creates an Orchestrator. A nil logger discards state transitions.
func New(gen Generator, cfg Config, log *logger.Logger) *Orchestrator {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = DefaultConfig().MaxRetries
	}
	return &Orchestrator{gen: gen, cfg: cfg, log: log.With("component", "recovery")}
}

// Recover generates until a document of task.Shape is recovered or the
// attempt budget is spent. The only error returned is *RetryExhaustedError.
func (o *Orchestrator) Recover(ctx context.Context, task Task) (*Document, error) {
	budget := task.MaxRetries
	if budget < 1 {
		budget = o.cfg.MaxRetries
	}
	log := o.log.With("shape", string(task.Shape), "budget", budget)

	if !task.Shape.Valid() {
		return nil, &RetryExhaustedError{
			Last: FailureInvalidSchema,
			Err:  &SchemaValidationError{Shape: task.Shape, Reason: "unknown shape"},
		}
	}

	var failures []Attempt
	for n := 1; n <= budget; n++ {
		if err := ctx.Err(); err != nil {
			log.Warn("recovery cancelled", "state", "FAILED", "attempt", n)
			return nil, exhausted(failures, n-1, err)
		}

		prompt := InitialPrompt(task.Prompt, task.Instructions)
		if n > 1 {
			prompt = CorrectivePrompt(task.Prompt, task.Shape)
		}

		log.Debug("generating", "state", "GENERATING", "attempt", n)
		data, strategy, err := o.attempt(ctx, prompt, task.Shape)
		if err == nil {
			log.Info("document recovered", "state", "VALID", "attempt", n, "strategy", string(strategy))
			return &Document{
				Shape:    task.Shape,
				Data:     data,
				Attempts: n,
				Strategy: strategy,
				Failures: failures,
			}, nil
		}

		kind := KindOf(err)
		failures = append(failures, Attempt{Number: n, Kind: kind, Err: err})
		log.Warn("attempt failed", "state", "INVALID", "attempt", n, "kind", string(kind), "error", err)

		if ctx.Err() != nil {
			return nil, exhausted(failures, n, ctx.Err())
		}
		if n < budget {
			log.Debug("retrying with corrective prompt", "state", "RETRY", "attempt", n)
		}
	}

	log.Error("recovery failed", "state", "FAILED", "attempts", budget)
	return nil, exhausted(failures, budget, nil)
}

func (o *Orchestrator) attempt(ctx context.Context, prompt string, shape Shape) (map[string]any, Strategy, error) {
	actx := ctx
	if o.cfg.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		actx, cancel = context.WithTimeout(ctx, o.cfg.AttemptTimeout)
		defer cancel()
	}

	raw, err := o.gen.Generate(actx, prompt)
	if err != nil {
		return nil, StrategyNone, &EmptyGenerationError{Err: err}
	}

	text, ok := Normalize(raw)
	if !ok {
		return nil, StrategyNone, &EmptyGenerationError{}
	}

	// Prefer an object carrying the required field; fall back to any object
	// so a wrong shape is reported as such rather than as unparsable.
	obj, strategy := Locate(text, shape.Accepts)
	if strategy == StrategyNone {
		obj, strategy = Locate(text, nil)
	}
	if strategy == StrategyNone {
		return nil, StrategyNone, &UnparsableOutputError{Preview: preview(text, 80)}
	}

	data, err := ValidateShape(obj, shape)
	if err != nil {
		return nil, strategy, err
	}
	return data, strategy, nil
}

// exhausted builds the terminal error. cause, when set, replaces the last
// attempt's error (parent cancellation).
func exhausted(failures []Attempt, attempts int, cause error) *RetryExhaustedError {
	e := &RetryExhaustedError{Attempts: attempts, Last: FailureEmptyGeneration, Err: cause}
	if len(failures) > 0 {
		last := failures[len(failures)-1]
		e.Last = last.Kind
		if e.Err == nil {
			e.Err = last.Err
		}
	}
	return e
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
