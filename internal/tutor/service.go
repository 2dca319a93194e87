// Package tutor generates quizzes and learning paths through the recovery
// engine, grades submissions and keeps the learner's history.
package tutor

import (
	"context"
	"errors"

	"github.com/abhisek/aitutor/internal/document"
	"github.com/abhisek/aitutor/internal/grading"
	"github.com/abhisek/aitutor/internal/llm"
	"github.com/abhisek/aitutor/internal/logger"
	"github.com/abhisek/aitutor/internal/recovery"
	"github.com/abhisek/aitutor/internal/store"
)

var (
	// ErrQuizNotFound is returned when a submission names an unknown quiz.
	ErrQuizNotFound = errors.New("quiz not found")

	// ErrInvalidRequest wraps request validation failures.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNoQuestions means a recovered quiz had no gradable questions.
	ErrNoQuestions = errors.New("generated quiz has no valid questions")
)

// Options holds the service's collaborators.
type Options struct {
	Provider llm.Provider
	LLM      llm.Config
	Recovery recovery.Config
	Grading  grading.Config
	Config   Config

	Quizzes store.QuizRepo
	Results store.ResultRepo
	Paths   store.PathRepo

	// Logger is optional.
	Logger *logger.Logger
}

// Service is the tutor's application layer.
type Service struct {
	orchestrators map[recovery.Shape]*recovery.Orchestrator
	grader        *grading.Grader
	cfg           Config

	quizzes store.QuizRepo
	results store.ResultRepo
	paths   store.PathRepo

	log *logger.Logger
}

// NewService wires a Service. Each document shape gets its own system prompt.
func NewService(opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	cfg := opts.Config.withDefaults()

	quizGen := llm.NewPromptGenerator(opts.Provider, quizSystemPrompt, opts.LLM)
	pathGen := llm.NewPromptGenerator(opts.Provider, pathSystemPrompt, opts.LLM)

	return &Service{
		orchestrators: map[recovery.Shape]*recovery.Orchestrator{
			recovery.ShapeQuiz:         recovery.New(quizGen, opts.Recovery, log),
			recovery.ShapeLearningPath: recovery.New(pathGen, opts.Recovery, log),
		},
		grader:  grading.NewGrader(opts.Grading),
		cfg:     cfg,
		quizzes: opts.Quizzes,
		results: opts.Results,
		paths:   opts.Paths,
		log:     log.With("component", "tutor"),
	}
}

// RecoverDocument runs the recovery loop for a raw prompt. maxRetries <= 0
// uses the configured budget.
func (s *Service) RecoverDocument(ctx context.Context, prompt string, shape recovery.Shape, maxRetries int) (*recovery.Document, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeRecover)
	return s.orchestrator(shape).Recover(ctx, recovery.Task{
		Prompt:     prompt,
		Shape:      shape,
		MaxRetries: maxRetries,
	})
}

// GradeSubmission grades answers positionally without touching storage.
func (s *Service) GradeSubmission(questions []document.Question, answers []string) grading.QuizResult {
	return s.grader.GradeSubmission(questions, answers)
}

func (s *Service) orchestrator(shape recovery.Shape) *recovery.Orchestrator {
	if o, ok := s.orchestrators[shape]; ok {
		return o
	}
	// Unknown shapes fail fast inside Recover.
	return s.orchestrators[recovery.ShapeQuiz]
}
