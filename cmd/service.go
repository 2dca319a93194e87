package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/aitutor/internal/grading"
	"github.com/abhisek/aitutor/internal/llm"
	"github.com/abhisek/aitutor/internal/logger"
	"github.com/abhisek/aitutor/internal/recovery"
	"github.com/abhisek/aitutor/internal/store"
	"github.com/abhisek/aitutor/internal/tutor"
)

// newService builds the tutor service from the environment. Every LLM call
// is journaled to st.
func newService(ctx context.Context, st *store.Store, log *logger.Logger) (*tutor.Service, error) {
	llmCfg, err := llm.Resolve()
	if err != nil {
		return nil, err
	}
	provider, err := llm.NewProvider(ctx, llmCfg, st.EventRepo(), log)
	if err != nil {
		return nil, fmt.Errorf("build LLM provider: %w", err)
	}

	recCfg := recovery.ConfigFromEnv()
	if err := recCfg.Validate(); err != nil {
		return nil, err
	}
	gradeCfg := grading.ConfigFromEnv()
	if err := gradeCfg.Validate(); err != nil {
		return nil, err
	}

	return tutor.NewService(tutor.Options{
		Provider: provider,
		LLM:      llmCfg,
		Recovery: recCfg,
		Grading:  gradeCfg,
		Config:   tutor.DefaultConfig(),
		Quizzes:  st.QuizRepo(),
		Results:  st.ResultRepo(),
		Paths:    st.PathRepo(),
		Logger:   log,
	}), nil
}

// explain turns a recovery failure into the fixed apology.
func explain(err error) error {
	var exhausted *recovery.RetryExhaustedError
	if errors.As(err, &exhausted) {
		return fmt.Errorf("%s (reason: %s)", recovery.UserMessage, exhausted.Last)
	}
	if errors.Is(err, tutor.ErrNoQuestions) {
		return errors.New(recovery.UserMessage)
	}
	return err
}
