package grading

import (
	"fmt"
	"os"
	"strconv"
)

// Choice comparison modes.
const (
	ChoiceFirstLetter = "first_letter"
	ChoiceExact       = "exact"
)

// Config holds the grading heuristics.
type Config struct {
	// ShortAnswerThreshold is the fraction of reference keywords a short
	// answer must reproduce. Default: 0.5.
	ShortAnswerThreshold float64

	// MinKeywordMatches is the floor on matching keywords. Default: 1.
	MinKeywordMatches int

	// MinKeywordLength is the shortest token counted as a keyword. Default: 3.
	MinKeywordLength int

	// ChoiceMatch selects how mcq and true_false answers compare.
	// Values: "first_letter" (default), "exact".
	ChoiceMatch string
}

// DefaultConfig returns the standard grading heuristics.
func DefaultConfig() Config {
	return Config{
		ShortAnswerThreshold: 0.5,
		MinKeywordMatches:    1,
		MinKeywordLength:     3,
		ChoiceMatch:          ChoiceFirstLetter,
	}
}

// ConfigFromEnv reads AITUTOR_SHORT_ANSWER_THRESHOLD,
// AITUTOR_MIN_KEYWORD_MATCHES, AITUTOR_MIN_KEYWORD_LENGTH and
// AITUTOR_CHOICE_MATCH over the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v, err := strconv.ParseFloat(os.Getenv("AITUTOR_SHORT_ANSWER_THRESHOLD"), 64); err == nil {
		cfg.ShortAnswerThreshold = v
	}
	if v, err := strconv.Atoi(os.Getenv("AITUTOR_MIN_KEYWORD_MATCHES")); err == nil {
		cfg.MinKeywordMatches = v
	}
	if v, err := strconv.Atoi(os.Getenv("AITUTOR_MIN_KEYWORD_LENGTH")); err == nil {
		cfg.MinKeywordLength = v
	}
	if v := os.Getenv("AITUTOR_CHOICE_MATCH"); v != "" {
		cfg.ChoiceMatch = v
	}
	return cfg
}

// Validate checks the heuristics are in range.
func (c Config) Validate() error {
	if c.ShortAnswerThreshold <= 0 || c.ShortAnswerThreshold > 1 {
		return fmt.Errorf("short answer threshold must be in (0, 1], got %v", c.ShortAnswerThreshold)
	}
	if c.MinKeywordMatches < 1 {
		return fmt.Errorf("min keyword matches must be at least 1, got %d", c.MinKeywordMatches)
	}
	if c.MinKeywordLength < 1 {
		return fmt.Errorf("min keyword length must be at least 1, got %d", c.MinKeywordLength)
	}
	switch c.ChoiceMatch {
	case ChoiceFirstLetter, ChoiceExact:
	default:
		return fmt.Errorf("unknown choice match mode: %q", c.ChoiceMatch)
	}
	return nil
}
