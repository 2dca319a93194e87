// Package grading scores quiz answers against reference answers and
// aggregates the results. Everything here is pure and safe for concurrent
// use.
package grading

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/aitutor/internal/document"
)

// Result is the outcome of grading one question.
type Result struct {
	QuestionNumber int      `json:"question_number"`
	QuestionText   string   `json:"question"`
	Type           string   `json:"type"`
	Options        []string `json:"options,omitempty"`
	UserAnswer     string   `json:"user_answer"`
	CorrectAnswer  string   `json:"correct_answer"`
	IsCorrect      bool     `json:"is_correct"`
	Explanation    string   `json:"explanation"`
	Feedback       string   `json:"feedback"`
}

var wordRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)

var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true, "not": true,
	"you": true, "all": true, "any": true, "can": true, "had": true, "her": true,
	"was": true, "one": true, "our": true, "out": true, "has": true, "him": true,
	"his": true, "how": true, "its": true, "may": true, "who": true, "did": true,
	"yes": true, "she": true, "too": true, "use": true, "that": true, "with": true,
	"this": true, "from": true, "they": true, "them": true, "then": true, "than": true,
	"have": true, "were": true, "been": true, "will": true, "would": true, "could": true,
	"should": true, "there": true, "their": true, "what": true, "when": true, "where": true,
	"which": true, "while": true, "into": true, "onto": true, "upon": true, "also": true,
	"some": true, "such": true, "each": true, "very": true, "just": true, "only": true,
	"your": true, "these": true, "those": true, "being": true, "does": true, "doing": true,
}

// Grader grades answers with a fixed set of heuristics.
type Grader struct {
	cfg Config
}

// NewGrader creates a Grader. Out-of-range settings fall back to defaults.
func NewGrader(cfg Config) *Grader {
	def := DefaultConfig()
	if cfg.ShortAnswerThreshold <= 0 || cfg.ShortAnswerThreshold > 1 {
		cfg.ShortAnswerThreshold = def.ShortAnswerThreshold
	}
	if cfg.MinKeywordMatches < 1 {
		cfg.MinKeywordMatches = def.MinKeywordMatches
	}
	if cfg.MinKeywordLength < 1 {
		cfg.MinKeywordLength = def.MinKeywordLength
	}
	if cfg.ChoiceMatch != ChoiceExact {
		cfg.ChoiceMatch = ChoiceFirstLetter
	}
	return &Grader{cfg: cfg}
}

// Default is a Grader with the default heuristics.
var Default = NewGrader(DefaultConfig())

// Grade grades one answer with the default heuristics.
func Grade(q document.Question, answer string) Result {
	return Default.Grade(q, answer)
}

// Grade grades one answer. An empty answer is always incorrect.
func (g *Grader) Grade(q document.Question, answer string) Result {
	correct := g.IsCorrect(q, answer)
	r := Result{
		QuestionNumber: q.Number,
		QuestionText:   q.Text,
		Type:           q.Type,
		Options:        q.Options,
		UserAnswer:     answer,
		CorrectAnswer:  q.CorrectAnswer,
		IsCorrect:      correct,
		Explanation:    q.Explanation,
		Feedback:       "Incorrect answer.",
	}
	if correct {
		r.Feedback = "Correct!"
	}
	return r
}

// IsCorrect reports whether answer matches the question's reference.
func (g *Grader) IsCorrect(q document.Question, answer string) bool {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return false
	}
	ref := strings.TrimSpace(q.CorrectAnswer)

	switch q.Type {
	case document.TypeMCQ, document.TypeTrueFalse, "":
		return g.matchChoice(answer, ref)
	case document.TypeShortAnswer:
		return g.matchKeywords(answer, ref)
	default:
		return strings.EqualFold(answer, ref)
	}
}

func (g *Grader) matchChoice(answer, ref string) bool {
	a := strings.ToUpper(answer)
	r := strings.ToUpper(ref)
	if g.cfg.ChoiceMatch == ChoiceExact {
		return a == r
	}
	if r == "" {
		return false
	}
	ar, _ := utf8.DecodeRuneInString(a)
	rr, _ := utf8.DecodeRuneInString(r)
	return ar == rr
}

func (g *Grader) matchKeywords(answer, ref string) bool {
	refWords := g.keywords(ref)
	if len(refWords) == 0 {
		a := strings.ToLower(answer)
		r := strings.ToLower(ref)
		if r == "" {
			return false
		}
		return strings.Contains(a, r) || strings.Contains(r, a)
	}

	userWords := g.keywords(answer)
	matches := 0
	for w := range refWords {
		if userWords[w] {
			matches++
		}
	}
	need := math.Max(float64(g.cfg.MinKeywordMatches), g.cfg.ShortAnswerThreshold*float64(len(refWords)))
	return float64(matches) >= need
}

// keywords returns the set of significant lowercase tokens in s.
func (g *Grader) keywords(s string) map[string]bool {
	out := make(map[string]bool)
	for _, w := range wordRe.FindAllString(strings.ToLower(s), -1) {
		if utf8.RuneCountInString(w) < g.cfg.MinKeywordLength || stopWords[w] {
			continue
		}
		out[w] = true
	}
	return out
}
