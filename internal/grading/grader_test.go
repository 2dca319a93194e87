package grading

import (
	"testing"

	"github.com/abhisek/aitutor/internal/document"
)

func TestGrade_Choice(t *testing.T) {
	mcq := document.Question{Number: 1, Text: "Pick", Type: document.TypeMCQ,
		Options: []string{"A) for", "B) def"}, CorrectAnswer: "A"}
	tf := document.Question{Number: 2, Text: "True or False", Type: document.TypeTrueFalse, CorrectAnswer: "True"}

	tests := []struct {
		name string
		q    document.Question
		in   string
		want bool
	}{
		{"letter", mcq, "A", true},
		{"lowercase", mcq, "a", true},
		{"padded", mcq, "  a  ", true},
		{"with option text", mcq, "A) for", true},
		{"wrong letter", mcq, "B", false},
		{"empty", mcq, "", false},
		{"whitespace", mcq, "   ", false},
		{"true", tf, "true", true},
		{"T", tf, "T", true},
		{"false", tf, "False", false},
	}

	for _, tc := range tests {
		got := Grade(tc.q, tc.in).IsCorrect
		if got != tc.want {
			t.Errorf("%s: Grade(%q) = %v, want %v", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestGrade_ChoiceExact(t *testing.T) {
	g := NewGrader(Config{ChoiceMatch: ChoiceExact})
	q := document.Question{Type: document.TypeTrueFalse, CorrectAnswer: "True"}

	if !g.IsCorrect(q, "true") {
		t.Error("exact mode should still ignore case")
	}
	if g.IsCorrect(q, "T") {
		t.Error("exact mode should not accept a first-letter match")
	}
}

func TestGrade_ShortAnswerThreshold(t *testing.T) {
	four := document.Question{Type: document.TypeShortAnswer,
		CorrectAnswer: "mitochondria produce cellular energy"}
	five := document.Question{Type: document.TypeShortAnswer,
		CorrectAnswer: "By understanding the principles of iteration and applying them to loops"}

	tests := []struct {
		name string
		q    document.Question
		in   string
		want bool
	}{
		{"2 of 4", four, "mitochondria make energy", true},
		{"1 of 4", four, "energy", false},
		{"2 of 5", five, "iteration loops are important", false},
		{"3 of 5", five, "understanding iteration and loops", true},
		{"case and punctuation", five, "LOOPS, Iteration; principles!", true},
		{"stop words only", five, "the and them", false},
	}

	for _, tc := range tests {
		got := Grade(tc.q, tc.in).IsCorrect
		if got != tc.want {
			t.Errorf("%s: Grade(%q) = %v, want %v", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestGrade_ShortAnswerSingleKeyword(t *testing.T) {
	q := document.Question{Type: document.TypeShortAnswer, CorrectAnswer: "photosynthesis"}

	if !Grade(q, "it is photosynthesis").IsCorrect {
		t.Error("answer containing the keyword should be correct")
	}
	if Grade(q, "respiration").IsCorrect {
		t.Error("answer without the keyword should be incorrect")
	}
}

func TestGrade_ShortAnswerNoKeywords(t *testing.T) {
	q := document.Question{Type: document.TypeShortAnswer, CorrectAnswer: "H2"}

	tests := []struct {
		in   string
		want bool
	}{
		{"h2", true},
		{"It is H2 gas", true},
		{"H", true},
		{"O2", false},
	}
	for _, tc := range tests {
		if got := Grade(q, tc.in).IsCorrect; got != tc.want {
			t.Errorf("Grade(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestGrade_UnknownType(t *testing.T) {
	q := document.Question{Type: "fill_blank", CorrectAnswer: "Paris"}
	if !Grade(q, " paris ").IsCorrect {
		t.Error("unknown type should compare case-insensitively")
	}
	if Grade(q, "Par").IsCorrect {
		t.Error("unknown type should require the whole answer")
	}
}

func TestGrade_ResultFields(t *testing.T) {
	q := document.Question{Number: 3, Text: "Q", Type: document.TypeMCQ,
		Options: []string{"A) x", "B) y"}, CorrectAnswer: "B", Explanation: "y wins"}

	r := Grade(q, "b")
	if !r.IsCorrect || r.Feedback != "Correct!" {
		t.Errorf("got %+v, want correct", r)
	}
	if r.QuestionNumber != 3 || r.UserAnswer != "b" || r.CorrectAnswer != "B" || r.Explanation != "y wins" {
		t.Errorf("fields not carried: %+v", r)
	}

	r = Grade(q, "A")
	if r.IsCorrect || r.Feedback != "Incorrect answer." {
		t.Errorf("got %+v, want incorrect", r)
	}
}

func TestGrade_Deterministic(t *testing.T) {
	q := document.Question{Type: document.TypeShortAnswer, CorrectAnswer: "gravity pulls objects toward earth"}
	first := Grade(q, "objects fall toward earth").IsCorrect
	for i := 0; i < 50; i++ {
		if Grade(q, "objects fall toward earth").IsCorrect != first {
			t.Fatal("grading is not deterministic")
		}
	}
}

func TestConfig(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	bad := []Config{
		{ShortAnswerThreshold: 0, MinKeywordMatches: 1, MinKeywordLength: 3, ChoiceMatch: ChoiceFirstLetter},
		{ShortAnswerThreshold: 0.5, MinKeywordMatches: 0, MinKeywordLength: 3, ChoiceMatch: ChoiceFirstLetter},
		{ShortAnswerThreshold: 0.5, MinKeywordMatches: 1, MinKeywordLength: 3, ChoiceMatch: "fuzzy"},
	}
	for i, c := range bad {
		if err := c.Validate(); err == nil {
			t.Errorf("config %d: expected error", i)
		}
	}

	t.Setenv("AITUTOR_SHORT_ANSWER_THRESHOLD", "0.75")
	t.Setenv("AITUTOR_CHOICE_MATCH", "exact")
	cfg := ConfigFromEnv()
	if cfg.ShortAnswerThreshold != 0.75 || cfg.ChoiceMatch != ChoiceExact {
		t.Errorf("ConfigFromEnv = %+v", cfg)
	}
}

func TestNewGrader_Threshold(t *testing.T) {
	g := NewGrader(Config{ShortAnswerThreshold: 0.75})
	q := document.Question{Type: document.TypeShortAnswer, CorrectAnswer: "mitochondria produce cellular energy"}

	if g.IsCorrect(q, "mitochondria make energy") {
		t.Error("2 of 4 should fail at 0.75")
	}
	if !g.IsCorrect(q, "mitochondria produce energy") {
		t.Error("3 of 4 should pass at 0.75")
	}
}
