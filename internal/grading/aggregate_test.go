package grading

import (
	"testing"

	"github.com/abhisek/aitutor/internal/document"
)

func TestAggregate(t *testing.T) {
	tests := []struct {
		name    string
		correct []bool
		wantPct float64
	}{
		{"empty", nil, 0},
		{"three of four", []bool{true, true, false, true}, 75.0},
		{"one of three", []bool{true, false, false}, 33.3},
		{"two of three", []bool{true, true, false}, 66.7},
		{"all", []bool{true, true}, 100},
		{"one of sixteen", sixteen(1), 6.2},
		{"three of sixteen", sixteen(3), 18.8},
		{"five of sixteen", sixteen(5), 31.2},
		{"seven of sixteen", sixteen(7), 43.8},
	}

	for _, tc := range tests {
		results := make([]Result, len(tc.correct))
		for i, c := range tc.correct {
			results[i] = Result{QuestionNumber: i + 1, IsCorrect: c}
		}
		got := Aggregate(results)
		if got.ScorePercentage != tc.wantPct {
			t.Errorf("%s: pct = %v, want %v", tc.name, got.ScorePercentage, tc.wantPct)
		}
		if got.TotalQuestions != len(tc.correct) {
			t.Errorf("%s: total = %d, want %d", tc.name, got.TotalQuestions, len(tc.correct))
		}
		for i, r := range got.PerQuestion {
			if r.QuestionNumber != i+1 {
				t.Errorf("%s: order not preserved at %d", tc.name, i)
			}
		}
	}
}

// sixteen marks the first n of sixteen questions correct.
func sixteen(n int) []bool {
	out := make([]bool, 16)
	for i := 0; i < n; i++ {
		out[i] = true
	}
	return out
}

func TestAggregate_CopiesResults(t *testing.T) {
	results := []Result{{IsCorrect: true}}
	got := Aggregate(results)
	results[0].IsCorrect = false
	if !got.PerQuestion[0].IsCorrect {
		t.Error("aggregate must not alias the input slice")
	}
}

func TestFeedback(t *testing.T) {
	tests := []struct {
		pct    float64
		prefix string
	}{
		{100, "Excellent"},
		{90, "Excellent"},
		{89.9, "Good job"},
		{70, "Good job"},
		{50, "Not bad"},
		{49.9, "Keep practicing"},
		{0, "Keep practicing"},
	}
	for _, tc := range tests {
		got := Feedback(tc.pct)
		if len(got) < len(tc.prefix) || got[:len(tc.prefix)] != tc.prefix {
			t.Errorf("Feedback(%v) = %q, want prefix %q", tc.pct, got, tc.prefix)
		}
	}
}

func TestGradeSubmission(t *testing.T) {
	questions := []document.Question{
		{Number: 1, Type: document.TypeMCQ, Options: []string{"A) 4", "B) 5"}, CorrectAnswer: "A"},
		{Number: 2, Type: document.TypeTrueFalse, CorrectAnswer: "False"},
		{Number: 3, Type: document.TypeShortAnswer, CorrectAnswer: "capital city Paris"},
		{Number: 4, Type: document.TypeMCQ, CorrectAnswer: "C"},
	}
	answers := []string{"a", "f", "Paris is the capital", "extra ignored"}

	got := GradeSubmission(questions, answers[:3])
	if got.TotalQuestions != 4 || got.CorrectCount != 3 {
		t.Fatalf("got %d/%d, want 3/4", got.CorrectCount, got.TotalQuestions)
	}
	if got.ScorePercentage != 75.0 {
		t.Errorf("pct = %v, want 75", got.ScorePercentage)
	}
	if got.PerQuestion[3].UserAnswer != "" || got.PerQuestion[3].IsCorrect {
		t.Errorf("missing answer should grade as empty: %+v", got.PerQuestion[3])
	}
}
