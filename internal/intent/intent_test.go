package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectQuizRequest(t *testing.T) {
	tests := []struct {
		msg  string
		ok   bool
		want QuizIntent
	}{
		{"Can you quiz me on algebra", true, QuizIntent{Topic: "Algebra", Difficulty: "medium", QuestionCount: 5}},
		{"Make a quiz about photosynthesis, 3 questions please", true, QuizIntent{Topic: "Photosynthesis", Difficulty: "medium", QuestionCount: 3}},
		{"Give me a quiz about recursion, make it advanced with 10 questions", true, QuizIntent{Topic: "Recursion", Difficulty: "hard", QuestionCount: 10}},
		{"Test my knowledge, something easy", true, QuizIntent{Topic: "General Knowledge", Difficulty: "easy", QuestionCount: 5}},
		{"test me with 50 coding problems", true, QuizIntent{Topic: "Python Programming", Difficulty: "medium", QuestionCount: 5}},
		{"What is a closure?", false, QuizIntent{}},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			got, ok := DetectQuizRequest(tt.msg)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAnswers(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		n    int
		want []string
	}{
		{"letters", "A, B, D", 3, []string{"A", "B", "D"}},
		{"lowercase letters", "a c", 2, []string{"A", "C"}},
		{"numbered", "1. B 2) C", 2, []string{"B", "C"}},
		{"true false", "true, FALSE, True", 3, []string{"True", "False", "True"}},
		{"free text", "Paris\nmitochondria, gravity", 3, []string{"Paris", "mitochondria", "gravity"}},
		{"count mismatch", "A, B", 3, nil},
		{"empty", "   ", 2, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAnswers(tt.msg, tt.n)
			assert.Equal(t, tt.want != nil, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
