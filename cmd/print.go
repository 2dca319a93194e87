package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/aitutor/internal/document"
	"github.com/abhisek/aitutor/internal/grading"
	"github.com/abhisek/aitutor/internal/tutor"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printQuiz(w io.Writer, q *document.Quiz, showAnswers bool) {
	fmt.Fprintf(w, "%s\n", quizHeading(q))
	fmt.Fprintf(w, "ID: %s  Difficulty: %s  Time limit: %d min\n", q.ID, q.Difficulty, q.TimeLimit)
	fmt.Fprintln(w, strings.Repeat("─", 60))
	for _, qq := range q.Questions {
		fmt.Fprintf(w, "%d. [%s] %s\n", qq.Number, qq.Type, qq.Text)
		for _, opt := range qq.Options {
			fmt.Fprintf(w, "     %s\n", opt)
		}
		if showAnswers {
			fmt.Fprintf(w, "   Answer: %s\n", qq.CorrectAnswer)
			if qq.Explanation != "" {
				fmt.Fprintf(w, "   Why: %s\n", qq.Explanation)
			}
		}
	}
}

func quizHeading(q *document.Quiz) string {
	if q.Title != "" {
		return q.Title
	}
	return q.Topic + " Quiz"
}

func printResult(w io.Writer, res *tutor.SubmissionResult) {
	fmt.Fprintf(w, "%s: %d/%d (%.1f%%)\n", res.QuizTitle, res.CorrectCount, res.TotalQuestions, res.ScorePercentage)
	fmt.Fprintln(w, strings.Repeat("─", 60))
	for _, r := range res.PerQuestion {
		printGraded(w, r)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, res.Feedback)
}

func printGraded(w io.Writer, r grading.Result) {
	mark := "✓"
	if !r.IsCorrect {
		mark = "✗"
	}
	answer := r.UserAnswer
	if strings.TrimSpace(answer) == "" {
		answer = "(no answer)"
	}
	fmt.Fprintf(w, "Q%d: %s %s (Correct: %s)\n", r.QuestionNumber, mark, answer, r.CorrectAnswer)
	if !r.IsCorrect && r.Explanation != "" {
		fmt.Fprintf(w, "     %s\n", r.Explanation)
	}
}

func printPath(w io.Writer, p *tutor.StoredPath) {
	fmt.Fprintf(w, "%s\n", p.Path.Name)
	fmt.Fprintf(w, "ID: %s  Duration: %s\n", p.ID, p.Path.Duration)
	fmt.Fprintln(w, strings.Repeat("─", 60))
	for i, t := range p.Path.Topics {
		fmt.Fprintf(w, "%d. %s", i+1, t.Name)
		if t.TimeRequired != "" {
			fmt.Fprintf(w, " (%s)", t.TimeRequired)
		}
		fmt.Fprintln(w)
		if t.Description != "" {
			fmt.Fprintf(w, "   %s\n", t.Description)
		}
		for _, s := range t.Subtopics {
			fmt.Fprintf(w, "   - %s\n", s.Name)
		}
	}
}
