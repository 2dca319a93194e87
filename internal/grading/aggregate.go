package grading

import (
	"math"

	"github.com/abhisek/aitutor/internal/document"
)

// QuizResult is the aggregate score of a graded submission.
type QuizResult struct {
	TotalQuestions  int      `json:"total_questions"`
	CorrectCount    int      `json:"correct_answers"`
	ScorePercentage float64  `json:"score_percentage"`
	PerQuestion     []Result `json:"detailed_results"`
	Feedback        string   `json:"feedback"`
}

// Aggregate totals graded results. The percentage is rounded to one decimal
// and is 0 for an empty slice. Order is preserved.
func Aggregate(results []Result) QuizResult {
	correct := 0
	for _, r := range results {
		if r.IsCorrect {
			correct++
		}
	}

	pct := 0.0
	if n := len(results); n > 0 {
		pct = round(100*float64(correct)/float64(n), 1)
	}

	return QuizResult{
		TotalQuestions:  len(results),
		CorrectCount:    correct,
		ScorePercentage: pct,
		PerQuestion:     append([]Result(nil), results...),
		Feedback:        Feedback(pct),
	}
}

// GradeSubmission grades answers positionally against questions. Missing
// answers grade as empty; extra answers are ignored.
func (g *Grader) GradeSubmission(questions []document.Question, answers []string) QuizResult {
	results := make([]Result, len(questions))
	for i, q := range questions {
		var a string
		if i < len(answers) {
			a = answers[i]
		}
		results[i] = g.Grade(q, a)
	}
	return Aggregate(results)
}

// GradeSubmission grades with the default heuristics.
func GradeSubmission(questions []document.Question, answers []string) QuizResult {
	return Default.GradeSubmission(questions, answers)
}

// Feedback returns the encouragement line for a percentage score.
func Feedback(pct float64) string {
	switch {
	case pct >= 90:
		return "Excellent work! You have a strong understanding of the topic."
	case pct >= 70:
		return "Good job! You're doing well, with room for minor improvements."
	case pct >= 50:
		return "Not bad! Review the explanations and try to improve."
	default:
		return "Keep practicing! Review the material and try again."
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.RoundToEven(v*p) / p
}
