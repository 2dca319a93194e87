package grading

import "testing"

func TestAnalyze_Empty(t *testing.T) {
	a := Analyze(nil)
	if a.TotalQuizzes != 0 || a.AverageScore != 0 || a.AccuracyRate != 0 {
		t.Errorf("got %+v, want zero analytics", a)
	}
	if a.SubjectPerformance == nil {
		t.Error("subject performance should be an empty map, not nil")
	}
}

func TestAnalyze(t *testing.T) {
	a := Analyze([]Attempt{
		{QuizTitle: "Loops", Score: 80, Correct: 4, Total: 5},
		{QuizTitle: "Loops", Score: 60, Correct: 3, Total: 5},
		{QuizTitle: "Recursion", Score: 33, Correct: 1, Total: 3},
		{Score: 100, Correct: 2, Total: 2},
	})

	if a.TotalQuizzes != 4 {
		t.Errorf("total quizzes = %d, want 4", a.TotalQuizzes)
	}
	if a.AverageScore != 68.25 {
		t.Errorf("average = %v, want 68.25", a.AverageScore)
	}
	if a.BestScore != 100 {
		t.Errorf("best = %v, want 100", a.BestScore)
	}
	if a.TotalQuestionsAnswered != 15 {
		t.Errorf("answered = %d, want 15", a.TotalQuestionsAnswered)
	}
	if a.AccuracyRate != 66.67 {
		t.Errorf("accuracy = %v, want 66.67", a.AccuracyRate)
	}

	loops := a.SubjectPerformance["Loops"]
	if loops.Attempts != 2 || loops.AverageScore != 70 || loops.BestScore != 80 {
		t.Errorf("Loops = %+v", loops)
	}
	if _, ok := a.SubjectPerformance["Unknown"]; !ok {
		t.Error("untitled attempts should be grouped under Unknown")
	}
}
