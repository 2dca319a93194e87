package grading

// Attempt is one past submission as seen by analytics.
type Attempt struct {
	QuizTitle string
	Score     float64
	Correct   int
	Total     int
}

// SubjectStats summarizes attempts sharing a quiz title.
type SubjectStats struct {
	Attempts     int     `json:"attempts"`
	AverageScore float64 `json:"average_score"`
	BestScore    float64 `json:"best_score"`
}

// Analytics summarizes a learner's submissions.
type Analytics struct {
	TotalQuizzes           int                     `json:"total_quizzes"`
	AverageScore           float64                 `json:"average_score"`
	BestScore              float64                 `json:"best_score"`
	TotalQuestionsAnswered int                     `json:"total_questions_answered"`
	AccuracyRate           float64                 `json:"accuracy_rate"`
	SubjectPerformance     map[string]SubjectStats `json:"subject_performance"`
}

// Analyze computes analytics over attempts. Scores round to two decimals.
func Analyze(attempts []Attempt) Analytics {
	a := Analytics{SubjectPerformance: map[string]SubjectStats{}}
	if len(attempts) == 0 {
		return a
	}

	var scoreSum float64
	var correct int
	sums := map[string]float64{}
	for _, at := range attempts {
		title := at.QuizTitle
		if title == "" {
			title = "Unknown"
		}
		scoreSum += at.Score
		if at.Score > a.BestScore {
			a.BestScore = at.Score
		}
		a.TotalQuestionsAnswered += at.Total
		correct += at.Correct

		s := a.SubjectPerformance[title]
		s.Attempts++
		if at.Score > s.BestScore {
			s.BestScore = at.Score
		}
		sums[title] += at.Score
		a.SubjectPerformance[title] = s
	}

	for title, s := range a.SubjectPerformance {
		s.AverageScore = round(sums[title]/float64(s.Attempts), 2)
		a.SubjectPerformance[title] = s
	}

	a.TotalQuizzes = len(attempts)
	a.AverageScore = round(scoreSum/float64(len(attempts)), 2)
	a.BestScore = round(a.BestScore, 2)
	if a.TotalQuestionsAnswered > 0 {
		a.AccuracyRate = round(100*float64(correct)/float64(a.TotalQuestionsAnswered), 2)
	}
	return a
}
