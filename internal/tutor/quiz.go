package tutor

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/aitutor/internal/document"
	"github.com/abhisek/aitutor/internal/grading"
	"github.com/abhisek/aitutor/internal/llm"
	"github.com/abhisek/aitutor/internal/recovery"
	"github.com/abhisek/aitutor/internal/store"
)

var allQuestionTypes = []string{document.TypeMCQ, document.TypeTrueFalse, document.TypeShortAnswer}

// QuizRequest asks for a new quiz.
type QuizRequest struct {
	Username      string   `json:"username"`
	Topic         string   `json:"topic"`
	Difficulty    string   `json:"difficulty"`
	QuestionCount int      `json:"question_count"`
	QuestionTypes []string `json:"question_types"`
	TimeLimit     int      `json:"time_limit"`
}

func (s *Service) normalizeQuizRequest(req QuizRequest) (QuizRequest, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Topic = strings.TrimSpace(req.Topic)
	if req.Username == "" {
		return req, fmt.Errorf("%w: username is required", ErrInvalidRequest)
	}
	if req.Topic == "" {
		return req, fmt.Errorf("%w: topic is required", ErrInvalidRequest)
	}

	switch strings.ToLower(req.Difficulty) {
	case "easy", "medium", "hard":
		req.Difficulty = strings.ToLower(req.Difficulty)
	case "":
		req.Difficulty = "medium"
	default:
		return req, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidRequest, req.Difficulty)
	}

	if req.QuestionCount <= 0 {
		req.QuestionCount = s.cfg.DefaultQuestionCount
	}
	if req.QuestionCount > s.cfg.MaxQuestionCount {
		req.QuestionCount = s.cfg.MaxQuestionCount
	}
	if req.TimeLimit <= 0 {
		req.TimeLimit = s.cfg.DefaultTimeLimit
	}

	var types []string
	for _, t := range req.QuestionTypes {
		t = strings.ToLower(strings.TrimSpace(t))
		if !slices.Contains(allQuestionTypes, t) {
			return req, fmt.Errorf("%w: unknown question type %q", ErrInvalidRequest, t)
		}
		if !slices.Contains(types, t) {
			types = append(types, t)
		}
	}
	if len(types) == 0 {
		types = allQuestionTypes
	}
	req.QuestionTypes = types
	return req, nil
}

// GenerateQuiz generates, stores and returns a quiz. A recovery failure is
// returned as *recovery.RetryExhaustedError.
func (s *Service) GenerateQuiz(ctx context.Context, req QuizRequest) (*document.Quiz, error) {
	req, err := s.normalizeQuizRequest(req)
	if err != nil {
		return nil, err
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeQuiz)

	base, instructions := buildQuizPrompt(req)
	doc, err := s.orchestrators[recovery.ShapeQuiz].Recover(ctx, recovery.Task{
		Prompt:       base,
		Instructions: instructions,
		Shape:        recovery.ShapeQuiz,
	})
	if err != nil {
		return nil, err
	}

	quiz := document.DecodeQuiz(doc.Data)
	quiz.ID = "quiz_" + uuid.NewString()
	if quiz.Topic == "" {
		quiz.Topic = req.Topic
	}
	if quiz.Difficulty == "" {
		quiz.Difficulty = req.Difficulty
	}
	if quiz.TimeLimit <= 0 {
		quiz.TimeLimit = req.TimeLimit
	}

	valid := quiz.Questions[:0]
	for _, q := range quiz.Questions {
		if q.Valid() {
			valid = append(valid, q)
			continue
		}
		s.log.Warn("dropping invalid question", "quiz_id", quiz.ID, "number", q.Number, "type", q.Type)
	}
	quiz.Questions = valid
	if len(quiz.Questions) == 0 {
		return nil, ErrNoQuestions
	}

	data, err := json.Marshal(quiz)
	if err != nil {
		return nil, fmt.Errorf("encode quiz: %w", err)
	}
	if err := s.quizzes.Save(ctx, &store.QuizRecord{
		ID:         quiz.ID,
		Username:   req.Username,
		Topic:      quiz.Topic,
		Title:      quiz.Title,
		Difficulty: quiz.Difficulty,
		Data:       data,
	}); err != nil {
		return nil, err
	}

	s.log.Info("quiz generated", "quiz_id", quiz.ID, "questions", len(quiz.Questions), "attempts", doc.Attempts)
	return &quiz, nil
}

// StoredQuiz is a quiz with its storage metadata.
type StoredQuiz struct {
	Quiz        document.Quiz `json:"quiz"`
	Username    string        `json:"username"`
	Status      string        `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
}

// GetQuiz loads a stored quiz, answer key included.
func (s *Service) GetQuiz(ctx context.Context, id string) (*StoredQuiz, error) {
	rec, err := s.quizzes.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrQuizNotFound
	}
	var quiz document.Quiz
	if err := json.Unmarshal(rec.Data, &quiz); err != nil {
		return nil, fmt.Errorf("decode quiz %s: %w", id, err)
	}
	return &StoredQuiz{
		Quiz:        quiz,
		Username:    rec.Username,
		Status:      rec.Status,
		CreatedAt:   rec.CreatedAt,
		CompletedAt: rec.CompletedAt,
	}, nil
}

// Submission is a learner's answers to a stored quiz, in question order.
type Submission struct {
	Username string   `json:"username"`
	QuizID   string   `json:"quiz_id"`
	Answers  []string `json:"answers"`
}

// SubmissionResult is a graded, stored submission.
type SubmissionResult struct {
	ID          string    `json:"id"`
	QuizID      string    `json:"quiz_id"`
	QuizTitle   string    `json:"quiz_title"`
	Username    string    `json:"username"`
	SubmittedAt time.Time `json:"submitted_at"`
	grading.QuizResult
}

// SubmitQuiz grades a submission against the stored quiz, appends the
// result and marks the quiz completed. Resubmissions append new results.
func (s *Service) SubmitQuiz(ctx context.Context, sub Submission) (*SubmissionResult, error) {
	if strings.TrimSpace(sub.QuizID) == "" {
		return nil, fmt.Errorf("%w: quiz_id is required", ErrInvalidRequest)
	}

	stored, err := s.GetQuiz(ctx, sub.QuizID)
	if err != nil {
		return nil, err
	}
	if sub.Username != "" && stored.Username != sub.Username {
		return nil, ErrQuizNotFound
	}

	result := &SubmissionResult{
		ID:          "result_" + uuid.NewString(),
		QuizID:      sub.QuizID,
		QuizTitle:   quizTitle(stored.Quiz),
		Username:    stored.Username,
		SubmittedAt: time.Now().UTC(),
		QuizResult:  s.grader.GradeSubmission(stored.Quiz.Questions, sub.Answers),
	}

	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	if err := s.results.Append(ctx, &store.ResultRecord{
		ID:          result.ID,
		QuizID:      result.QuizID,
		Username:    result.Username,
		QuizTitle:   result.QuizTitle,
		Score:       result.ScorePercentage,
		Correct:     result.CorrectCount,
		Total:       result.TotalQuestions,
		Data:        data,
		SubmittedAt: result.SubmittedAt,
	}); err != nil {
		return nil, err
	}
	if err := s.quizzes.MarkCompleted(ctx, sub.QuizID, result.SubmittedAt); err != nil {
		return nil, err
	}

	s.log.Info("quiz submitted", "quiz_id", sub.QuizID, "score", result.ScorePercentage,
		"correct", result.CorrectCount, "total", result.TotalQuestions)
	return result, nil
}

func quizTitle(q document.Quiz) string {
	switch {
	case q.Title != "":
		return q.Title
	case q.Topic != "":
		return q.Topic
	default:
		return "Knowledge Challenge"
	}
}

// QuizHistory returns a learner's graded submissions, newest first.
func (s *Service) QuizHistory(ctx context.Context, username string, limit int) ([]SubmissionResult, error) {
	if limit <= 0 {
		limit = s.cfg.HistoryLimit
	}
	recs, err := s.results.ListByUser(ctx, username, limit)
	if err != nil {
		return nil, err
	}

	out := make([]SubmissionResult, 0, len(recs))
	for _, rec := range recs {
		var r SubmissionResult
		if err := json.Unmarshal(rec.Data, &r); err != nil {
			s.log.Warn("result data unreadable, using summary", "result_id", rec.ID, "error", err)
			r = SubmissionResult{
				QuizResult: grading.QuizResult{
					TotalQuestions:  rec.Total,
					CorrectCount:    rec.Correct,
					ScorePercentage: rec.Score,
					Feedback:        grading.Feedback(rec.Score),
				},
			}
		}
		r.ID = rec.ID
		r.QuizID = rec.QuizID
		r.QuizTitle = rec.QuizTitle
		r.Username = rec.Username
		r.SubmittedAt = rec.SubmittedAt
		out = append(out, r)
	}
	return out, nil
}

// QuizAnalytics summarizes all of a learner's submissions.
func (s *Service) QuizAnalytics(ctx context.Context, username string) (grading.Analytics, error) {
	recs, err := s.results.ListByUser(ctx, username, 0)
	if err != nil {
		return grading.Analytics{}, err
	}
	attempts := make([]grading.Attempt, len(recs))
	for i, rec := range recs {
		attempts[i] = grading.Attempt{
			QuizTitle: rec.QuizTitle,
			Score:     rec.Score,
			Correct:   rec.Correct,
			Total:     rec.Total,
		}
	}
	return grading.Analyze(attempts), nil
}
