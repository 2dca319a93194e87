package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/aitutor/internal/document"
	"github.com/abhisek/aitutor/internal/grading"
	"github.com/abhisek/aitutor/internal/logger"
	"github.com/abhisek/aitutor/internal/recovery"
	"github.com/abhisek/aitutor/internal/tutor"
)

// Tutor is the application surface the handlers call.
type Tutor interface {
	GenerateQuiz(ctx context.Context, req tutor.QuizRequest) (*document.Quiz, error)
	GetQuiz(ctx context.Context, id string) (*tutor.StoredQuiz, error)
	SubmitQuiz(ctx context.Context, sub tutor.Submission) (*tutor.SubmissionResult, error)
	QuizHistory(ctx context.Context, username string, limit int) ([]tutor.SubmissionResult, error)
	QuizAnalytics(ctx context.Context, username string) (grading.Analytics, error)
	GenerateLearningPath(ctx context.Context, req tutor.PathRequest) (*tutor.StoredPath, error)
}

// Handler serves the tutor API.
type Handler struct {
	svc Tutor
	log *logger.Logger
}

// NewHandler creates a Handler. A nil logger discards output.
func NewHandler(svc Tutor, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{svc: svc, log: log.With("component", "httpapi")}
}

// GET /healthz
func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// POST /api/quiz/generate
func (h *Handler) GenerateQuiz(c *gin.Context) {
	var req tutor.QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	quiz, err := h.svc.GenerateQuiz(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "GenerateQuiz", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quiz": quiz.Public()})
}

// GET /api/quiz/:id
func (h *Handler) GetQuiz(c *gin.Context) {
	stored, err := h.svc.GetQuiz(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "GetQuiz", err)
		return
	}
	if u := c.Query("username"); u != "" && u != stored.Username {
		respondError(c, http.StatusNotFound, "quiz_not_found", tutor.ErrQuizNotFound)
		return
	}
	out := *stored
	out.Quiz = stored.Quiz.Public()
	c.JSON(http.StatusOK, out)
}

// POST /api/quiz/submit
func (h *Handler) SubmitQuiz(c *gin.Context) {
	var sub tutor.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	res, err := h.svc.SubmitQuiz(c.Request.Context(), sub)
	if err != nil {
		h.fail(c, "SubmitQuiz", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/quiz/history?username=&limit=
func (h *Handler) QuizHistory(c *gin.Context) {
	username, ok := requireUsername(c)
	if !ok {
		return
	}
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondError(c, http.StatusBadRequest, "invalid_limit", errors.New("limit must be a non-negative integer"))
			return
		}
		limit = n
	}
	history, err := h.svc.QuizHistory(c.Request.Context(), username, limit)
	if err != nil {
		h.fail(c, "QuizHistory", err)
		return
	}
	if history == nil {
		history = []tutor.SubmissionResult{}
	}
	c.JSON(http.StatusOK, gin.H{"results": history})
}

// GET /api/quiz/analytics?username=
func (h *Handler) QuizAnalytics(c *gin.Context) {
	username, ok := requireUsername(c)
	if !ok {
		return
	}
	stats, err := h.svc.QuizAnalytics(c.Request.Context(), username)
	if err != nil {
		h.fail(c, "QuizAnalytics", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"analytics": stats})
}

// POST /api/learning-path/generate
func (h *Handler) GenerateLearningPath(c *gin.Context) {
	var req tutor.PathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	path, err := h.svc.GenerateLearningPath(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "GenerateLearningPath", err)
		return
	}
	c.JSON(http.StatusOK, path)
}

func requireUsername(c *gin.Context) (string, bool) {
	u := c.Query("username")
	if u == "" {
		respondError(c, http.StatusBadRequest, "missing_username", errors.New("username query parameter is required"))
		return "", false
	}
	return u, true
}

// fail maps service errors to responses.
func (h *Handler) fail(c *gin.Context, op string, err error) {
	var exhausted *recovery.RetryExhaustedError
	switch {
	case errors.As(err, &exhausted):
		h.log.Warn(op+" failed (recovery)", "error", err, "attempts", exhausted.Attempts)
		respondRecoveryFailure(c, exhausted.Last)
	case errors.Is(err, tutor.ErrNoQuestions):
		h.log.Warn(op+" failed (no questions)", "error", err)
		respondRecoveryFailure(c, recovery.FailureInvalidSchema)
	case errors.Is(err, tutor.ErrInvalidRequest):
		respondError(c, http.StatusBadRequest, "invalid_request", err)
	case errors.Is(err, tutor.ErrQuizNotFound):
		respondError(c, http.StatusNotFound, "quiz_not_found", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respondError(c, http.StatusGatewayTimeout, "timeout", err)
	default:
		h.log.Error(op+" failed", "error", err)
		respondError(c, http.StatusInternalServerError, "internal_error", errors.New("internal error"))
	}
}
