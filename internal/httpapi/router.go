package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/abhisek/aitutor/internal/logger"
)

// NewRouter builds the gin engine with CORS, panic recovery and request
// logging.
func NewRouter(cfg Config, h *Handler, log *logger.Logger) *gin.Engine {
	if log == nil {
		log = logger.Nop()
	}

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = DefaultConfig().CORSOrigins
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", h.Health)

	api := router.Group("/api")
	{
		quiz := api.Group("/quiz")
		{
			quiz.POST("/generate", h.GenerateQuiz)
			quiz.POST("/submit", h.SubmitQuiz)
			quiz.GET("/history", h.QuizHistory)
			quiz.GET("/analytics", h.QuizAnalytics)
			quiz.GET("/:id", h.GetQuiz)
		}
		api.POST("/learning-path/generate", h.GenerateLearningPath)
	}

	return router
}

func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}
}
