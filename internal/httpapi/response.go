package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/aitutor/internal/recovery"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func respondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{Error: APIError{Message: msg, Code: code}})
}

// recoveryFailure is the body sent when no valid document could be
// generated. It never carries raw model output.
type recoveryFailure struct {
	Error  APIError             `json:"error"`
	Reason recovery.FailureKind `json:"reason,omitempty"`
}

func respondRecoveryFailure(c *gin.Context, reason recovery.FailureKind) {
	c.JSON(http.StatusBadGateway, recoveryFailure{
		Error:  APIError{Message: recovery.UserMessage, Code: "generation_failed"},
		Reason: reason,
	})
}
