package errors

import (
	"fmt"
	"net/http"
	"strings"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
)

// Error is the domain error surfaced to handlers. Status carries the HTTP
// status code the violation maps to.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

var (
	ErrNotFound            = New("record not found", http.StatusNotFound)
	ErrBadRequest          = New("bad request", http.StatusBadRequest)
	ErrForbidden           = New("forbidden", http.StatusForbidden)
	ErrUnauthorized        = New("unauthorized", http.StatusUnauthorized)
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)
	InActiveUserError      = New("user inactive", http.StatusUnauthorized)
)

func New(message string, status int) *Error {
	return &Error{
		Message: message,
		Status:  status,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("error: %s, status: %d", e.Message, e.Status)
}

// GetUniqueContraintError translates a database unique-constraint violation
// into a client-facing conflict error.
func GetUniqueContraintError(err error) *Error {
	if strings.Contains(err.Error(), "duplicate key") || strings.Contains(err.Error(), "UNIQUE constraint") {
		return New("record already exists", http.StatusBadRequest)
	}
	return ErrInternalServerError
}

// ErrorHandler is passed to the rate limiter middleware.
func ErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{
		"status":  http.StatusTooManyRequests,
		"message": "too many requests, try again later",
	})
	c.Abort()
}
