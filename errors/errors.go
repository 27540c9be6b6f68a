package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
)

// Error is the domain error surfaced to API clients. Status carries the
// HTTP class the handler should respond with.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

var (
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)
	ErrBadRequest          = New("bad request", http.StatusBadRequest)
	ErrNotFound            = New("record not found", http.StatusNotFound)
	ErrUnauthorized        = New("unauthorized", http.StatusUnauthorized)
	InActiveUserError      = New("user is inactive", http.StatusUnauthorized)

	// ErrInvalidConversationPair is returned by role resolution when neither
	// party holds the agent capability.
	ErrInvalidConversationPair = New("invalid conversation: one party must be an agent", http.StatusBadRequest)
	// ErrDuplicateConversation is returned when a conversation already exists
	// for an ordered (user, agent) pair.
	ErrDuplicateConversation = New("conversation already exists for this pair", http.StatusConflict)
	// ErrReceiverNotFound is returned when a message receiver does not exist.
	ErrReceiverNotFound = New("receiver not found", http.StatusNotFound)
	// ErrForbiddenChannel is returned when a caller requests a subscription
	// grant for a private channel it does not own.
	ErrForbiddenChannel = New("not authorized to access this channel", http.StatusForbidden)
)

func New(message string, status int) *Error {
	return &Error{
		Message: message,
		Status:  status,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("error: %s", e.Message)
}

func (e *Error) Respond(c *gin.Context) {
	c.JSON(e.Status, e)
}

// GetUniqueContraintError maps a database uniqueness violation to a 409,
// anything else to a 500.
func GetUniqueContraintError(err error) *Error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
		return New("record already exists", http.StatusConflict)
	}
	return ErrInternalServerError
}

// ErrorHandler is plugged into the rate limiter middleware.
func ErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{
		"message": fmt.Sprintf("too many requests, try again in %s", time.Until(info.ResetTime).Round(time.Second)),
	})
}
