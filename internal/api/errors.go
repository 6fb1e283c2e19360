package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/lingoloop/internal/challenge"
	"github.com/abhisek/lingoloop/internal/coach"
	"github.com/abhisek/lingoloop/internal/profile"
)

// Error codes carried in AppError.Code.
const (
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeTokenExpired  = "TOKEN_EXPIRED"
	CodeValidation    = "VALIDATION_ERROR"
	CodeNotFound      = "NOT_FOUND"
	CodeInternalError = "INTERNAL_ERROR"
)

// AppError is the JSON body of every failed request.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Status  int    `json:"status"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
}

func Validation(message, details string) *AppError {
	return &AppError{Code: CodeValidation, Message: message, Details: details, Status: http.StatusBadRequest}
}

func NotFound(resource string) *AppError {
	return &AppError{Code: CodeNotFound, Message: resource + " not found", Status: http.StatusNotFound}
}

func Unauthorized(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message, Status: http.StatusUnauthorized}
}

// TokenExpired is an Unauthorized variant clients use to trigger re-login.
func TokenExpired() *AppError {
	return &AppError{Code: CodeTokenExpired, Message: "token expired", Status: http.StatusUnauthorized}
}

func Internal(details string) *AppError {
	return &AppError{Code: CodeInternalError, Message: "internal server error", Details: details, Status: http.StatusInternalServerError}
}

// toAppError maps domain errors onto the envelope. Internal details are
// not exposed.
func toAppError(err error) *AppError {
	var appErr *AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, coach.ErrInvalidAttempt):
		return Validation("invalid attempt", err.Error())
	case errors.Is(err, challenge.ErrNotFound):
		return NotFound("challenge")
	case errors.Is(err, profile.ErrInvalid):
		return Validation("invalid profile", err.Error())
	case errors.Is(err, profile.ErrNotFound):
		return NotFound("profile")
	default:
		return Internal("")
	}
}

// abortWithError writes err as an AppError and stops the handler chain.
func abortWithError(c *gin.Context, err error) {
	appErr := toAppError(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(appErr.Status, appErr)
}
