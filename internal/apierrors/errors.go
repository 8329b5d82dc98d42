package apierrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError is the error type surfaced to HTTP callers. Every failure maps to
// exactly one status code and a human-readable detail message.
type APIError struct {
	Status int
	Detail string
	Cause  error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (caused by: %v)", e.Detail, e.Cause)
	}
	return e.Detail
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// NotFound creates a 404 error for an absent entity
func NotFound(detail string) *APIError {
	return &APIError{Status: http.StatusNotFound, Detail: detail}
}

// Conflict creates a 409 error for a uniqueness violation on a write
func Conflict(detail string) *APIError {
	return &APIError{Status: http.StatusConflict, Detail: detail}
}

// BadGateway creates a 502 error for a downstream transport or application failure
func BadGateway(detail string, cause error) *APIError {
	return &APIError{Status: http.StatusBadGateway, Detail: detail, Cause: cause}
}

// IsNotFound reports whether err carries a 404 status
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsConflict reports whether err carries a 409 status
func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict
}

// Render writes err as a JSON response. Known API errors keep their status and
// detail; anything else becomes an opaque 500.
func Render(c *gin.Context, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, gin.H{"detail": apiErr.Detail})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
}
