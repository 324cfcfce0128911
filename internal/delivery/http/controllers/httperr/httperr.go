package httperr

import (
	"errors"
	"net/http"

	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/app_errors"

	"github.com/gin-gonic/gin"
)

// Status maps a domain error to its HTTP status code.
func Status(err error) int {
	if _, ok := app_errors.AsValidation(err); ok {
		return http.StatusBadRequest
	}
	switch {
	case app_errors.IsNotFound(err):
		return http.StatusNotFound
	case app_errors.IsConflict(err):
		return http.StatusConflict
	case errors.Is(err, app_errors.ErrNotCourseAuthor):
		return http.StatusForbidden
	case errors.Is(err, app_errors.ErrNotImage), errors.Is(err, app_errors.ErrFileSize):
		return http.StatusBadRequest
	case errors.Is(err, app_errors.ErrIncorrectPassword),
		errors.Is(err, app_errors.ErrTokenExpired),
		errors.Is(err, app_errors.ErrTokenNotFound),
		errors.Is(err, app_errors.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, app_errors.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Write renders err as a JSON error response. Unexpected errors are attached
// to the context for the logging middleware and hidden from the client.
func Write(c *gin.Context, err error) {
	status := Status(err)
	if vErr, ok := app_errors.AsValidation(err); ok {
		c.JSON(status, gin.H{"error": vErr.Message, "field": vErr.Field})
		return
	}
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// BadRequest reports a request that could not be bound.
func BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
