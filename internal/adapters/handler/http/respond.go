package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/domain"
)

// respond writes a repository result as-is, choosing the status from its
// failure kind.
func respond[T any](c *gin.Context, okStatus int, res domain.Result[T]) {
	if res.Success {
		c.JSON(okStatus, res)
		return
	}
	if res.Kind() == domain.FailureBackend {
		_ = c.Error(&resultError{msg: res.ErrorMessage()})
	}
	c.JSON(statusFor(res.Kind()), res)
}

func statusFor(kind domain.FailureKind) int {
	switch kind {
	case domain.FailureValidation:
		return http.StatusBadRequest
	case domain.FailureNotFound:
		return http.StatusNotFound
	case domain.FailureUnauthorized:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// badRequest reports a malformed body in the same shape as a repository result.
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, domain.Fail[any](domain.FailureValidation, err.Error()))
}

type resultError struct {
	msg string
}

func (e *resultError) Error() string {
	return e.msg
}
