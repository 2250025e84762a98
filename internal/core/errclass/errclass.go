// Package errclass decides whether a backend failure is worth retrying and how it
// should be described to an end user.
package errclass

import (
	"context"
	"errors"
	"strings"

	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/domain"
)

// fatalCodes are checked in order; retrying any of them cannot succeed or makes things worse.
var fatalCodes = []string{
	domain.CodeInsufficientPrivilege,
	domain.CodeUniqueViolation,
	domain.CodeForeignKeyViolation,
	domain.CodeUndefinedTable,
	domain.CodeQueryCanceled,
	domain.CodeTooManyConnections,
	domain.CodeConfigurationLimit,
}

var rateLimitMarkers = []string{"rate limit", "too many requests"}

// Info is the code/message pair the classifier works on.
type Info struct {
	Code    string
	Message string
}

// Extract pulls the code and message out of err. Errors that are not a
// *domain.BackendError only contribute their text.
func Extract(err error) Info {
	if err == nil {
		return Info{}
	}
	var bErr *domain.BackendError
	if errors.As(err, &bErr) {
		return Info{Code: bErr.Code, Message: bErr.Message}
	}
	return Info{Message: err.Error()}
}

// IsRetryable reports whether err looks transient.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if domain.IsValidation(err) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	info := Extract(err)
	for _, code := range fatalCodes {
		if info.Code == code {
			return false
		}
	}
	if containsAny(strings.ToLower(info.Message), rateLimitMarkers) {
		return false
	}
	return true
}

// IsMissingRelation reports whether the backend said the target table does not exist.
func IsMissingRelation(err error) bool {
	return Extract(err).Code == domain.CodeUndefinedTable
}

// IsNotFound reports a "no matching record" signal from the backend.
func IsNotFound(err error) bool {
	if errors.Is(err, domain.ErrNotFound) {
		return true
	}
	return Extract(err).Code == domain.CodeNoRows
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
