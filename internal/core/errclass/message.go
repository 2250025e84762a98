package errclass

import "strings"

type Category int

const (
	CategoryUnknown Category = iota
	CategoryAuth
	CategoryNetwork
	CategoryValidation
	CategoryDatabase
	CategoryRateLimit
	CategoryConflict
	CategoryNotFound
	CategoryStorage
)

func (c Category) String() string {
	switch c {
	case CategoryAuth:
		return "auth"
	case CategoryNetwork:
		return "network"
	case CategoryValidation:
		return "validation"
	case CategoryDatabase:
		return "database"
	case CategoryRateLimit:
		return "rate_limit"
	case CategoryConflict:
		return "conflict"
	case CategoryNotFound:
		return "not_found"
	case CategoryStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// One message can match several categories; the first rule wins.
var rules = []struct {
	category Category
	markers  []string
}{
	{CategoryAuth, []string{"authorization", "unauthorized", "authentication", "permission", "forbidden", "jwt"}},
	{CategoryNetwork, []string{"network", "connection", "timeout", "fetch"}},
	{CategoryValidation, []string{"validation", "invalid", "schema", "constraint", "range", "length", "required"}},
	{CategoryDatabase, []string{"relation", "table", "column", "postgres", "sqlite"}},
	{CategoryRateLimit, []string{"rate limit", "too many requests"}},
	{CategoryConflict, []string{"conflict", "duplicate", "already exists"}},
	{CategoryNotFound, []string{"not found", "no rows"}},
	{CategoryStorage, []string{"storage", "upload", "file", "mimetype"}},
}

var messages = map[Category]string{
	CategoryAuth:       "Access denied. Please log in.",
	CategoryNetwork:    "Connection problem. Check your internet connection and try again.",
	CategoryValidation: "Invalid data. Please check your input.",
	CategoryDatabase:   "Database issue. Please contact support.",
	CategoryRateLimit:  "Too many requests. Please wait a moment and try again.",
	CategoryConflict:   "This item already exists.",
	CategoryNotFound:   "This item no longer exists.",
	CategoryStorage:    "File error. Please check the file and try again.",
	CategoryUnknown:    "Something went wrong. Please try again.",
}

// Classify maps an error's text onto a display category, case-insensitively.
func Classify(err error) Category {
	msg := strings.ToLower(strings.TrimSpace(Extract(err).Message))
	if msg == "" {
		return CategoryUnknown
	}
	for _, r := range rules {
		if containsAny(msg, r.markers) {
			return r.category
		}
	}
	return CategoryUnknown
}

// Message returns the user-facing text for a category.
func (c Category) Message() string {
	return messages[c]
}

// UserMessage is Classify followed by Message.
func UserMessage(err error) string {
	return Classify(err).Message()
}
