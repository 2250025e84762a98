package domain

// FailureKind tells transport layers what sort of failure a Result carries.
// It is not serialized.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureValidation
	FailureNotFound
	FailureBackend
	FailureUnauthorized
)

// Result is the uniform shape returned by every repository method.
// Success is derived from Error and only set through OK and Fail.
type Result[T any] struct {
	Data    *T      `json:"data"`
	Error   *string `json:"error"`
	Success bool    `json:"success"`

	kind FailureKind
}

func OK[T any](data T) Result[T] {
	return Result[T]{Data: &data, Success: true}
}

func Fail[T any](kind FailureKind, message string) Result[T] {
	if kind == FailureNone {
		kind = FailureBackend
	}
	return Result[T]{Error: &message, Success: false, kind: kind}
}

// Kind is FailureNone for successful results.
func (r Result[T]) Kind() FailureKind {
	return r.kind
}

// Value returns the payload or the zero value when there is none.
func (r Result[T]) Value() T {
	var zero T
	if r.Data == nil {
		return zero
	}
	return *r.Data
}

// ErrorMessage returns the error text or "" on success.
func (r Result[T]) ErrorMessage() string {
	if r.Error == nil {
		return ""
	}
	return *r.Error
}
