// Package validate holds the required-field check that runs before any backend call.
package validate

import (
	"reflect"

	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/domain"
)

// Field is one named value to check. Fields are checked in the order given.
type Field struct {
	Name  string
	Value any
}

func F(name string, value any) Field {
	return Field{Name: name, Value: value}
}

// Required returns a *domain.ValidationError for the first missing field.
// Only nil and the empty string count as missing: 0, false and empty
// slices or maps are present values.
func Required(fields ...Field) error {
	for _, f := range fields {
		if isMissing(f.Value) {
			return &domain.ValidationError{Field: f.Name}
		}
	}
	return nil
}

func isMissing(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return true
		}
		return isMissing(rv.Elem().Interface())
	}
	return false
}
