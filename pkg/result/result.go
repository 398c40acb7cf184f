// Package result provides the value-or-failure envelope returned by the
// collection services.
package result

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

// Void is the value type of operations that only report success or failure.
type Void struct{}

// Result carries either a value or a failure.
type Result[T any] struct {
	value T
	err   error
}

// Of wraps a successful value.
func Of[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Fail wraps a failure.
func Fail[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// From builds a result from a conventional (value, error) pair.
func From[T any](value T, err error) Result[T] {
	if err != nil {
		return Fail[T](err)
	}
	return Of(value)
}

// Get returns the value and failure as a conventional pair. The value is the
// zero value when the result failed.
func (r Result[T]) Get() (T, error) {
	if r.err != nil {
		var zero T
		return zero, r.err
	}
	return r.value, nil
}

// Value returns the wrapped value, or the zero value on failure.
func (r Result[T]) Value() T {
	v, _ := r.Get()
	return v
}

// Err returns the failure, if any.
func (r Result[T]) Err() error {
	return r.err
}

// OK reports whether the result carries a value.
func (r Result[T]) OK() bool {
	return r.err == nil
}

// Status maps the result to a transport status code. Rich errors report their
// own code; any other failure is internal.
func (r Result[T]) Status() int {
	if r.err == nil {
		return http.StatusOK
	}
	var rich *goerrors.Error
	if goerrors.As(r.err, &rich) && rich.Code > 0 {
		return rich.Code
	}
	return http.StatusInternalServerError
}

// Message returns the failure text, or an empty string on success.
func (r Result[T]) Message() string {
	if r.err == nil {
		return ""
	}
	return r.err.Error()
}
