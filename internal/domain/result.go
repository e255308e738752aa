package domain

import "errors"

// Result accumulates validation errors for a single operation. It holds
// either a value or a non-empty error list, never both: adding an error
// switches the result into failure mode and discards any value set so far.
//
// Factories use it to report every invalid field of a creation request in
// one pass instead of stopping at the first violation.
type Result[T any] struct {
	value T
	errs  []error
}

// OK creates a successful result carrying value.
func OK[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Failure creates a failed result carrying errs.
func Failure[T any](errs ...error) Result[T] {
	return Result[T]{errs: errs}
}

// AddError switches the result into failure mode, preserving previously
// collected errors. Nil errors are ignored.
func (r *Result[T]) AddError(err error) {
	if err == nil {
		return
	}
	var zero T
	r.value = zero
	r.errs = append(r.errs, err)
}

// AddErrors collects every non-nil error in errs.
func (r *Result[T]) AddErrors(errs []error) {
	for _, err := range errs {
		r.AddError(err)
	}
}

// SetValue sets the success value. It is a no-op while errors are present.
func (r *Result[T]) SetValue(value T) {
	if r.HasError() {
		return
	}
	r.value = value
}

// HasError reports whether the result is in failure mode.
func (r Result[T]) HasError() bool {
	return len(r.errs) > 0
}

// Value returns the success value, or the zero value on failure.
func (r Result[T]) Value() T {
	return r.value
}

// Errors returns the collected errors.
func (r Result[T]) Errors() []error {
	return r.errs
}

// Err returns all collected errors joined into a single error, or nil.
func (r Result[T]) Err() error {
	if !r.HasError() {
		return nil
	}
	return errors.Join(r.errs...)
}

// Unwrap returns the value and the joined error for callers that prefer
// the conventional two-value form.
func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.Err()
}
