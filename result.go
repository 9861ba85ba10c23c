package jdec

// Result is either a decoded value (Ok) or a human-readable error message
// (Err). The zero Result is Ok with the zero value.
type Result[T any] struct {
	v      T
	msg    string
	failed bool
}

func Ok[T any](v T) Result[T] { return Result[T]{v: v} }

func Err[T any](msg string) Result[T] { return Result[T]{msg: msg, failed: true} }

func (r Result[T]) IsOk() bool  { return !r.failed }
func (r Result[T]) IsErr() bool { return r.failed }

// Value returns the decoded value, or the zero value on failure.
func (r Result[T]) Value() T { return r.v }

// Message returns the error message, or "" on success.
func (r Result[T]) Message() string { return r.msg }

// Unwrap returns the value, or a *DecodeError carrying the message.
func (r Result[T]) Unwrap() (T, error) {
	if r.failed {
		var zero T
		return zero, &DecodeError{Message: r.msg}
	}
	return r.v, nil
}

// OrElse returns the value, or def on failure.
func (r Result[T]) OrElse(def T) T {
	if r.failed {
		return def
	}
	return r.v
}

func (r Result[T]) String() string {
	if r.failed {
		return "Err(" + r.msg + ")"
	}
	return "Ok"
}

// MapResult applies f to the value when Ok.
func MapResult[T, U any](r Result[T], f func(T) U) Result[U] {
	if r.failed {
		return Err[U](r.msg)
	}
	return Ok(f(r.v))
}

// FlatMapResult sequences f after r; the first Err wins.
func FlatMapResult[T, U any](r Result[T], f func(T) Result[U]) Result[U] {
	if r.failed {
		return Err[U](r.msg)
	}
	return f(r.v)
}

// MapErr rewrites the message of a failed Result.
func MapErr[T any](r Result[T], f func(string) string) Result[T] {
	if r.failed {
		return Err[T](f(r.msg))
	}
	return r
}

// Fold collapses r with onErr or onOk.
func Fold[T, U any](r Result[T], onErr func(string) U, onOk func(T) U) U {
	if r.failed {
		return onErr(r.msg)
	}
	return onOk(r.v)
}
