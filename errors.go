package jdec

import (
	"errors"
	"fmt"

	"github.com/reoring/jdec/i18n"
)

// DecodeError is the error form of a failed Result.
type DecodeError struct {
	Message string
}

func (e *DecodeError) Error() string { return e.Message }

// IsDecodeError reports whether err is, or wraps, a *DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// message renders a catalog message for code from alternating key/value pairs.
func message(code string, kv ...string) string {
	if len(kv) == 0 {
		return i18n.T(code, nil)
	}
	data := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		data[kv[i]] = kv[i+1]
	}
	return i18n.T(code, data)
}

// panicMessage turns a recovered panic value into an error message.
func panicMessage(p any) string {
	switch x := p.(type) {
	case error:
		return x.Error()
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// guard runs f, converting a panic into Err.
func guard[T any](f func() Result[T]) (r Result[T]) {
	defer func() {
		if p := recover(); p != nil {
			r = Err[T](panicMessage(p))
		}
	}()
	return f()
}
