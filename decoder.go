package jdec

import (
	"github.com/reoring/jdec/i18n"
	"github.com/reoring/jdec/jsonvalue"
	"github.com/reoring/jdec/schema"
)

// Decoder pairs a decoding function with the schema of the values it
// accepts. Decoders are immutable: every method returns a new Decoder and
// the receiver keeps working unchanged. They are safe for concurrent use
// once constructed.
//
// The zero Decoder fails every input.
type Decoder[T any] struct {
	run    func(jsonvalue.Value) Result[T]
	schema schema.Schema
}

// New builds a Decoder from a decoding function and its schema. A nil
// schema is treated as schema.Any.
func New[T any](run func(jsonvalue.Value) Result[T], s schema.Schema) Decoder[T] {
	if s == nil {
		s = schema.Any{}
	}
	return Decoder[T]{run: run, schema: s}
}

// FromFunc adapts an error-returning function. Panics and errors become Err
// with their message. The schema is Unknown since nothing is declared.
func FromFunc[T any](f func(jsonvalue.Value) (T, error)) Decoder[T] {
	return New(func(v jsonvalue.Value) Result[T] {
		return guard(func() Result[T] {
			out, err := f(v)
			if err != nil {
				return Err[T](err.Error())
			}
			return Ok(out)
		})
	}, schema.Unknown{Message: "decoder built from a function declares no schema"})
}

// Apply decodes v. A nil v is decoded as JSON null.
func (d Decoder[T]) Apply(v jsonvalue.Value) Result[T] {
	if d.run == nil {
		return Err[T](message(i18n.Failed))
	}
	if v == nil {
		v = jsonvalue.Null{}
	}
	return d.run(v)
}

// Decode is Apply with the failure returned as a *DecodeError.
func (d Decoder[T]) Decode(v jsonvalue.Value) (T, error) { return d.Apply(v).Unwrap() }

// Schema returns the shape this decoder accepts.
func (d Decoder[T]) Schema() schema.Schema {
	if d.schema == nil {
		return schema.Any{}
	}
	return d.schema
}

// SetSchema returns the same decoder with s as its schema.
func (d Decoder[T]) SetSchema(s schema.Schema) Decoder[T] {
	if s == nil {
		s = schema.Any{}
	}
	return Decoder[T]{run: d.run, schema: s}
}

// WithSchema returns the same decoder with its schema rewritten by f.
func (d Decoder[T]) WithSchema(f func(schema.Schema) schema.Schema) Decoder[T] {
	return d.SetSchema(f(d.Schema()))
}

// Ref returns the same decoder whose schema is a reference to name. Use it
// to break the cycle in a recursive decoder.
func (d Decoder[T]) Ref(name string) Decoder[T] { return d.SetSchema(schema.Ref{Name: name}) }

// MapError rewrites failure messages.
func (d Decoder[T]) MapError(f func(string) string) Decoder[T] {
	return Decoder[T]{schema: d.schema, run: func(v jsonvalue.Value) Result[T] {
		r := d.Apply(v)
		if r.failed {
			return guard(func() Result[T] { return Err[T](f(r.msg)) })
		}
		return r
	}}
}

// Filter fails with msg when pred rejects a decoded value.
func (d Decoder[T]) Filter(pred func(T) bool, msg string) Decoder[T] {
	return d.FilterFunc(pred, func(T) string { return msg })
}

// FilterFunc fails with msg(value) when pred rejects a decoded value.
func (d Decoder[T]) FilterFunc(pred func(T) bool, msg func(T) string) Decoder[T] {
	return Decoder[T]{schema: d.schema, run: func(v jsonvalue.Value) Result[T] {
		r := d.Apply(v)
		if r.failed {
			return r
		}
		return guard(func() Result[T] {
			if pred(r.v) {
				return r
			}
			return Err[T](msg(r.v))
		})
	}}
}

// Map transforms decoded values with f. The schema is unchanged. A panic in
// f becomes Err.
func Map[T, U any](d Decoder[T], f func(T) U) Decoder[U] {
	return Decoder[U]{schema: d.schema, run: func(v jsonvalue.Value) Result[U] {
		r := d.Apply(v)
		if r.failed {
			return Err[U](r.msg)
		}
		return guard(func() Result[U] { return Ok(f(r.v)) })
	}}
}

// AndThen decodes with d, then decodes the same input again with the
// decoder f picks for the result. The schema is d's, since the continuation
// is only known at decode time.
func AndThen[T, U any](d Decoder[T], f func(T) Decoder[U]) Decoder[U] {
	return Decoder[U]{schema: d.schema, run: func(v jsonvalue.Value) Result[U] {
		r := d.Apply(v)
		if r.failed {
			return Err[U](r.msg)
		}
		return guard(func() Result[U] { return f(r.v).Apply(v) })
	}}
}

// MapTry is Map for a fallible f; an error fails with its message.
func MapTry[T, U any](d Decoder[T], f func(T) (U, error)) Decoder[U] {
	return MapTryFunc(d, f, func(err error) string { return err.Error() })
}

// MapTryMsg is MapTry failing with msg whatever the error.
func MapTryMsg[T, U any](d Decoder[T], f func(T) (U, error), msg string) Decoder[U] {
	return MapTryFunc(d, f, func(error) string { return msg })
}

// MapTryFunc is MapTry with the message computed from the error. Panics in
// f are treated as errors and also go through msg.
func MapTryFunc[T, U any](d Decoder[T], f func(T) (U, error), msg func(error) string) Decoder[U] {
	return AndThen(d, func(t T) Decoder[U] {
		return FromResult(tryCall(f, t, msg))
	})
}

func tryCall[T, U any](f func(T) (U, error), t T, msg func(error) string) (r Result[U]) {
	defer func() {
		if p := recover(); p != nil {
			err, ok := p.(error)
			if !ok {
				err = &DecodeError{Message: panicMessage(p)}
			}
			r = Err[U](msg(err))
		}
	}()
	u, err := f(t)
	if err != nil {
		return Err[U](msg(err))
	}
	return Ok(u)
}

// Widen erases the result type, for mixing decoders in one list.
func Widen[T any](d Decoder[T]) Decoder[any] {
	return Map(d, func(t T) any { return t })
}
