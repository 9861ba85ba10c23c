package jdec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reoring/jdec/i18n"
	"github.com/reoring/jdec/jsonvalue"
	"github.com/reoring/jdec/schema"
)

// Field decodes the member key of an object with inner. The key must be
// present.
func Field[T any](key string, inner Decoder[T]) Decoder[T] {
	return New(func(v jsonvalue.Value) Result[T] {
		o, ok := v.(*jsonvalue.Object)
		if !ok {
			return Err[T](mismatch(jsonvalue.KindObject, v))
		}
		member, ok := o.Get(key)
		if !ok {
			return Err[T](message(i18n.FieldMissing, "key", key))
		}
		return fieldResult(key, inner.Apply(member))
	}, schema.FieldOf(key, inner.Schema(), true))
}

func fieldResult[T any](key string, r Result[T]) Result[T] {
	if r.failed {
		return Err[T](message(i18n.FieldInvalid, "key", key, "err", r.msg))
	}
	return r
}

// OptionalField is Field that yields None when key is absent. A present
// member must still satisfy inner.
func OptionalField[T any](key string, inner Decoder[T]) Decoder[Option[T]] {
	return New(func(v jsonvalue.Value) Result[Option[T]] {
		o, ok := v.(*jsonvalue.Object)
		if !ok {
			return Err[Option[T]](mismatch(jsonvalue.KindObject, v))
		}
		member, ok := o.Get(key)
		if !ok {
			return Ok(None[T]())
		}
		r := fieldResult(key, inner.Apply(member))
		if r.failed {
			return Err[Option[T]](r.msg)
		}
		return Ok(Some(r.v))
	}, schema.FieldOf(key, inner.Schema(), false))
}

// OptionalFieldOr is OptionalField with def standing in for an absent key.
func OptionalFieldOr[T any](key string, inner Decoder[T], def T) Decoder[T] {
	return Map(OptionalField(key, inner), func(o Option[T]) T { return o.OrElse(def) })
}

// At applies inner to the member reached by following path through nested
// objects. An empty path applies inner to the input itself.
func At[T any](path []string, inner Decoder[T]) Decoder[T] {
	d := inner
	for i := len(path) - 1; i >= 0; i-- {
		d = Field(path[i], d)
	}
	return d
}

// OptionOf yields None whenever inner fails, whatever the reason. Use
// OptionalField to tolerate only an absent member.
func OptionOf[T any](inner Decoder[T]) Decoder[Option[T]] {
	return OneOf(Map(inner, Some[T]), Succeed(None[T]()))
}

// OptionOr yields def whenever inner fails.
func OptionOr[T any](inner Decoder[T], def T) Decoder[T] {
	return OneOf(inner, Succeed(def))
}

// Nullable yields None for null and decodes anything else with inner.
func Nullable[T any](inner Decoder[T]) Decoder[Option[T]] {
	return OneOf(Map(inner, Some[T]), NullValue(None[T]()))
}

// NullableOr yields def for null and decodes anything else with inner.
func NullableOr[T any](inner Decoder[T], def T) Decoder[T] {
	return OneOf(inner, NullValue(def))
}

// NullValue accepts only null and yields def.
func NullValue[T any](def T) Decoder[T] {
	return Map(Null(), func(jsonvalue.Null) T { return def })
}

// List decodes every element of an array with inner, stopping at the first
// failing element.
func List[T any](inner Decoder[T]) Decoder[[]T] {
	return New(func(v jsonvalue.Value) Result[[]T] {
		arr, ok := v.(jsonvalue.Array)
		if !ok {
			return Err[[]T](mismatch(jsonvalue.KindArray, v))
		}
		out := make([]T, 0, len(arr))
		for i, e := range arr {
			r := inner.Apply(e)
			if r.failed {
				return Err[[]T](message(i18n.ArrayElement, "index", strconv.Itoa(i), "err", r.msg))
			}
			out = append(out, r.v)
		}
		return Ok(out)
	}, schema.Array{Item: inner.Schema()})
}

// Entry is one decoded member of an object.
type Entry[T any] struct {
	Key   string
	Value T
}

// DictEntries decodes every member value of an object with inner, keeping
// member order. It stops at the first failing member.
func DictEntries[T any](inner Decoder[T]) Decoder[[]Entry[T]] {
	return New(func(v jsonvalue.Value) Result[[]Entry[T]] {
		o, ok := v.(*jsonvalue.Object)
		if !ok {
			return Err[[]Entry[T]](mismatch(jsonvalue.KindObject, v))
		}
		out := make([]Entry[T], 0, o.Len())
		for k, e := range o.All() {
			r := inner.Apply(e)
			if r.failed {
				return Err[[]Entry[T]](message(i18n.DictKey, "key", k, "err", r.msg))
			}
			out = append(out, Entry[T]{Key: k, Value: r.v})
		}
		return Ok(out)
	}, schema.Dict(inner.Schema()))
}

// Dict is DictEntries collected into a map.
func Dict[T any](inner Decoder[T]) Decoder[map[string]T] {
	return Map(DictEntries(inner), func(entries []Entry[T]) map[string]T {
		m := make(map[string]T, len(entries))
		for _, e := range entries {
			m[e.Key] = e.Value
		}
		return m
	})
}

// Index picks element i of an array.
func Index(i int) Decoder[jsonvalue.Value] { return IndexOf(i, Value()) }

// IndexOf decodes element i of an array with inner. Every failure, including
// a non-array input, is prefixed with the index.
func IndexOf[T any](i int, inner Decoder[T]) Decoder[T] {
	idx := strconv.Itoa(i)
	return New(func(v jsonvalue.Value) Result[T] {
		arr, ok := v.(jsonvalue.Array)
		if !ok {
			return Err[T](message(i18n.IndexInvalid, "index", idx, "err", mismatch(jsonvalue.KindArray, v)))
		}
		if i < 0 || i >= len(arr) {
			return Err[T](message(i18n.IndexMissing, "index", idx))
		}
		r := inner.Apply(arr[i])
		if r.failed {
			return Err[T](message(i18n.IndexInvalid, "index", idx, "err", r.msg))
		}
		return r
	}, schema.Array{Item: inner.Schema()})
}

// OneOf tries decoders in order and yields the first success; later
// decoders are not applied. When all fail the message lists every failure
// in order.
func OneOf[T any](decoders ...Decoder[T]) Decoder[T] {
	decoders = append([]Decoder[T](nil), decoders...)
	options := make([]schema.Schema, len(decoders))
	for i, d := range decoders {
		options[i] = d.Schema()
	}
	return New(func(v jsonvalue.Value) Result[T] {
		if len(decoders) == 0 {
			return Err[T](message(i18n.NoDecoders))
		}
		var errs strings.Builder
		for _, d := range decoders {
			r := d.Apply(v)
			if r.IsOk() {
				return r
			}
			errs.WriteString("\n\t - ")
			errs.WriteString(r.msg)
		}
		return Err[T](message(i18n.AllFailed, "errs", errs.String()))
	}, schema.Union{Options: options})
}

// Succeed ignores its input and yields v.
func Succeed[T any](v T) Decoder[T] {
	return New(func(jsonvalue.Value) Result[T] { return Ok(v) }, schema.Any{})
}

// Fail ignores its input and fails with msg. Its schema is Unknown since no
// input is accepted.
func Fail[T any](msg string) Decoder[T] {
	return New(func(jsonvalue.Value) Result[T] { return Err[T](msg) }, schema.Unknown{Message: msg})
}

// FromResult ignores its input and yields r.
func FromResult[T any](r Result[T]) Decoder[T] {
	return New(func(jsonvalue.Value) Result[T] { return r }, schema.Any{})
}

// EnumByName decodes a string naming one of values, where name gives the
// name of each value. enumName appears in failure messages.
func EnumByName[T any](values []T, name func(T) string, enumName string) Decoder[T] {
	byName := make(map[string]T, len(values))
	names := make([]jsonvalue.Value, 0, len(values))
	for _, v := range values {
		n := name(v)
		if _, dup := byName[n]; dup {
			continue
		}
		byName[n] = v
		names = append(names, jsonvalue.String(n))
	}
	return New(func(v jsonvalue.Value) Result[T] {
		s, ok := v.(jsonvalue.String)
		if !ok {
			return Err[T](mismatch(jsonvalue.KindString, v))
		}
		if t, ok := byName[string(s)]; ok {
			return Ok(t)
		}
		return Err[T](message(i18n.EnumUnknown, "got", s.String(), "enum", enumName))
	}, schema.Enum{Values: names})
}

// EnumOf is EnumByName for values that name themselves through String.
func EnumOf[T fmt.Stringer](enumName string, values ...T) Decoder[T] {
	return EnumByName(values, func(v T) string { return v.String() }, enumName)
}

// Equal succeeds only when d yields want.
func Equal[T comparable](d Decoder[T], want T) Decoder[T] {
	return d.FilterFunc(func(got T) bool { return got == want }, func(got T) string {
		return message(i18n.NotEqual, "want", fmt.Sprint(want), "got", fmt.Sprint(got))
	})
}

// Matches succeeds only when pred accepts the value d yields.
func Matches[T any](d Decoder[T], pred func(T) bool) Decoder[T] {
	return d.FilterFunc(pred, func(got T) string {
		return message(i18n.NoMatch, "got", fmt.Sprint(got))
	})
}

// Mapping looks up the value d yields with f, failing when f reports no
// mapping for it.
func Mapping[T, U any](d Decoder[T], f func(T) (U, bool)) Decoder[U] {
	return AndThen(d, func(t T) Decoder[U] {
		if u, ok := f(t); ok {
			return Succeed(u)
		}
		return Fail[U](message(i18n.NoMapping, "got", fmt.Sprint(t)))
	})
}

// MappingOf is Mapping over a map.
func MappingOf[K comparable, U any](d Decoder[K], m map[K]U) Decoder[U] {
	return Mapping(d, func(k K) (U, bool) {
		u, ok := m[k]
		return u, ok
	})
}
