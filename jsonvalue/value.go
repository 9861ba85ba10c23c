// Package jsonvalue is the generic JSON value tree that decoders consume.
//
// A Value is one of Null, Bool, Number, String, Array or *Object. Objects keep
// their members in input order and hold each key at most once. Numbers keep
// their literal text so no precision is lost before a decoder narrows them.
package jsonvalue

import (
	"iter"
	"math/big"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"
)

// Kind identifies the variant of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindArray:
		return "Array"
	case KindObject:
		return "Object"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a node of a JSON document. String renders compact JSON text.
type Value interface {
	Kind() Kind
	String() string
	appendJSON(b []byte) []byte
}

type (
	// Null is the JSON null literal.
	Null struct{}
	// Bool is a JSON boolean.
	Bool bool
	// Number is a JSON number kept as its literal text.
	Number string
	// String is a JSON string.
	String string
	// Array is a JSON array.
	Array []Value
)

func (Null) Kind() Kind   { return KindNull }
func (Bool) Kind() Kind   { return KindBool }
func (Number) Kind() Kind { return KindNumber }
func (String) Kind() Kind { return KindString }
func (Array) Kind() Kind  { return KindArray }

func (v Null) String() string   { return "null" }
func (v Bool) String() string   { return strconv.FormatBool(bool(v)) }
func (v Number) String() string { return string(v) }
func (v String) String() string { return string(v.appendJSON(nil)) }
func (v Array) String() string  { return string(v.appendJSON(nil)) }

func (Null) appendJSON(b []byte) []byte     { return append(b, "null"...) }
func (v Bool) appendJSON(b []byte) []byte   { return strconv.AppendBool(b, bool(v)) }
func (v Number) appendJSON(b []byte) []byte { return append(b, v...) }

func (v String) appendJSON(b []byte) []byte {
	// <, > and & stay readable in error messages.
	q, err := j.MarshalWithOption(string(v), j.DisableHTMLEscape())
	if err != nil {
		return strconv.AppendQuote(b, string(v))
	}
	return append(b, q...)
}

func (v Array) appendJSON(b []byte) []byte {
	b = append(b, '[')
	for i, e := range v {
		if i > 0 {
			b = append(b, ',')
		}
		b = appendValue(b, e)
	}
	return append(b, ']')
}

func appendValue(b []byte, v Value) []byte {
	if v == nil {
		return append(b, "null"...)
	}
	return v.appendJSON(b)
}

func (v Null) MarshalJSON() ([]byte, error)   { return v.appendJSON(nil), nil }
func (v Bool) MarshalJSON() ([]byte, error)   { return v.appendJSON(nil), nil }
func (v Number) MarshalJSON() ([]byte, error) { return v.appendJSON(nil), nil }
func (v String) MarshalJSON() ([]byte, error) { return v.appendJSON(nil), nil }
func (v Array) MarshalJSON() ([]byte, error)  { return v.appendJSON(nil), nil }

// Rat returns the exact rational value of the number.
func (v Number) Rat() (*big.Rat, bool) {
	return new(big.Rat).SetString(string(v))
}

// Float64 returns the nearest float64 to the number.
func (v Number) Float64() (float64, error) {
	return strconv.ParseFloat(string(v), 64)
}

// IsInteger reports whether the number has no fractional part, regardless of
// notation ("1", "1.0" and "1e2" are all integers).
func (v Number) IsInteger() bool {
	r, ok := v.Rat()
	return ok && r.IsInt()
}

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

// Object is an ordered JSON object with unique keys. The zero value is an
// empty object. Objects are not modified after construction.
type Object struct {
	members []Member
	index   map[string]int
}

// NewObject builds an object from members in order. A repeated key keeps its
// first position and takes the last value.
func NewObject(members ...Member) *Object {
	o := &Object{members: make([]Member, 0, len(members))}
	for _, m := range members {
		o.set(m.Key, m.Value)
	}
	return o
}

// Obj is shorthand for NewObject taking alternating keys and values.
// It panics if a key is not a string or a value is not a Value.
func Obj(kv ...any) *Object {
	if len(kv)%2 != 0 {
		panic("jsonvalue: Obj requires key/value pairs")
	}
	members := make([]Member, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		members = append(members, Member{Key: kv[i].(string), Value: kv[i+1].(Value)})
	}
	return NewObject(members...)
}

func (o *Object) set(key string, v Value) {
	if o.index == nil {
		o.index = make(map[string]int)
	}
	if i, ok := o.index[key]; ok {
		o.members[i].Value = v
		return
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: v})
}

func (*Object) Kind() Kind { return KindObject }

// Len returns the number of members.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.members)
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return nil, false
	}
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.members[i].Value, true
}

// Keys returns the keys in order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.Len())
	for k := range o.All() {
		keys = append(keys, k)
	}
	return keys
}

// Members returns a copy of the members in order.
func (o *Object) Members() []Member {
	if o == nil {
		return nil
	}
	return append([]Member(nil), o.members...)
}

// All iterates over the members in order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if o == nil {
			return
		}
		for _, m := range o.members {
			if !yield(m.Key, m.Value) {
				return
			}
		}
	}
}

func (o *Object) String() string { return string(o.appendJSON(nil)) }

func (o *Object) appendJSON(b []byte) []byte {
	b = append(b, '{')
	for i, m := range o.Members() {
		if i > 0 {
			b = append(b, ',')
		}
		b = String(m.Key).appendJSON(b)
		b = append(b, ':')
		b = appendValue(b, m.Value)
	}
	return append(b, '}')
}

func (o *Object) MarshalJSON() ([]byte, error) { return o.appendJSON(nil), nil }

// Render returns compact JSON text for v; a nil Value renders as null.
func Render(v Value) string { return string(appendValue(nil, v)) }

// Indent renders v with the given indent string per nesting level.
func Indent(v Value, indent string) string {
	var sb strings.Builder
	writeIndented(&sb, v, indent, 0)
	return sb.String()
}

func writeIndented(sb *strings.Builder, v Value, indent string, depth int) {
	newline := func(d int) {
		sb.WriteByte('\n')
		for range d {
			sb.WriteString(indent)
		}
	}
	switch x := v.(type) {
	case Array:
		if len(x) == 0 {
			sb.WriteString("[]")
			return
		}
		sb.WriteByte('[')
		for i, e := range x {
			if i > 0 {
				sb.WriteByte(',')
			}
			newline(depth + 1)
			writeIndented(sb, e, indent, depth+1)
		}
		newline(depth)
		sb.WriteByte(']')
	case *Object:
		if x.Len() == 0 {
			sb.WriteString("{}")
			return
		}
		sb.WriteByte('{')
		first := true
		for k, e := range x.All() {
			if !first {
				sb.WriteByte(',')
			}
			first = false
			newline(depth + 1)
			sb.WriteString(String(k).String())
			sb.WriteString(": ")
			writeIndented(sb, e, indent, depth+1)
		}
		newline(depth)
		sb.WriteByte('}')
	default:
		sb.WriteString(Render(v))
	}
}
