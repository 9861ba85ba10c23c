package engine

import "io"

// Kind represents token kinds produced by a driver.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindBeginObject:
		return "'{'"
	case KindEndObject:
		return "'}'"
	case KindBeginArray:
		return "'['"
	case KindEndArray:
		return "']'"
	case KindKey:
		return "key"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	}
	return "unknown"
}

// Token represents a streaming token with approximate input offset.
// Number holds the literal text of a number token as it appeared in the input.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// Driver turns raw JSON input into a TokenSource. Implementations live under
// source/ and are selected by name in the CLI.
type Driver interface {
	NewReader(r io.Reader) TokenSource
	Name() string
}

// Frames tracks whether the next string token inside an object is a key.
// Drivers whose underlying tokenizer does not distinguish keys from string
// values embed it.
type Frames struct {
	stack []frame
}

type frame struct {
	object       bool
	expectingKey bool
}

// Open pushes a container.
func (f *Frames) Open(object bool) {
	f.stack = append(f.stack, frame{object: object, expectingKey: object})
}

// Close pops a container and marks the value slot of the parent as filled.
func (f *Frames) Close() {
	if n := len(f.stack); n > 0 {
		f.stack = f.stack[:n-1]
	}
	f.Value()
}

// Key reports whether a string token at this point is an object key, and
// consumes the key slot if so.
func (f *Frames) Key() bool {
	if n := len(f.stack); n > 0 {
		top := &f.stack[n-1]
		if top.object && top.expectingKey {
			top.expectingKey = false
			return true
		}
	}
	return false
}

// Value marks the value slot of the enclosing object as filled.
func (f *Frames) Value() {
	if n := len(f.stack); n > 0 {
		top := &f.stack[n-1]
		if top.object && !top.expectingKey {
			top.expectingKey = true
		}
	}
}
