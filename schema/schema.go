// Package schema describes the shapes a decoder accepts.
//
// Schema is a closed sum type: the variants below are the only
// implementations, and Render switches over all of them. Schema values are
// immutable trees and may be shared between decoders.
package schema

import "github.com/reoring/jdec/jsonvalue"

// Schema is implemented by Any, Lit, Array, Object, Union, Intersection,
// Enum, Ref and Unknown.
type Schema interface {
	isSchema()
}

// LitKind is the scalar kind of a Lit.
type LitKind int

const (
	LitNull LitKind = iota
	LitInt
	LitFloat
	LitBool
	LitString
)

// TypeName returns the JSON Schema type name of the kind.
func (k LitKind) TypeName() string {
	switch k {
	case LitNull:
		return "null"
	case LitInt:
		return "integer"
	case LitFloat:
		return "number"
	case LitBool:
		return "boolean"
	case LitString:
		return "string"
	}
	return ""
}

type (
	// Any accepts anything.
	Any struct{}

	// Lit is exactly one scalar JSON kind.
	Lit struct{ Kind LitKind }

	// Array holds elements that all satisfy Item.
	Array struct{ Item Schema }

	// Object lists named fields in Known. Unnamed describes every other
	// member; entries accumulated from several decoders are alternatives.
	Object struct {
		Known   []Field
		Unnamed []Schema
	}

	// Union requires at least one option, in attempt order.
	Union struct{ Options []Schema }

	// Intersection requires every part.
	Intersection struct{ Parts []Schema }

	// Enum is one of a fixed set of literal values.
	Enum struct{ Values []jsonvalue.Value }

	// Ref names a shape defined elsewhere, typically a recursive one.
	Ref struct{ Name string }

	// Unknown marks a schema that could not be derived. It never affects
	// decoding.
	Unknown struct{ Message string }
)

// Field is a named member of an Object.
type Field struct {
	Name     string
	Value    Schema
	Required bool
}

func (Any) isSchema()          {}
func (Lit) isSchema()          {}
func (Array) isSchema()        {}
func (Object) isSchema()       {}
func (Union) isSchema()        {}
func (Intersection) isSchema() {}
func (Enum) isSchema()         {}
func (Ref) isSchema()          {}
func (Unknown) isSchema()      {}

func Null() Schema   { return Lit{Kind: LitNull} }
func Int() Schema    { return Lit{Kind: LitInt} }
func Float() Schema  { return Lit{Kind: LitFloat} }
func Bool() Schema   { return Lit{Kind: LitBool} }
func String() Schema { return Lit{Kind: LitString} }

// OneOf builds a Union.
func OneOf(options ...Schema) Schema { return Union{Options: options} }

// AllOf builds an Intersection.
func AllOf(parts ...Schema) Schema { return Intersection{Parts: parts} }

// FieldOf is an Object with the single known field name.
func FieldOf(name string, value Schema, required bool) Schema {
	return Object{Known: []Field{{Name: name, Value: value, Required: required}}}
}

// Dict is an Object with no known fields whose members all satisfy value.
func Dict(value Schema) Schema { return Object{Unnamed: []Schema{value}} }
