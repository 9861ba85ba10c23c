package schema

import (
	"fmt"

	"github.com/reoring/jdec/jsonschema"
	"github.com/reoring/jdec/jsonvalue"
)

// Render interprets s as a JSON Schema document.
//
// Single-option unions collapse to the option. Intersections are flattened,
// and when every part is an Object they merge into one Object. An Object
// with no Unnamed entries allows additional properties; otherwise they must
// satisfy the union of the Unnamed entries. Ref is never expanded, so a
// schema only recurses as deep as its tree.
func Render(s Schema) *jsonschema.Schema {
	switch x := s.(type) {
	case nil, Any:
		return &jsonschema.Schema{}
	case Lit:
		return &jsonschema.Schema{Type: x.Kind.TypeName()}
	case Array:
		out := &jsonschema.Schema{Type: "array"}
		if _, unconstrained := x.Item.(Any); !unconstrained && x.Item != nil {
			out.Items = Render(x.Item)
		}
		return out
	case Object:
		return renderObject(x)
	case Union:
		switch len(x.Options) {
		case 0:
			// Nothing satisfies an empty disjunction.
			return &jsonschema.Schema{Not: &jsonschema.Schema{}}
		case 1:
			return Render(x.Options[0])
		}
		return &jsonschema.Schema{AnyOf: renderAll(x.Options)}
	case Intersection:
		parts := Flatten(x)
		switch len(parts) {
		case 0:
			return &jsonschema.Schema{}
		case 1:
			return Render(parts[0])
		}
		if merged, ok := mergeObjects(parts); ok {
			return renderObject(merged)
		}
		return &jsonschema.Schema{AllOf: renderAll(parts)}
	case Enum:
		return &jsonschema.Schema{Enum: append([]jsonvalue.Value(nil), x.Values...)}
	case Ref:
		return &jsonschema.Schema{Ref: x.Name}
	case Unknown:
		return &jsonschema.Schema{DecoderError: x.Message}
	}
	panic(fmt.Sprintf("schema: unhandled variant %T", s))
}

func renderAll(ss []Schema) []*jsonschema.Schema {
	out := make([]*jsonschema.Schema, len(ss))
	for i, s := range ss {
		out[i] = Render(s)
	}
	return out
}

func renderObject(o Object) *jsonschema.Schema {
	out := &jsonschema.Schema{Type: "object"}
	for _, f := range o.Known {
		rendered := Render(f.Value)
		if prev, ok := out.Properties.Get(f.Name); ok {
			// The same name decoded twice must satisfy both.
			rendered = &jsonschema.Schema{AllOf: []*jsonschema.Schema{prev, rendered}}
		}
		out.Properties = out.Properties.With(f.Name, rendered)
		if f.Required {
			out.Required = appendUnique(out.Required, f.Name)
		}
	}
	if len(o.Unnamed) == 0 {
		out.AdditionalProperties = true
	} else {
		out.AdditionalProperties = Render(Union{Options: o.Unnamed})
	}
	return out
}

func appendUnique(names []string, name string) []string {
	for _, n := range names {
		if n == name {
			return names
		}
	}
	return append(names, name)
}

// Flatten returns the parts of an intersection with nested intersections
// spliced in place.
func Flatten(i Intersection) []Schema {
	var out []Schema
	for _, p := range i.Parts {
		if nested, ok := p.(Intersection); ok {
			out = append(out, Flatten(nested)...)
			continue
		}
		out = append(out, p)
	}
	return out
}

func mergeObjects(parts []Schema) (Object, bool) {
	var merged Object
	for _, p := range parts {
		o, ok := p.(Object)
		if !ok {
			return Object{}, false
		}
		merged.Known = append(merged.Known, o.Known...)
		merged.Unnamed = append(merged.Unnamed, o.Unnamed...)
	}
	return merged, true
}
