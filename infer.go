package jdec

import (
	"github.com/reoring/jdec/jsonschema"
	"github.com/reoring/jdec/jsonvalue"
	"github.com/reoring/jdec/schema"
)

// Infer derives a decoder from a sample document. The decoder accepts
// documents shaped like the sample and yields them unchanged; its schema
// describes that shape.
//
//   - null, booleans and strings map to Null, Bool and String.
//   - integral numbers map to Int64, other numbers to Float64.
//   - arrays map to a List over the distinct element shapes, or to
//     ArrayValue when the sample is empty.
//   - objects require every sample member, in sample order. Extra members
//     are accepted and kept.
func Infer(sample jsonvalue.Value) Decoder[jsonvalue.Value] {
	switch x := sample.(type) {
	case nil, jsonvalue.Null:
		return keep(Null())
	case jsonvalue.Bool:
		return keep(Bool())
	case jsonvalue.String:
		return keep(String())
	case jsonvalue.Number:
		if x.IsInteger() {
			return keep(Int64())
		}
		return keep(Float64())
	case jsonvalue.Array:
		return inferArray(x)
	case *jsonvalue.Object:
		return inferObject(x)
	}
	return Value()
}

// keep validates with d and yields the input itself.
func keep[T any](d Decoder[T]) Decoder[jsonvalue.Value] {
	return New(func(v jsonvalue.Value) Result[jsonvalue.Value] {
		if r := d.Apply(v); r.failed {
			return Err[jsonvalue.Value](r.msg)
		}
		return Ok(v)
	}, d.Schema())
}

func inferArray(arr jsonvalue.Array) Decoder[jsonvalue.Value] {
	if len(arr) == 0 {
		return keep(ArrayValue())
	}
	var shapes []Decoder[jsonvalue.Value]
	seen := make(map[string]bool)
	for _, e := range arr {
		d := Infer(e)
		b, _ := schema.Render(d.Schema()).JSON()
		key := string(b)
		if seen[key] {
			continue
		}
		seen[key] = true
		shapes = append(shapes, d)
	}
	item := shapes[0]
	if len(shapes) > 1 {
		item = OneOf(shapes...)
	}
	return Map(List(item), func(vs []jsonvalue.Value) jsonvalue.Value { return jsonvalue.Array(vs) })
}

func inferObject(o *jsonvalue.Object) Decoder[jsonvalue.Value] {
	members := o.Members()
	if len(members) == 0 {
		return keep(ObjectValue())
	}
	fields := make([]Decoder[jsonvalue.Value], len(members))
	for i, m := range members {
		fields[i] = Field(m.Key, Infer(m.Value))
	}
	all := Collect(fields...)
	return New(func(v jsonvalue.Value) Result[jsonvalue.Value] {
		if r := all.Apply(v); r.failed {
			return Err[jsonvalue.Value](r.msg)
		}
		return Ok(v)
	}, all.Schema())
}

// InferSchema is Infer followed by rendering its schema.
func InferSchema(sample jsonvalue.Value) *jsonschema.Schema {
	return schema.Render(Infer(sample).Schema())
}
