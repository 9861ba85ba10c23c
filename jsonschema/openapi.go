package jsonschema

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/reoring/jdec/jsonvalue"
)

// ExtDecoderError is the OpenAPI extension that carries DecoderError.
const ExtDecoderError = "x-decoder-error"

// OpenAPI converts s into an OpenAPI 3 schema. References are kept by name
// and their targets are treated as unconstrained.
func (s *Schema) OpenAPI() *openapi3.Schema { return toOpenAPI(s).Value }

// Validate checks v against s using the OpenAPI validator.
func (s *Schema) Validate(v jsonvalue.Value) error {
	return s.OpenAPI().VisitJSON(jsonvalue.ToGo(v), openapi3.MultiErrors())
}

func toOpenAPI(s *Schema) *openapi3.SchemaRef {
	if s == nil {
		return openapi3.NewSchemaRef("", &openapi3.Schema{Nullable: true})
	}
	out := &openapi3.Schema{}
	if s.Type != "" {
		out.Type = &openapi3.Types{s.Type}
	}
	// OpenAPI 3.0 validators only admit null through Nullable.
	out.Nullable = s.Type == "null" || s.permitsAnything()

	for _, e := range s.Enum {
		out.Enum = append(out.Enum, jsonvalue.ToGo(e))
	}
	if len(s.Properties) > 0 {
		out.Properties = make(openapi3.Schemas, len(s.Properties))
		for _, p := range s.Properties {
			out.Properties[p.Name] = toOpenAPI(p.Schema)
		}
	}
	out.Required = append(out.Required, s.Required...)
	switch ap := s.AdditionalProperties.(type) {
	case bool:
		out.AdditionalProperties = openapi3.AdditionalProperties{Has: &ap}
	case *Schema:
		out.AdditionalProperties = openapi3.AdditionalProperties{Schema: toOpenAPI(ap)}
	}
	if s.Items != nil {
		out.Items = toOpenAPI(s.Items)
	}
	for _, o := range s.AnyOf {
		out.AnyOf = append(out.AnyOf, toOpenAPI(o))
	}
	for _, p := range s.AllOf {
		out.AllOf = append(out.AllOf, toOpenAPI(p))
	}
	if s.Not != nil {
		out.Not = toOpenAPI(s.Not)
	}
	if s.DecoderError != "" {
		out.Extensions = map[string]any{ExtDecoderError: s.DecoderError}
	}
	return openapi3.NewSchemaRef(s.Ref, out)
}

// permitsAnything reports whether s places no constraint on the value, in
// which case null is accepted too.
func (s *Schema) permitsAnything() bool {
	return s.Type == "" && len(s.Enum) == 0 && len(s.AnyOf) == 0 && len(s.AllOf) == 0 && s.Not == nil
}
