package jsonschema_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/jdec/jsonschema"
	"github.com/reoring/jdec/jsonvalue"
)

func person() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: jsonschema.Properties{}.
			With("name", &jsonschema.Schema{Type: "string"}).
			With("age", &jsonschema.Schema{Type: "integer"}).
			With("tags", &jsonschema.Schema{Type: "array", Items: &jsonschema.Schema{Type: "string"}}),
		Required:             []string{"name"},
		AdditionalProperties: true,
	}
}

func TestSchema_JSONKeepsPropertyOrder(t *testing.T) {
	b, err := person().JSON()
	require.NoError(t, err)
	require.Equal(t,
		`{"type":"object","properties":{"name":{"type":"string"},"age":{"type":"integer"},"tags":{"type":"array","items":{"type":"string"}}},"required":["name"],"additionalProperties":true}`,
		string(b))
}

func TestSchema_JSONIndent(t *testing.T) {
	b, err := (&jsonschema.Schema{Type: "string"}).JSONIndent("  ")
	require.NoError(t, err)
	require.Equal(t, "{\n  \"type\": \"string\"\n}", string(b))
}

func TestSchema_YAML(t *testing.T) {
	b, err := person().YAML()
	require.NoError(t, err)
	require.Equal(t, `type: object
properties:
  name:
    type: string
  age:
    type: integer
  tags:
    type: array
    items:
      type: string
required:
  - name
additionalProperties: true
`, string(b))
}

func TestSchema_YAMLQuotesAmbiguousScalars(t *testing.T) {
	s := &jsonschema.Schema{Enum: []jsonvalue.Value{jsonvalue.String("true"), jsonvalue.Bool(true)}, Ref: "#/defs/x"}
	b, err := s.YAML()
	require.NoError(t, err)
	require.Equal(t, "$ref: '#/defs/x'\nenum:\n  - \"true\"\n  - true\n", string(b))
}

func TestProperties_With(t *testing.T) {
	p := jsonschema.Properties{}.With("a", &jsonschema.Schema{Type: "string"}).With("b", &jsonschema.Schema{})
	q := p.With("a", &jsonschema.Schema{Type: "integer"})

	require.Equal(t, []string{"a", "b"}, q.Names())
	got, ok := q.Get("a")
	require.True(t, ok)
	require.Equal(t, "integer", got.Type)

	orig, _ := p.Get("a")
	require.Equal(t, "string", orig.Type)
}

func TestSchema_Validate(t *testing.T) {
	s := person()
	require.NoError(t, s.Validate(jsonvalue.MustParse(`{"name":"ann","age":3,"tags":["x"],"extra":true}`)))
	require.Error(t, s.Validate(jsonvalue.MustParse(`{"age":3}`)))
	require.Error(t, s.Validate(jsonvalue.MustParse(`{"name":"ann","age":3.5}`)))
	require.Error(t, s.Validate(jsonvalue.MustParse(`{"name":"ann","tags":[1]}`)))
}

func TestSchema_ValidateClosedDict(t *testing.T) {
	s := &jsonschema.Schema{Type: "object", AdditionalProperties: &jsonschema.Schema{Type: "integer"}}
	require.NoError(t, s.Validate(jsonvalue.MustParse(`{"a":1,"b":2}`)))
	require.Error(t, s.Validate(jsonvalue.MustParse(`{"a":"x"}`)))
}

func TestSchema_ValidateAnyOf(t *testing.T) {
	s := &jsonschema.Schema{AnyOf: []*jsonschema.Schema{{Type: "string"}, {Type: "null"}}}
	require.NoError(t, s.Validate(jsonvalue.String("x")))
	require.NoError(t, s.Validate(jsonvalue.Null{}))
	require.Error(t, s.Validate(jsonvalue.Number("1")))
}

func TestSchema_OpenAPIKeepsDecoderError(t *testing.T) {
	o := (&jsonschema.Schema{DecoderError: "never set"}).OpenAPI()
	require.Equal(t, "never set", o.Extensions[jsonschema.ExtDecoderError])
}
