package schema_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/jdec/jsonvalue"
	"github.com/reoring/jdec/schema"
)

func renderJSON(t *testing.T, s schema.Schema) string {
	t.Helper()
	b, err := schema.Render(s).JSON()
	require.NoError(t, err)
	return string(b)
}

func TestRender_Variants(t *testing.T) {
	cases := []struct {
		name string
		in   schema.Schema
		want string
	}{
		{"any", schema.Any{}, `{}`},
		{"null", schema.Null(), `{"type":"null"}`},
		{"int", schema.Int(), `{"type":"integer"}`},
		{"float", schema.Float(), `{"type":"number"}`},
		{"bool", schema.Bool(), `{"type":"boolean"}`},
		{"string", schema.String(), `{"type":"string"}`},
		{"array of any omits items", schema.Array{Item: schema.Any{}}, `{"type":"array"}`},
		{"array", schema.Array{Item: schema.String()}, `{"type":"array","items":{"type":"string"}}`},
		{"enum", schema.Enum{Values: []jsonvalue.Value{jsonvalue.String("A"), jsonvalue.String("B")}}, `{"enum":["A","B"]}`},
		{"ref", schema.Ref{Name: "#/definitions/node"}, `{"$ref":"#/definitions/node"}`},
		{"unknown", schema.Unknown{Message: "no reference"}, `{"x-decoder-error":"no reference"}`},
		{"union", schema.OneOf(schema.Int(), schema.String()), `{"anyOf":[{"type":"integer"},{"type":"string"}]}`},
		{"empty union", schema.OneOf(), `{"not":{}}`},
		{"empty object", schema.Object{}, `{"type":"object","additionalProperties":true}`},
		{"dict", schema.Dict(schema.Int()), `{"type":"object","additionalProperties":{"type":"integer"}}`},
		{
			"dict with several unnamed",
			schema.Object{Unnamed: []schema.Schema{schema.Int(), schema.String()}},
			`{"type":"object","additionalProperties":{"anyOf":[{"type":"integer"},{"type":"string"}]}}`,
		},
		{
			"object",
			schema.Object{Known: []schema.Field{{Name: "b", Value: schema.Int(), Required: true}, {Name: "a", Value: schema.String()}}},
			`{"type":"object","properties":{"b":{"type":"integer"},"a":{"type":"string"}},"required":["b"],"additionalProperties":true}`,
		},
		{"mixed intersection", schema.AllOf(schema.Int(), schema.FieldOf("a", schema.Int(), true)), `{"allOf":[{"type":"integer"},{"type":"object","properties":{"a":{"type":"integer"}},"required":["a"],"additionalProperties":true}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.JSONEq(t, tc.want, renderJSON(t, tc.in))
		})
	}
}

func TestRender_SingleUnionCollapses(t *testing.T) {
	inner := schema.Array{Item: schema.FieldOf("x", schema.Bool(), false)}
	require.Equal(t, renderJSON(t, inner), renderJSON(t, schema.OneOf(inner)))
}

func TestRender_IntersectionOfFieldsMerges(t *testing.T) {
	s := schema.AllOf(
		schema.FieldOf("id", schema.Int(), true),
		schema.AllOf(
			schema.FieldOf("name", schema.String(), true),
			schema.FieldOf("tags", schema.Array{Item: schema.String()}, false),
		),
	)
	require.JSONEq(t, `{
		"type": "object",
		"properties": {
			"id": {"type": "integer"},
			"name": {"type": "string"},
			"tags": {"type": "array", "items": {"type": "string"}}
		},
		"required": ["id", "name"],
		"additionalProperties": true
	}`, renderJSON(t, s))
}

func TestRender_IntersectionKeepsPropertyOrder(t *testing.T) {
	s := schema.AllOf(
		schema.FieldOf("z", schema.Int(), true),
		schema.FieldOf("a", schema.Int(), true),
		schema.FieldOf("m", schema.Int(), true),
	)
	require.Equal(t, []string{"z", "a", "m"}, schema.Render(s).Properties.Names())
}

func TestRender_RepeatedFieldRequiresBoth(t *testing.T) {
	s := schema.AllOf(
		schema.FieldOf("a", schema.Int(), false),
		schema.FieldOf("a", schema.Float(), true),
	)
	require.JSONEq(t,
		`{"type":"object","properties":{"a":{"allOf":[{"type":"integer"},{"type":"number"}]}},"required":["a"],"additionalProperties":true}`,
		renderJSON(t, s))
}

func TestRender_NestedEnum(t *testing.T) {
	enum := schema.Enum{Values: []jsonvalue.Value{jsonvalue.String("a"), jsonvalue.Number("1.50")}}

	require.JSONEq(t, `{"type":"array","items":{"enum":["a",1.50]}}`, renderJSON(t, schema.Array{Item: enum}))
	require.JSONEq(t,
		`{"type":"object","properties":{"k":{"type":"array","items":{"enum":["a",1.50]}}},"required":["k"],"additionalProperties":true}`,
		renderJSON(t, schema.FieldOf("k", schema.Array{Item: enum}, true)))

	out, err := schema.Render(schema.FieldOf("k", enum, true)).YAML()
	require.NoError(t, err)
	require.Contains(t, string(out), "- a")
}

func TestRender_SingletonIntersection(t *testing.T) {
	require.JSONEq(t, `{"type":"string"}`, renderJSON(t, schema.AllOf(schema.AllOf(schema.String()))))
	require.JSONEq(t, `{}`, renderJSON(t, schema.AllOf()))
}

func TestRender_NilIsAny(t *testing.T) {
	require.JSONEq(t, `{}`, renderJSON(t, nil))
}

func TestFlatten(t *testing.T) {
	got := schema.Flatten(schema.Intersection{Parts: []schema.Schema{
		schema.Int(),
		schema.AllOf(schema.String(), schema.AllOf(schema.Bool())),
	}})
	require.Equal(t, []schema.Schema{schema.Int(), schema.String(), schema.Bool()}, got)
}
