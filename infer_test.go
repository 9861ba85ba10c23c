package jdec_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/jdec"
	"github.com/reoring/jdec/jsonvalue"
)

func TestInfer_AcceptsSameShape(t *testing.T) {
	d := jdec.Infer(parse(t, `{"id":1,"name":"a","tags":["x"],"score":1.5,"ok":true,"note":null}`))

	in := parse(t, `{"id":7,"name":"b","tags":[],"score":2,"ok":false,"note":null,"extra":{}}`)
	r := d.Apply(in)
	require.True(t, r.IsOk(), r.Message())
	require.True(t, jsonvalue.Equal(in, r.Value()))
}

func TestInfer_Rejects(t *testing.T) {
	d := jdec.Infer(parse(t, `{"id":1,"user":{"name":"a"},"tags":["x"]}`))
	cases := map[string]string{
		`{"id":"1","user":{"name":"a"},"tags":[]}`:  `field 'id': expected Number, got "1"`,
		`{"id":1.5,"user":{"name":"a"},"tags":[]}`:  `field 'id': number 1.5 is not an integer`,
		`{"id":1,"user":{},"tags":[]}`:              `field 'user': field 'name': missing`,
		`{"id":1,"user":{"name":"a"},"tags":[2]}`:   `field 'tags': array element #0: expected String, got 2`,
		`{"id":1,"user":{"name":"a"}}`:              `field 'tags': missing`,
		`[]`:                                        `expected Object, got []`,
	}
	for in, want := range cases {
		require.Equal(t, want, d.Apply(parse(t, in)).Message(), in)
	}
}

func TestInferSchema(t *testing.T) {
	out, err := jdec.InferSchema(parse(t, `{"a":1,"b":[1,"x",2],"c":{}}`)).JSON()
	require.NoError(t, err)
	require.JSONEq(t, `{
		"type": "object",
		"properties": {
			"a": {"type": "integer"},
			"b": {"type": "array", "items": {"anyOf": [{"type": "integer"}, {"type": "string"}]}},
			"c": {"type": "object", "additionalProperties": true}
		},
		"required": ["a", "b", "c"],
		"additionalProperties": true
	}`, string(out))
}

func TestInfer_Scalars(t *testing.T) {
	cases := map[string]string{
		`null`:  `{"type":"null"}`,
		`true`:  `{"type":"boolean"}`,
		`"s"`:   `{"type":"string"}`,
		`1`:     `{"type":"integer"}`,
		`1.25`:  `{"type":"number"}`,
		`[]`:    `{"type":"array"}`,
		`[[1]]`: `{"type":"array","items":{"type":"array","items":{"type":"integer"}}}`,
	}
	for in, want := range cases {
		require.JSONEq(t, want, render(t, jdec.Infer(parse(t, in)).Schema()), in)
	}
}

func TestInfer_SchemaValidatesSample(t *testing.T) {
	sample := parse(t, `{"id":1,"name":"a","tags":["x",1],"n":null,"f":0.5}`)
	require.NoError(t, jdec.InferSchema(sample).Validate(sample))
	require.Error(t, jdec.InferSchema(sample).Validate(parse(t, `{"id":"1"}`)))
}
