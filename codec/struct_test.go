package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/jdec"
	"github.com/reoring/jdec/schema"
)

type server struct {
	Host    string   `json:"host"`
	Port    int      `json:"port,omitempty"`
	Tags    []string `json:"tags"`
	Ignored string   `json:"-"`
	Debug   bool
	secret  string
}

func TestStruct(t *testing.T) {
	got, err := jdec.DecodeString(`{"host":"db","port":5432,"tags":["a"],"debug":true,"extra":1}`, Struct[server]()).Unwrap()
	require.NoError(t, err)
	require.Equal(t, server{Host: "db", Port: 5432, Tags: []string{"a"}, Debug: true}, got)

	r := jdec.DecodeString(`{"host":1}`, Struct[server]())
	require.Contains(t, r.Message(), "'host' expected type 'string'")

	require.Equal(t, "expected Object, got []", jdec.DecodeString(`[]`, Struct[server]()).Message())
}

func TestStrictStruct(t *testing.T) {
	_, err := jdec.DecodeString(`{"host":"db"}`, StrictStruct[server]()).Unwrap()
	require.NoError(t, err)

	r := jdec.DecodeString(`{"host":"db","extra":1}`, StrictStruct[server]())
	require.Contains(t, r.Message(), "extra")
}

func TestStruct_Schema(t *testing.T) {
	out, err := schema.Render(Struct[server]().Schema()).JSON()
	require.NoError(t, err)
	require.JSONEq(t, `{
		"type": "object",
		"properties": {"host": {}, "port": {}, "tags": {}, "Debug": {}},
		"additionalProperties": true
	}`, string(out))

	out, err = schema.Render(StrictStruct[server]().Schema()).JSON()
	require.NoError(t, err)
	require.JSONEq(t, `{
		"type": "object",
		"properties": {"host": {}, "port": {}, "tags": {}, "Debug": {}},
		"additionalProperties": {"not": {}}
	}`, string(out))
}
