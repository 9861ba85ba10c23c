package jdec_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/jdec"
	"github.com/reoring/jdec/jsonvalue"
	"github.com/reoring/jdec/schema"
)

func parse(t *testing.T, s string) jsonvalue.Value {
	t.Helper()
	v, err := jsonvalue.ParseString(s)
	require.NoError(t, err)
	return v
}

// counting wraps d and counts its applications.
func counting[T any](n *int, d jdec.Decoder[T]) jdec.Decoder[T] {
	return jdec.DebugWith(func(jsonvalue.Value, jdec.Result[T]) { *n++ }, d)
}

func TestMap_Identity(t *testing.T) {
	d := jdec.Field("a", jdec.Int())
	id := jdec.Map(d, func(i int) int { return i })
	for _, in := range []string{`{"a":1}`, `{"a":"x"}`, `{}`, `[]`, `null`} {
		v := parse(t, in)
		require.Equal(t, d.Apply(v), id.Apply(v), in)
	}
	require.Equal(t, d.Schema(), id.Schema())
}

func TestMap_Composition(t *testing.T) {
	inc := func(i int) int { return i + 1 }
	str := func(i int) string { return strconv.Itoa(i) }
	a := jdec.Map(jdec.Map(jdec.Int(), inc), str)
	b := jdec.Map(jdec.Int(), func(i int) string { return str(inc(i)) })
	v := jsonvalue.Number("41")
	require.Equal(t, a.Apply(v), b.Apply(v))
	require.Equal(t, "42", a.Apply(v).Value())
}

func TestAndThen_SeesOriginalInput(t *testing.T) {
	shape := jdec.AndThen(jdec.Field("kind", jdec.String()), func(kind string) jdec.Decoder[float64] {
		switch kind {
		case "square":
			return jdec.Map(jdec.Field("side", jdec.Float64()), func(s float64) float64 { return s * s })
		case "rect":
			return jdec.Map2(jdec.Field("w", jdec.Float64()), jdec.Field("h", jdec.Float64()),
				func(w, h float64) float64 { return w * h })
		}
		return jdec.Fail[float64]("unknown kind " + kind)
	})

	require.Equal(t, 9.0, shape.Apply(parse(t, `{"kind":"square","side":3}`)).Value())
	require.Equal(t, 6.0, shape.Apply(parse(t, `{"kind":"rect","w":2,"h":3}`)).Value())
	require.Equal(t, "unknown kind hex", shape.Apply(parse(t, `{"kind":"hex"}`)).Message())
	require.Equal(t, "field 'kind': missing", shape.Apply(parse(t, `{}`)).Message())

	// The continuation is only known per input.
	require.Equal(t, jdec.Field("kind", jdec.String()).Schema(), shape.Schema())
}

func TestMapTry(t *testing.T) {
	pos := jdec.MapTry(jdec.Int(), func(i int) (uint, error) {
		if i < 0 {
			return 0, errors.New("negative")
		}
		return uint(i), nil
	})
	require.Equal(t, uint(3), pos.Apply(jsonvalue.Number("3")).Value())
	require.Equal(t, "negative", pos.Apply(jsonvalue.Number("-3")).Message())
	require.Equal(t, schema.Int(), pos.Schema())

	msg := jdec.MapTryMsg(jdec.String(), strconv.Atoi, "not a numeric string")
	require.Equal(t, 12, msg.Apply(jsonvalue.String("12")).Value())
	require.Equal(t, "not a numeric string", msg.Apply(jsonvalue.String("x")).Message())

	wrapped := jdec.MapTryFunc(jdec.String(), strconv.Atoi, func(err error) string { return "bad: " + err.Error() })
	require.Equal(t, `bad: strconv.Atoi: parsing "x": invalid syntax`, wrapped.Apply(jsonvalue.String("x")).Message())
}

func TestPanics_BecomeErr(t *testing.T) {
	v := jsonvalue.Number("1")

	m := jdec.Map(jdec.Int(), func(int) int { panic("boom") })
	require.Equal(t, "boom", m.Apply(v).Message())

	try := jdec.MapTry(jdec.Int(), func(int) (int, error) { panic(errors.New("kaboom")) })
	require.Equal(t, "kaboom", try.Apply(v).Message())

	then := jdec.AndThen(jdec.Int(), func(int) jdec.Decoder[int] {
		var arr []int
		return jdec.Succeed(arr[3])
	})
	require.Contains(t, then.Apply(v).Message(), "index out of range")

	m2 := jdec.Map2(jdec.Int(), jdec.Int(), func(int, int) int { panic(42) })
	require.Equal(t, "42", m2.Apply(v).Message())

	f := jdec.Int().Filter(func(int) bool { panic("pred") }, "unused")
	require.Equal(t, "pred", f.Apply(v).Message())
}

func TestFromFunc(t *testing.T) {
	d := jdec.FromFunc(func(v jsonvalue.Value) (string, error) {
		if v.Kind() != jsonvalue.KindString {
			return "", errors.New("want a string")
		}
		return v.String(), nil
	})
	require.Equal(t, `"x"`, d.Apply(jsonvalue.String("x")).Value())
	require.Equal(t, "want a string", d.Apply(jsonvalue.Bool(true)).Message())
	_, unknown := d.Schema().(schema.Unknown)
	require.True(t, unknown)
}

func TestZeroDecoder_Fails(t *testing.T) {
	var d jdec.Decoder[int]
	r := d.Apply(jsonvalue.Number("1"))
	require.True(t, r.IsErr())
	require.Equal(t, "decode failed", r.Message())
	require.Equal(t, schema.Any{}, d.Schema())
}

func TestApply_NilIsNull(t *testing.T) {
	require.True(t, jdec.Null().Apply(nil).IsOk())
	require.Equal(t, "expected Bool, got null", jdec.Bool().Apply(nil).Message())
}

func TestDecode_ReturnsDecodeError(t *testing.T) {
	_, err := jdec.String().Decode(jsonvalue.Number("1"))
	require.EqualError(t, err, "expected String, got 1")
	require.True(t, jdec.IsDecodeError(err))

	var de *jdec.DecodeError
	require.ErrorAs(t, err, &de)
	require.Equal(t, "expected String, got 1", de.Message)
}

func TestSchemaSetters(t *testing.T) {
	d := jdec.String()
	require.Equal(t, schema.String(), d.Schema())
	require.Equal(t, schema.Ref{Name: "#/definitions/name"}, d.Ref("#/definitions/name").Schema())
	require.Equal(t, schema.Array{Item: schema.String()}, d.WithSchema(func(s schema.Schema) schema.Schema {
		return schema.Array{Item: s}
	}).Schema())
	require.Equal(t, schema.Any{}, d.SetSchema(nil).Schema())

	// The receiver is untouched.
	require.Equal(t, schema.String(), d.Schema())
	require.Equal(t, "a", d.Ref("x").Apply(jsonvalue.String("a")).Value())
}

func TestMapError(t *testing.T) {
	d := jdec.Field("port", jdec.Int()).MapError(func(msg string) string { return "config: " + msg })
	require.Equal(t, "config: field 'port': missing", d.Apply(parse(t, `{}`)).Message())
	require.Equal(t, 80, d.Apply(parse(t, `{"port":80}`)).Value())
}

func TestFilter(t *testing.T) {
	port := jdec.Int().Filter(func(i int) bool { return i > 0 && i < 65536 }, "port out of range")
	require.Equal(t, 443, port.Apply(jsonvalue.Number("443")).Value())
	require.Equal(t, "port out of range", port.Apply(jsonvalue.Number("70000")).Message())
	require.Equal(t, "expected Number, got true", port.Apply(jsonvalue.Bool(true)).Message())

	named := jdec.String().FilterFunc(func(s string) bool { return s != "" }, func(s string) string {
		return "empty name " + strconv.Quote(s)
	})
	require.Equal(t, `empty name ""`, named.Apply(jsonvalue.String("")).Message())
}

func TestWiden(t *testing.T) {
	mixed := jdec.List(jdec.OneOf(jdec.Widen(jdec.Int()), jdec.Widen(jdec.String())))
	require.Equal(t, []any{1, "a"}, mixed.Apply(parse(t, `[1,"a"]`)).Value())
}
