package jdec

import (
	"errors"
	"math"
	"math/big"
	"strconv"

	"github.com/reoring/jdec/i18n"
	"github.com/reoring/jdec/jsonvalue"
	"github.com/reoring/jdec/schema"
)

// kind builds a decoder accepting one JSON kind.
func kind[V jsonvalue.Value, T any](k jsonvalue.Kind, s schema.Schema, conv func(V) T) Decoder[T] {
	return New(func(v jsonvalue.Value) Result[T] {
		x, ok := v.(V)
		if !ok {
			return Err[T](mismatch(k, v))
		}
		return Ok(conv(x))
	}, s)
}

func mismatch(expected jsonvalue.Kind, got jsonvalue.Value) string {
	return message(i18n.KindMismatch, "expected", expected.String(), "got", jsonvalue.Render(got))
}

func identity[T any](t T) T { return t }

// Value accepts any JSON value unchanged.
func Value() Decoder[jsonvalue.Value] {
	return New(func(v jsonvalue.Value) Result[jsonvalue.Value] { return Ok(v) }, schema.Any{})
}

// Null accepts only null.
func Null() Decoder[jsonvalue.Null] {
	return kind(jsonvalue.KindNull, schema.Null(), identity[jsonvalue.Null])
}

func Bool() Decoder[bool] {
	return kind(jsonvalue.KindBool, schema.Bool(), func(b jsonvalue.Bool) bool { return bool(b) })
}

func String() Decoder[string] {
	return kind(jsonvalue.KindString, schema.String(), func(s jsonvalue.String) string { return string(s) })
}

// ObjectValue accepts any object.
func ObjectValue() Decoder[*jsonvalue.Object] {
	return kind(jsonvalue.KindObject, schema.Object{}, identity[*jsonvalue.Object])
}

// ArrayValue accepts any array.
func ArrayValue() Decoder[jsonvalue.Array] {
	return kind(jsonvalue.KindArray, schema.Array{Item: schema.Any{}}, identity[jsonvalue.Array])
}

// Number accepts any number and keeps its literal text.
func Number() Decoder[jsonvalue.Number] {
	return kind(jsonvalue.KindNumber, schema.Float(), identity[jsonvalue.Number])
}

// Decimal accepts any number as an exact rational. Numbers whose exponent
// is too large to hold exactly fail as overflowing.
func Decimal() Decoder[*big.Rat] { return rational("decimal") }

func rational(typ string) Decoder[*big.Rat] {
	return MapTry(Number(), func(n jsonvalue.Number) (*big.Rat, error) {
		r, ok := n.Rat()
		if !ok {
			return nil, errors.New(message(i18n.Overflow, "number", string(n), "type", typ))
		}
		return r, nil
	})
}

func narrowInt(n *big.Rat, bits int, typ string) (int64, error) {
	if !n.IsInt() {
		return 0, errors.New(message(i18n.NotInteger, "number", ratString(n)))
	}
	num := n.Num()
	if !num.IsInt64() {
		return 0, errors.New(message(i18n.Overflow, "number", num.String(), "type", typ))
	}
	i := num.Int64()
	if bits < 64 && (i < -1<<(bits-1) || i > 1<<(bits-1)-1) {
		return 0, errors.New(message(i18n.Overflow, "number", num.String(), "type", typ))
	}
	return i, nil
}

func narrowFloat(n *big.Rat, bits int, typ string) (float64, error) {
	var f float64
	if bits == 32 {
		f32, _ := n.Float32()
		f = float64(f32)
	} else {
		f, _ = n.Float64()
	}
	if math.IsInf(f, 0) {
		return 0, errors.New(message(i18n.Overflow, "number", ratString(n), "type", typ))
	}
	return f, nil
}

// ratString renders n without a trailing "/1", or as a decimal.
func ratString(n *big.Rat) string {
	if n.IsInt() {
		return n.Num().String()
	}
	f, _ := n.Float64()
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Int64 accepts integral numbers that fit in an int64. "1.0" and "1e2" are
// integral; "1.5" is not.
func Int64() Decoder[int64] {
	return MapTry(rational("int64"), func(n *big.Rat) (int64, error) {
		return narrowInt(n, 64, "int64")
	}).SetSchema(schema.Int())
}

func Int32() Decoder[int32] {
	return MapTry(rational("int32"), func(n *big.Rat) (int32, error) {
		i, err := narrowInt(n, 32, "int32")
		return int32(i), err
	}).SetSchema(schema.Int())
}

func Int() Decoder[int] {
	return MapTry(rational("int"), func(n *big.Rat) (int, error) {
		i, err := narrowInt(n, strconv.IntSize, "int")
		return int(i), err
	}).SetSchema(schema.Int())
}

// Float64 accepts any number that does not overflow float64, rounding to
// the nearest representable value.
func Float64() Decoder[float64] {
	return MapTry(rational("float64"), func(n *big.Rat) (float64, error) {
		return narrowFloat(n, 64, "float64")
	})
}

func Float32() Decoder[float32] {
	return MapTry(rational("float32"), func(n *big.Rat) (float32, error) {
		f, err := narrowFloat(n, 32, "float32")
		return float32(f), err
	})
}
