package jdec

import (
	"io"

	"github.com/reoring/jdec/jsonvalue"
)

// DecodeString parses text as JSON and decodes it with d. Parse failures are
// reported through the Result like decode failures.
func DecodeString[T any](text string, d Decoder[T], opts ...jsonvalue.ParseOpt) Result[T] {
	return decodeParsed[T](jsonvalue.ParseString(text, opts...))(d)
}

// DecodeBytes is DecodeString for a byte slice.
func DecodeBytes[T any](data []byte, d Decoder[T], opts ...jsonvalue.ParseOpt) Result[T] {
	return decodeParsed[T](jsonvalue.Parse(data, opts...))(d)
}

// DecodeReader consumes r and decodes it with d.
func DecodeReader[T any](r io.Reader, d Decoder[T], opts ...jsonvalue.ParseOpt) Result[T] {
	return decodeParsed[T](jsonvalue.ParseReader(r, opts...))(d)
}

// DecodeYAML parses a YAML document and decodes it with d.
func DecodeYAML[T any](data []byte, d Decoder[T]) Result[T] {
	return decodeParsed[T](jsonvalue.ParseYAML(data))(d)
}

// DecodeCBOR parses one CBOR data item and decodes it with d.
func DecodeCBOR[T any](data []byte, d Decoder[T]) Result[T] {
	return decodeParsed[T](jsonvalue.ParseCBOR(data))(d)
}

// DecodeValue applies d to an already parsed value.
func DecodeValue[T any](v jsonvalue.Value, d Decoder[T]) Result[T] { return d.Apply(v) }

func decodeParsed[T any](v jsonvalue.Value, err error) func(Decoder[T]) Result[T] {
	return func(d Decoder[T]) Result[T] {
		if err != nil {
			return Err[T](err.Error())
		}
		return d.Apply(v)
	}
}
