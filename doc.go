// Package jdec builds JSON decoders that carry a description of what they
// accept.
//
// A Decoder[T] turns a jsonvalue.Value into a Result[T] and holds a
// schema.Schema describing the documents it accepts. Combinators build both
// halves at once, so the schema of a composed decoder always matches its
// behaviour:
//
//	type User struct {
//		Name string
//		Age  int
//	}
//
//	user := jdec.Map2(
//		jdec.Field("name", jdec.String()),
//		jdec.Field("age", jdec.Int()),
//		func(name string, age int) User { return User{name, age} },
//	)
//
//	r := jdec.DecodeString(`{"name":"ann","age":"x"}`, user)
//	r.Message() // field 'age': expected Number, got "x"
//
//	s := schema.Render(user.Schema()) // {"type":"object","properties":...}
//
// Failures are plain messages that name the path to the offending value.
// They are localised through the i18n package.
//
// Layout:
//   - jsonvalue: the value tree, parsing (JSON, YAML and CBOR) and rendering.
//   - schema: the schema algebra and its JSON Schema rendering.
//   - jsonschema: the rendered document, with YAML and OpenAPI output.
//   - source/...: token drivers the parser runs on.
//   - codec: decoders for common string encodings (time, duration, URL)
//     and for tagged structs.
//   - cmd/jdec: a CLI to format, infer schemas from and check documents,
//     also served over HTTP.
package jdec
