package codec

import (
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/reoring/jdec"
	"github.com/reoring/jdec/jsonvalue"
	"github.com/reoring/jdec/schema"
)

// Struct decodes an object into T by member name, using the json struct
// tag when present. Members with no matching field are ignored; fields with
// no member keep their zero value.
//
// Struct is for loosely shaped inputs. Numbers are converted with
// truncation and nested shapes are not reported field by field; build the
// decoder from Field for exact errors.
func Struct[T any]() jdec.Decoder[T] { return structDecoder[T](false) }

// StrictStruct is Struct that fails on members with no matching field.
func StrictStruct[T any]() jdec.Decoder[T] { return structDecoder[T](true) }

func structDecoder[T any](strict bool) jdec.Decoder[T] {
	return jdec.MapTry(jdec.ObjectValue(), func(o *jsonvalue.Object) (T, error) {
		var out T
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:     "json",
			ErrorUnused: strict,
			Result:      &out,
		})
		if err != nil {
			return out, err
		}
		err = dec.Decode(jsonvalue.ToGo(o))
		return out, err
	}).SetSchema(structSchema(reflect.TypeFor[T](), strict))
}

// structSchema lists the exported fields of t as optional members.
func structSchema(t reflect.Type, strict bool) schema.Schema {
	var obj schema.Object
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name := f.Name
			if tag, ok := f.Tag.Lookup("json"); ok {
				tagName, _, _ := strings.Cut(tag, ",")
				if tagName == "-" {
					continue
				}
				if tagName != "" {
					name = tagName
				}
			}
			obj.Known = append(obj.Known, schema.Field{Name: name, Value: schema.Any{}})
		}
	}
	if strict {
		obj.Unnamed = []schema.Schema{schema.Union{}}
	}
	return obj
}
