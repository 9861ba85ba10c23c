package jdec

import (
	"sync"

	"github.com/reoring/jdec/i18n"
	"github.com/reoring/jdec/jsonvalue"
	"github.com/reoring/jdec/schema"
)

// Recursive builds a decoder that refers to itself. gen receives a
// placeholder that dispatches to the decoder gen returns; gen runs exactly
// once, during the call to Recursive.
//
// The placeholder's schema is Unknown, so a schema that reaches it renders
// the Unknown marker instead of recursing. Return self.Ref(name) in place of
// self to name the cycle instead:
//
//	tree := jdec.Recursive(func(self jdec.Decoder[Node]) jdec.Decoder[Node] {
//		return jdec.Map2(
//			jdec.Field("value", jdec.Int()),
//			jdec.Field("children", jdec.List(self.Ref("#/definitions/node"))),
//			func(v int, cs []Node) Node { return Node{v, cs} },
//		)
//	})
//
// Until gen returns, the placeholder fails every input.
func Recursive[T any](gen func(self Decoder[T]) Decoder[T]) Decoder[T] {
	var cell Decoder[T]
	unset := message(i18n.RecursionUnset)
	self := Decoder[T]{
		run: func(v jsonvalue.Value) Result[T] {
			if cell.run == nil {
				return Err[T](unset)
			}
			return cell.Apply(v)
		},
		schema: schema.Unknown{Message: unset},
	}
	// cell is written once here, before the decoder is returned, and only
	// read afterwards.
	cell = gen(self)
	return cell
}

// Lazy defers building a decoder until its first use, for definitions that
// would otherwise refer to themselves during package initialisation. Its
// schema is Unknown since nothing is built before the first call.
func Lazy[T any](build func() Decoder[T]) Decoder[T] {
	get := sync.OnceValue(build)
	return New(func(v jsonvalue.Value) Result[T] { return get().Apply(v) },
		schema.Unknown{Message: message(i18n.RecursionUnset)})
}
