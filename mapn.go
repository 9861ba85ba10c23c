package jdec

import (
	"github.com/reoring/jdec/jsonvalue"
	"github.com/reoring/jdec/schema"
)

// The MapN functions apply N decoders to the same input, in argument order,
// and combine their results with f. Evaluation stops at the first failure:
// later decoders are not applied. The schema is the Intersection of the
// argument schemas, which renders as a single object when every argument
// decodes fields.

func intersect(parts ...schema.Schema) schema.Schema {
	out := make([]schema.Schema, len(parts))
	for i, p := range parts {
		if p == nil {
			p = schema.Any{}
		}
		out[i] = p
	}
	return schema.Intersection{Parts: out}
}

// Map2 combines two decoders, for example two fields into a struct.
func Map2[A, B, R any](da Decoder[A], db Decoder[B], f func(A, B) R) Decoder[R] {
	return Decoder[R]{
		schema: intersect(da.schema, db.schema),
		run: func(v jsonvalue.Value) Result[R] {
			ra := da.Apply(v)
			if ra.failed {
				return Err[R](ra.msg)
			}
			rb := db.Apply(v)
			if rb.failed {
				return Err[R](rb.msg)
			}
			return guard(func() Result[R] { return Ok(f(ra.v, rb.v)) })
		},
	}
}

// Map3 combines 3 decoders.
func Map3[A, B, C, R any](da Decoder[A], db Decoder[B], dc Decoder[C], f func(A, B, C) R) Decoder[R] {
	return Decoder[R]{
		schema: intersect(da.schema, db.schema, dc.schema),
		run: func(v jsonvalue.Value) Result[R] {
			ra := da.Apply(v)
			if ra.failed {
				return Err[R](ra.msg)
			}
			rb := db.Apply(v)
			if rb.failed {
				return Err[R](rb.msg)
			}
			rc := dc.Apply(v)
			if rc.failed {
				return Err[R](rc.msg)
			}
			return guard(func() Result[R] { return Ok(f(ra.v, rb.v, rc.v)) })
		},
	}
}

// Map4 combines 4 decoders.
func Map4[A, B, C, D, R any](da Decoder[A], db Decoder[B], dc Decoder[C], dd Decoder[D], f func(A, B, C, D) R) Decoder[R] {
	return Decoder[R]{
		schema: intersect(da.schema, db.schema, dc.schema, dd.schema),
		run: func(v jsonvalue.Value) Result[R] {
			ra := da.Apply(v)
			if ra.failed {
				return Err[R](ra.msg)
			}
			rb := db.Apply(v)
			if rb.failed {
				return Err[R](rb.msg)
			}
			rc := dc.Apply(v)
			if rc.failed {
				return Err[R](rc.msg)
			}
			rd := dd.Apply(v)
			if rd.failed {
				return Err[R](rd.msg)
			}
			return guard(func() Result[R] { return Ok(f(ra.v, rb.v, rc.v, rd.v)) })
		},
	}
}

// Map5 combines 5 decoders.
func Map5[A, B, C, D, E, R any](da Decoder[A], db Decoder[B], dc Decoder[C], dd Decoder[D], de Decoder[E], f func(A, B, C, D, E) R) Decoder[R] {
	return Decoder[R]{
		schema: intersect(da.schema, db.schema, dc.schema, dd.schema, de.schema),
		run: func(v jsonvalue.Value) Result[R] {
			ra := da.Apply(v)
			if ra.failed {
				return Err[R](ra.msg)
			}
			rb := db.Apply(v)
			if rb.failed {
				return Err[R](rb.msg)
			}
			rc := dc.Apply(v)
			if rc.failed {
				return Err[R](rc.msg)
			}
			rd := dd.Apply(v)
			if rd.failed {
				return Err[R](rd.msg)
			}
			re := de.Apply(v)
			if re.failed {
				return Err[R](re.msg)
			}
			return guard(func() Result[R] { return Ok(f(ra.v, rb.v, rc.v, rd.v, re.v)) })
		},
	}
}

// Map6 combines 6 decoders.
func Map6[A, B, C, D, E, F, R any](da Decoder[A], db Decoder[B], dc Decoder[C], dd Decoder[D], de Decoder[E], df Decoder[F], f func(A, B, C, D, E, F) R) Decoder[R] {
	return Decoder[R]{
		schema: intersect(da.schema, db.schema, dc.schema, dd.schema, de.schema, df.schema),
		run: func(v jsonvalue.Value) Result[R] {
			ra := da.Apply(v)
			if ra.failed {
				return Err[R](ra.msg)
			}
			rb := db.Apply(v)
			if rb.failed {
				return Err[R](rb.msg)
			}
			rc := dc.Apply(v)
			if rc.failed {
				return Err[R](rc.msg)
			}
			rd := dd.Apply(v)
			if rd.failed {
				return Err[R](rd.msg)
			}
			re := de.Apply(v)
			if re.failed {
				return Err[R](re.msg)
			}
			rf := df.Apply(v)
			if rf.failed {
				return Err[R](rf.msg)
			}
			return guard(func() Result[R] { return Ok(f(ra.v, rb.v, rc.v, rd.v, re.v, rf.v)) })
		},
	}
}

// Map7 combines 7 decoders.
func Map7[A, B, C, D, E, F, G, R any](da Decoder[A], db Decoder[B], dc Decoder[C], dd Decoder[D], de Decoder[E], df Decoder[F], dg Decoder[G], f func(A, B, C, D, E, F, G) R) Decoder[R] {
	return Decoder[R]{
		schema: intersect(da.schema, db.schema, dc.schema, dd.schema, de.schema, df.schema, dg.schema),
		run: func(v jsonvalue.Value) Result[R] {
			ra := da.Apply(v)
			if ra.failed {
				return Err[R](ra.msg)
			}
			rb := db.Apply(v)
			if rb.failed {
				return Err[R](rb.msg)
			}
			rc := dc.Apply(v)
			if rc.failed {
				return Err[R](rc.msg)
			}
			rd := dd.Apply(v)
			if rd.failed {
				return Err[R](rd.msg)
			}
			re := de.Apply(v)
			if re.failed {
				return Err[R](re.msg)
			}
			rf := df.Apply(v)
			if rf.failed {
				return Err[R](rf.msg)
			}
			rg := dg.Apply(v)
			if rg.failed {
				return Err[R](rg.msg)
			}
			return guard(func() Result[R] { return Ok(f(ra.v, rb.v, rc.v, rd.v, re.v, rf.v, rg.v)) })
		},
	}
}

// Map8 combines 8 decoders.
func Map8[A, B, C, D, E, F, G, H, R any](da Decoder[A], db Decoder[B], dc Decoder[C], dd Decoder[D], de Decoder[E], df Decoder[F], dg Decoder[G], dh Decoder[H], f func(A, B, C, D, E, F, G, H) R) Decoder[R] {
	return Decoder[R]{
		schema: intersect(da.schema, db.schema, dc.schema, dd.schema, de.schema, df.schema, dg.schema, dh.schema),
		run: func(v jsonvalue.Value) Result[R] {
			ra := da.Apply(v)
			if ra.failed {
				return Err[R](ra.msg)
			}
			rb := db.Apply(v)
			if rb.failed {
				return Err[R](rb.msg)
			}
			rc := dc.Apply(v)
			if rc.failed {
				return Err[R](rc.msg)
			}
			rd := dd.Apply(v)
			if rd.failed {
				return Err[R](rd.msg)
			}
			re := de.Apply(v)
			if re.failed {
				return Err[R](re.msg)
			}
			rf := df.Apply(v)
			if rf.failed {
				return Err[R](rf.msg)
			}
			rg := dg.Apply(v)
			if rg.failed {
				return Err[R](rg.msg)
			}
			rh := dh.Apply(v)
			if rh.failed {
				return Err[R](rh.msg)
			}
			return guard(func() Result[R] { return Ok(f(ra.v, rb.v, rc.v, rd.v, re.v, rf.v, rg.v, rh.v)) })
		},
	}
}

// Collect applies decoders to the same input in order and yields their
// results, stopping at the first failure. It is MapN for a count only known
// at run time.
func Collect[T any](decoders ...Decoder[T]) Decoder[[]T] {
	decoders = append([]Decoder[T](nil), decoders...)
	parts := make([]schema.Schema, len(decoders))
	for i, d := range decoders {
		parts[i] = d.schema
	}
	return Decoder[[]T]{
		schema: intersect(parts...),
		run: func(v jsonvalue.Value) Result[[]T] {
			out := make([]T, 0, len(decoders))
			for _, d := range decoders {
				r := d.Apply(v)
				if r.failed {
					return Err[[]T](r.msg)
				}
				out = append(out, r.v)
			}
			return Ok(out)
		},
	}
}
