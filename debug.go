package jdec

import (
	"context"
	"log/slog"

	"github.com/reoring/jdec/jsonvalue"
)

// Debug logs every application of d at debug level under label. A nil
// logger uses slog.Default. The input is only rendered when the level is
// enabled.
func Debug[T any](logger *slog.Logger, label string, d Decoder[T]) Decoder[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return DebugWith(func(v jsonvalue.Value, r Result[T]) {
		ctx := context.Background()
		if !logger.Enabled(ctx, slog.LevelDebug) {
			return
		}
		attrs := []slog.Attr{slog.String("label", label), slog.String("input", jsonvalue.Render(v)), slog.Bool("ok", r.IsOk())}
		if r.IsErr() {
			attrs = append(attrs, slog.String("err", r.Message()))
		}
		logger.LogAttrs(ctx, slog.LevelDebug, "decode", attrs...)
	}, d)
}

// DebugWith calls observe with the input and result of every application of
// d. The schema is unchanged.
func DebugWith[T any](observe func(jsonvalue.Value, Result[T]), d Decoder[T]) Decoder[T] {
	return Decoder[T]{schema: d.schema, run: func(v jsonvalue.Value) Result[T] {
		r := d.Apply(v)
		observe(v, r)
		return r
	}}
}
