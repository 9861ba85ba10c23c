// Package codec provides decoders for values carried in JSON strings:
// timestamps, durations, URLs and anything implementing
// encoding.TextUnmarshaler. Each decoder keeps the string schema of the
// underlying jdec.String.
package codec

import (
	"encoding"
	"net/url"
	"strconv"

	"github.com/reoring/jdec"
	"github.com/reoring/jdec/i18n"
)

// parsed decodes a string with parse, reporting failures as an invalid
// format.
func parsed[T any](format string, parse func(string) (T, error)) jdec.Decoder[T] {
	return jdec.MapTryFunc(jdec.String(), func(s string) (T, error) {
		v, err := parse(s)
		if err != nil {
			return v, &formatError{got: s, format: format}
		}
		return v, nil
	}, func(err error) string { return err.Error() })
}

type formatError struct {
	got    string
	format string
}

func (e *formatError) Error() string {
	return i18n.T(i18n.InvalidFormat, map[string]string{"got": strconv.Quote(e.got), "format": e.format})
}

// URL decodes an absolute URL.
func URL() jdec.Decoder[*url.URL] {
	return parsed("absolute URL", func(s string) (*url.URL, error) {
		u, err := url.Parse(s)
		if err != nil {
			return nil, err
		}
		if !u.IsAbs() {
			return nil, strconv.ErrSyntax
		}
		return u, nil
	})
}

// Text decodes a string through T's UnmarshalText, for types such as
// netip.Addr or big.Int.
func Text[T any, PT interface {
	*T
	encoding.TextUnmarshaler
}](format string) jdec.Decoder[T] {
	return parsed(format, func(s string) (T, error) {
		var v T
		err := PT(&v).UnmarshalText([]byte(s))
		return v, err
	})
}
