package codec

import (
	"strconv"
	"time"

	"github.com/reoring/jdec"
)

// Time decodes a string in the given time.Parse layout.
func Time(layout string) jdec.Decoder[time.Time] {
	return parsed("time in layout "+strconv.Quote(layout), func(s string) (time.Time, error) {
		return time.Parse(layout, s)
	})
}

// TimeRFC3339 decodes an RFC 3339 timestamp. Fractional seconds are
// optional.
func TimeRFC3339() jdec.Decoder[time.Time] {
	return parsed("RFC3339 time", parseRFC3339)
}

// FormatRFC3339 renders t in the form TimeRFC3339 accepts, normalised to UTC
// with trailing zeros of the fraction trimmed.
func FormatRFC3339(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// Date decodes a calendar date such as 2025-01-31.
func Date() jdec.Decoder[time.Time] {
	return parsed("date", func(s string) (time.Time, error) {
		return time.Parse(time.DateOnly, s)
	})
}

// Duration decodes a Go duration string such as "1h30m".
func Duration() jdec.Decoder[time.Duration] {
	return parsed("duration", time.ParseDuration)
}

// UnixSeconds decodes an integral number of seconds since the Unix epoch.
func UnixSeconds() jdec.Decoder[time.Time] {
	return jdec.Map(jdec.Int64(), func(sec int64) time.Time { return time.Unix(sec, 0).UTC() })
}

func parseRFC3339(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}
