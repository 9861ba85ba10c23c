package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/reoring/jdec"
	"github.com/reoring/jdec/jsonvalue"
	"github.com/reoring/jdec/schema"
)

func TestTimeRFC3339_Basic(t *testing.T) {
	in := "2025-01-01T00:00:00Z"
	got, err := TimeRFC3339().Decode(jsonvalue.String(in))
	require.NoError(t, err)
	require.True(t, got.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, in, FormatRFC3339(got))
}

func TestTimeRFC3339_Fraction(t *testing.T) {
	got, err := TimeRFC3339().Decode(jsonvalue.String("2025-01-01T09:00:00.120+09:00"))
	require.NoError(t, err)
	require.Equal(t, "2025-01-01T00:00:00.12Z", FormatRFC3339(got))
}

func TestTimeRFC3339_Invalid(t *testing.T) {
	r := TimeRFC3339().Apply(jsonvalue.String("yesterday"))
	require.True(t, r.IsErr())
	require.Equal(t, `"yesterday" is not a valid RFC3339 time`, r.Message())

	r = TimeRFC3339().Apply(jsonvalue.Number("1"))
	require.Equal(t, "expected String, got 1", r.Message())
}

func TestTime_InField(t *testing.T) {
	d := jdec.Field("at", Time(time.Kitchen))
	r := jdec.DecodeString(`{"at":"noon"}`, d)
	require.Equal(t, `field 'at': "noon" is not a valid time in layout "3:04PM"`, r.Message())

	got, err := jdec.DecodeString(`{"at":"3:04PM"}`, d).Unwrap()
	require.NoError(t, err)
	require.Equal(t, 15, got.Hour())
}

func TestDate(t *testing.T) {
	got, err := Date().Decode(jsonvalue.String("2025-01-31"))
	require.NoError(t, err)
	require.Equal(t, time.January, got.Month())
	require.True(t, Date().Apply(jsonvalue.String("2025-02-31")).IsErr())
}

func TestUnixSeconds(t *testing.T) {
	got, err := UnixSeconds().Decode(jsonvalue.Number("86400"))
	require.NoError(t, err)
	require.Equal(t, "1970-01-02T00:00:00Z", FormatRFC3339(got))
	require.Equal(t, schema.Int(), UnixSeconds().Schema())
}
