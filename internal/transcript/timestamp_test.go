package transcript

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTimestampRoundTripUnderAnHour(t *testing.T) {
	for s := int64(0); s < 3600; s += 37 {
		ts := FormatTimestamp(float64(s))
		got, err := ParseTimestamp(ts)
		require.NoError(t, err)
		require.Equal(t, s, got, "round trip for %d seconds via %q", s, ts)
	}
}

func TestTimestampRoundTripOverAnHour(t *testing.T) {
	// FormatTimestamp never wraps minutes into an "HH:MM:SS" form, so the
	// round trip stays exact even past one hour; ParseTimestamp still
	// accepts the unbounded "MM:SS" shape it produces.
	cases := []int64{3600, 3661, 7325, 86399}
	for _, s := range cases {
		ts := FormatTimestamp(float64(s))
		got, err := ParseTimestamp(ts)
		require.NoError(t, err)
		require.Equal(t, s, got, "round trip for %d seconds via %q", s, ts)
	}
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	for _, bad := range []string{"", "abc", "1:2:3:4", "-1:00", "00:-5"} {
		_, err := ParseTimestamp(bad)
		require.Error(t, err, "expected %q to fail parsing", bad)
	}
}

func TestParseTimestampTruncatesFraction(t *testing.T) {
	got, err := ParseTimestamp("01:02.75")
	require.NoError(t, err)
	require.Equal(t, int64(62), got)
}
