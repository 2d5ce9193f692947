package render

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSampleTimestampsCountMatchesCeilDurationOverHalf(t *testing.T) {
	timestamps := SampleTimestamps(40)
	require.NotEmpty(t, timestamps)
	// ceil(40/0.5) = 80 samples; the midpoint 20.0 is already one of them.
	require.Len(t, timestamps, 80)
	for _, ts := range timestamps {
		require.GreaterOrEqual(t, ts, 0.0)
		require.LessOrEqual(t, ts, 40.0)
	}
	// Midpoint must be present.
	found := false
	for _, ts := range timestamps {
		if ts == 20.0 {
			found = true
		}
	}
	require.True(t, found)
}

func TestSampleTimestampsZeroDuration(t *testing.T) {
	require.Empty(t, SampleTimestamps(0))
}

func TestSampleTimestampsSortedAndDeduped(t *testing.T) {
	timestamps := SampleTimestamps(1.0)
	for i := 1; i < len(timestamps); i++ {
		require.Greater(t, timestamps[i], timestamps[i-1])
	}
}
