package facedetect

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeDetector struct {
	byFrame map[int][]Detection
	calls   []int
}

func (f *fakeDetector) Detect(frame Frame) ([]Detection, error) {
	idx := frame.Width // frames are tagged distinctly by width in these tests
	f.calls = append(f.calls, idx)
	return f.byFrame[idx], nil
}

func TestWeightedCentroidBasic(t *testing.T) {
	cx, cy, ok := WeightedCentroid([]Detection{
		{CX: 100, CY: 100, Area: 10, Confidence: 1.0},
		{CX: 200, CY: 200, Area: 10, Confidence: 1.0},
	})
	require.True(t, ok)
	require.InDelta(t, 150, cx, 0.001)
	require.InDelta(t, 150, cy, 0.001)
}

func TestWeightedCentroidNoDetectionsFallsBack(t *testing.T) {
	_, _, ok := WeightedCentroid(nil)
	require.False(t, ok)
}

func TestDetectAllDropsOutOfRangeArea(t *testing.T) {
	frame := Frame{Width: 1000, Height: 1000} // area 1,000,000
	primary := &fakeDetector{byFrame: map[int][]Detection{
		1000: {
			{CX: 10, CY: 10, Area: 100, Confidence: 0.9},      // relative 0.0001, too small
			{CX: 500, CY: 500, Area: 50000, Confidence: 0.9},  // relative 0.05, kept
			{CX: 900, CY: 900, Area: 950000, Confidence: 0.9}, // relative 0.95, too large
		},
	}}
	sampler := &Sampler{Primary: primary}

	detections, err := sampler.DetectAll([]Frame{frame})
	require.NoError(t, err)
	require.Len(t, detections, 1)
	require.Equal(t, 50000, detections[0].Area)
}

func TestDetectAllFallsBackOnEmptyPrimary(t *testing.T) {
	frame := Frame{Width: 200, Height: 200}
	primary := &fakeDetector{byFrame: map[int][]Detection{}}
	fallback := &fakeDetector{byFrame: map[int][]Detection{
		200: {{CX: 100, CY: 100, Area: 2000, Confidence: 0.6}},
	}}
	sampler := &Sampler{Primary: primary, Fallback: fallback}

	detections, err := sampler.DetectAll([]Frame{frame})
	require.NoError(t, err)
	require.Len(t, detections, 1)
	require.Len(t, fallback.calls, 1)
}

func TestFilterOutliersRemovesFarPoints(t *testing.T) {
	detections := []Detection{
		{CX: 100, CY: 100, Area: 1000, Confidence: 1},
		{CX: 102, CY: 98, Area: 1000, Confidence: 1},
		{CX: 101, CY: 101, Area: 1000, Confidence: 1},
		{CX: 900, CY: 900, Area: 1000, Confidence: 1}, // far outlier
	}
	filtered := filterOutliers(detections)
	require.Len(t, filtered, 3)
	for _, d := range filtered {
		require.Less(t, d.CX, 200)
	}
}

func TestFilterOutliersNeverReturnsEmpty(t *testing.T) {
	// Skewed case: two coincident points and one distant point. The
	// distant point lies outside 2σ of the median and is dropped, but the
	// result must never be empty (filterOutliers returns the unfiltered
	// set if no detection survives).
	detections := []Detection{
		{CX: 0, CY: 0, Area: 1, Confidence: 1},
		{CX: 0, CY: 0, Area: 1, Confidence: 1},
		{CX: 100, CY: 100, Area: 1, Confidence: 1},
	}
	filtered := filterOutliers(detections)
	require.NotEmpty(t, filtered)
}
