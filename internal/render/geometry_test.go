package render

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundDownEven(t *testing.T) {
	require.Equal(t, 10, RoundDownEven(10))
	require.Equal(t, 10, RoundDownEven(11))
	require.Equal(t, 0, RoundDownEven(0))
}

func TestSquareSidePicksShorterDimensionEven(t *testing.T) {
	require.Equal(t, 720, SquareSide(1280, 721))
	require.Equal(t, 1080, SquareSide(1080, 1920))
}

func TestCropOriginClampsToBounds(t *testing.T) {
	x, y := CropOrigin(-500, -500, 200, 1000, 1000)
	require.Equal(t, 0, x)
	require.Equal(t, 0, y)

	x, y = CropOrigin(5000, 5000, 200, 1000, 1000)
	require.Equal(t, 800, x)
	require.Equal(t, 800, y)
}

func TestCropOriginRoundsToEven(t *testing.T) {
	x, y := CropOrigin(101, 101, 199, 1000, 1000)
	require.Equal(t, 0, x%2)
	require.Equal(t, 0, y%2)
}

func TestBlurKernelIsOdd(t *testing.T) {
	require.Equal(t, 1, BlurKernel()%2)
}

func TestSubtitleAnchorYMatchesSpecFormula(t *testing.T) {
	require.Equal(t, 420+1080-80, SubtitleAnchorY())
}

func TestClampSegmentSkipsWhenStartBeyondSource(t *testing.T) {
	_, _, ok := ClampSegment(100, 130, 90)
	require.False(t, ok)
}

func TestClampSegmentClampsOverrunEnd(t *testing.T) {
	start, end, ok := ClampSegment(10, 130, 90)
	require.True(t, ok)
	require.Equal(t, 10.0, start)
	require.Equal(t, 90.0, end)
}
