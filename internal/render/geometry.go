// Package render builds the per-clip composition (blurred background,
// face-centred square foreground, subtitle overlays) and drives ffmpeg
// to encode it, per §4.4.
package render

import "math"

const (
	CanvasWidth  = 1080
	CanvasHeight = 1920

	blurKernel = 35

	foregroundSide = 1080
	foregroundY    = (CanvasHeight - foregroundSide) / 2 // 420
)

// RoundDownEven truncates n to the nearest even integer not greater
// than n.
func RoundDownEven(n int) int {
	if n%2 != 0 {
		return n - 1
	}
	return n
}

// SquareSide is the foreground crop's side length: the shorter source
// dimension, rounded down to even.
func SquareSide(sourceW, sourceH int) int {
	side := sourceW
	if sourceH < side {
		side = sourceH
	}
	return RoundDownEven(side)
}

// CropOrigin clamps a desired crop centre to a valid top-left origin
// for a `side`-sized square within a `sourceW`x`sourceH` frame, rounding
// the result down to even integers per §4.4.
func CropOrigin(centreX, centreY float64, side, sourceW, sourceH int) (x, y int) {
	rawX := int(math.Round(centreX)) - side/2
	rawY := int(math.Round(centreY)) - side/2

	maxX := sourceW - side
	maxY := sourceH - side

	x = clampInt(rawX, 0, maxX)
	y = clampInt(rawY, 0, maxY)

	return RoundDownEven(x), RoundDownEven(y)
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// BlurKernel is the gaussian blur kernel size for the background layer:
// always odd (§4.4's `k = max(3, ksize | 1)`).
func BlurKernel() int {
	k := blurKernel
	if k%2 == 0 {
		k |= 1
	}
	if k < 3 {
		k = 3
	}
	return k
}

// ForegroundPosition is the foreground square's fixed placement on the
// 1080x1920 canvas.
func ForegroundPosition() (x, y int) {
	return 0, foregroundY
}

// SubtitleAnchorY is the vertical anchor for subtitle overlays: the
// bottom of the foreground square minus 80px.
func SubtitleAnchorY() int {
	return foregroundY + foregroundSide - 80
}
