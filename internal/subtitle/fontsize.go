package subtitle

import "math"

// baseFontSize mirrors the original's font_size=24 default; canvasWidth
// is the target render width (1080 for the standard 9:16 canvas).
const (
	baseFontSize    = 24
	scaleMultiplier = 1.5
	referenceWidth  = 720
	minFontSizePx   = 28
	maxFontSizePx   = 64
)

// FontSizeForCanvas implements §4.5's clamp(round(base * canvas_width /
// 720 * 1.5), 28, 64).
func FontSizeForCanvas(canvasWidth int) int {
	raw := float64(baseFontSize) * (float64(canvasWidth) / referenceWidth) * scaleMultiplier
	size := int(math.Round(raw))
	if size < minFontSizePx {
		return minFontSizePx
	}
	if size > maxFontSizePx {
		return maxFontSizePx
	}
	return size
}
