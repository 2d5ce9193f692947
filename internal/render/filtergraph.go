package render

import (
	"fmt"
	"strings"

	"github.com/bobarin/clipper/internal/subtitle"
)

// FilterGraphParams describes one clip's composition inputs. Input 0 is
// always the source subclip; inputs 1..N are the subtitle overlay PNGs
// in Overlays order.
type FilterGraphParams struct {
	CropX, CropY, CropSide int
	Overlays               []subtitle.Overlay
}

// BuildFilterComplex returns the -filter_complex expression and the
// name of the final labelled output stream, implementing §4.4's three
// layers: a blurred, resized background; a face-centred square
// foreground carrying audio; and timed subtitle overlays on top.
func BuildFilterComplex(p FilterGraphParams) (filterComplex string, finalLabel string) {
	var parts []string

	// Gaussian sigma derived from the kernel size the way OpenCV does for
	// sigma=0: 0.3*((k-1)*0.5-1)+0.8.
	sigma := 0.3*(float64(BlurKernel()-1)*0.5-1) + 0.8
	parts = append(parts, fmt.Sprintf(
		"[0:v]scale=%d:%d,gblur=sigma=%.2f[bg]",
		CanvasWidth, CanvasHeight, sigma,
	))

	fgX, fgY := ForegroundPosition()
	parts = append(parts, fmt.Sprintf(
		"[0:v]crop=%d:%d:%d:%d,scale=%d:%d[fg]",
		p.CropSide, p.CropSide, p.CropX, p.CropY, foregroundSide, foregroundSide,
	))

	parts = append(parts, fmt.Sprintf("[bg][fg]overlay=%d:%d[composed0]", fgX, fgY))

	label := "composed0"
	for i, ov := range p.Overlays {
		nextLabel := fmt.Sprintf("composed%d", i+1)
		overlayY := SubtitleAnchorY() - ov.Height/2
		parts = append(parts, fmt.Sprintf(
			"[%s][%d:v]overlay=0:%d:enable='between(t,%.3f,%.3f)'[%s]",
			label, i+1, overlayY, ov.StartS, ov.EndS, nextLabel,
		))
		label = nextLabel
	}

	return strings.Join(parts, ";"), label
}
