package subtitle

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FaceLoader resolves a configured font path to a font.Face, falling
// back through "named system font, then default sans-serif" (§4.5) down
// to the embedded gofont/goregular outline font, and finally to the
// fixed-width basicfont bitmap face if no outline font parses at all.
type FaceLoader struct {
	ConfiguredPath string
	SystemPaths    []string // candidate named-system-font paths to try next
}

func (l FaceLoader) Load(sizePx int) font.Face {
	candidates := make([]string, 0, len(l.SystemPaths)+1)
	if l.ConfiguredPath != "" {
		candidates = append(candidates, l.ConfiguredPath)
	}
	candidates = append(candidates, l.SystemPaths...)

	for _, path := range candidates {
		raw, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		parsed, err := opentype.Parse(raw)
		if err != nil {
			continue
		}
		face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
			Size: float64(sizePx),
			DPI:  72,
		})
		if err == nil {
			return face
		}
	}

	parsed, err := opentype.Parse(goregular.TTF)
	if err == nil {
		face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
			Size: float64(sizePx),
			DPI:  72,
		})
		if err == nil {
			return face
		}
	}

	return basicfont.Face7x13
}

// Rasterizer draws Groups to standalone RGBA images, one per group, for
// the encoder to composite as timed overlays.
type Rasterizer struct {
	Faces      FaceLoader
	CanvasW    int
	TextColor  color.Color
}

const lineHeightFactor = 1.4

// RenderLabel draws text on a single centred line. It returns an error
// if the text's drawn advance is zero or wider than the canvas (the
// caller falls back to RenderCaption per §4.5's label-then-caption rule).
func (r Rasterizer) RenderLabel(text string, fontSizePx int) (*image.RGBA, error) {
	face := r.Faces.Load(fontSizePx)
	defer closeFace(face)

	advance := font.MeasureString(face, text)
	width := advance.Ceil()
	if width <= 0 {
		return nil, fmt.Errorf("subtitle: zero-width label for %q", text)
	}
	if width > r.CanvasW {
		return nil, fmt.Errorf("subtitle: label %q exceeds canvas width (%dpx > %dpx)", text, width, r.CanvasW)
	}

	metrics := face.Metrics()
	height := metrics.Height.Ceil()
	img := image.NewRGBA(image.Rect(0, 0, r.CanvasW, height))

	originX := (r.CanvasW - width) / 2
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(r.colorOrDefault()),
		Face: face,
		Dot:  fixed.P(originX, metrics.Ascent.Ceil()),
	}
	drawer.DrawString(text)
	return img, nil
}

// RenderCaption re-wraps text across multiple centred lines so the
// widest line fits within the canvas width.
func (r Rasterizer) RenderCaption(text string, fontSizePx int) (*image.RGBA, error) {
	face := r.Faces.Load(fontSizePx)
	defer closeFace(face)

	lines := wrapToWidth(face, text, r.CanvasW)
	if len(lines) == 0 {
		return nil, fmt.Errorf("subtitle: caption produced no lines for %q", text)
	}

	metrics := face.Metrics()
	lineHeight := int(float64(metrics.Height.Ceil()) * lineHeightFactor)
	totalHeight := lineHeight * len(lines)
	img := image.NewRGBA(image.Rect(0, 0, r.CanvasW, totalHeight))

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(r.colorOrDefault()),
		Face: face,
	}
	for i, line := range lines {
		width := font.MeasureString(face, line).Ceil()
		originX := (r.CanvasW - width) / 2
		baselineY := i*lineHeight + metrics.Ascent.Ceil()
		drawer.Dot = fixed.P(originX, baselineY)
		drawer.DrawString(line)
	}
	return img, nil
}

func wrapToWidth(face font.Face, text string, maxWidth int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		candidate := current + " " + w
		if font.MeasureString(face, candidate).Ceil() > maxWidth {
			lines = append(lines, current)
			current = w
			continue
		}
		current = candidate
	}
	lines = append(lines, current)
	return lines
}

func (r Rasterizer) colorOrDefault() color.Color {
	if r.TextColor != nil {
		return r.TextColor
	}
	return color.White
}

func closeFace(face font.Face) {
	if closer, ok := face.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
}

// Render chooses the label method first, falling back to caption on any
// rendering error, per §4.5.
func (r Rasterizer) Render(group Group, fontSizePx int) (*image.RGBA, error) {
	img, err := r.RenderLabel(group.Text, fontSizePx)
	if err == nil {
		return img, nil
	}
	return r.RenderCaption(group.Text, fontSizePx)
}

// WritePNG draws a fully transparent background behind img and writes
// it as a PNG to path. The Renderer supplies one such path per group as
// a timed overlay input.
func WritePNG(img *image.RGBA, path string) error {
	canvas := image.NewRGBA(img.Bounds())
	draw.Draw(canvas, canvas.Bounds(), image.Transparent, image.Point{}, draw.Src)
	draw.Draw(canvas, canvas.Bounds(), img, image.Point{}, draw.Over)
	return encodePNG(canvas, path)
}
