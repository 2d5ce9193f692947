package subtitle

import (
	"fmt"
	"path/filepath"
)

// Overlay is one rasterised subtitle PNG ready for the encoder's timed
// overlay filter: enable='between(t,StartS,EndS)'.
type Overlay struct {
	Path   string
	Height int
	StartS float64
	EndS   float64
}

// BuildOverlays groups relative words, rasterises each group, writes it
// to tempDir, and returns the resulting Overlays in time order. A group
// whose rasterisation fails (both label and caption methods) is skipped
// rather than aborting the whole clip, matching the original's
// per-subtitle try/continue behaviour.
func BuildOverlays(words []RelativeWord, r Rasterizer, canvasW int, tempDir string) ([]Overlay, error) {
	groups := GroupWords(words)
	fontSizePx := FontSizeForCanvas(canvasW)

	overlays := make([]Overlay, 0, len(groups))
	for i, group := range groups {
		img, err := r.Render(group, fontSizePx)
		if err != nil {
			continue
		}
		path := filepath.Join(tempDir, fmt.Sprintf("subtitle_%04d.png", i))
		if err := WritePNG(img, path); err != nil {
			return nil, err
		}
		overlays = append(overlays, Overlay{
			Path:   path,
			Height: img.Bounds().Dy(),
			StartS: group.StartS,
			EndS:   group.EndS,
		})
	}
	return overlays, nil
}
