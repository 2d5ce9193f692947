package subtitle

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

func encodePNG(img *image.RGBA, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("subtitle: create overlay file %q: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("subtitle: encode overlay png %q: %w", path, err)
	}
	return nil
}
