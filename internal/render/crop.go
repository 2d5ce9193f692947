package render

import (
	"context"

	"github.com/bobarin/clipper/internal/facedetect"
)

// ComputeCrop samples frames across the segment, runs the detector
// Sampler across them, and derives the face-centred square crop origin,
// falling back to frame centre when no detections survive (§4.4).
func (s *Service) ComputeCrop(ctx context.Context, sourcePath string, startS, durationS float64, sourceW, sourceH int, sampler *facedetect.Sampler) (cropX, cropY, side int, err error) {
	side = SquareSide(sourceW, sourceH)

	offsets := SampleTimestamps(durationS)
	frames := make([]facedetect.Frame, 0, len(offsets))
	for _, offset := range offsets {
		pixels, extractErr := s.ExtractFrame(ctx, sourcePath, startS+offset, sourceW, sourceH)
		if extractErr != nil {
			continue
		}
		frames = append(frames, facedetect.Frame{Width: sourceW, Height: sourceH, Pixels: pixels})
	}

	centreX, centreY := float64(sourceW)/2, float64(sourceH)/2

	if len(frames) > 0 {
		detections, detectErr := sampler.DetectAll(frames)
		if detectErr == nil {
			if cx, cy, ok := facedetect.WeightedCentroid(detections); ok {
				centreX, centreY = cx, cy
			}
		}
	}

	x, y := CropOrigin(centreX, centreY, side, sourceW, sourceH)
	return x, y, side, nil
}
