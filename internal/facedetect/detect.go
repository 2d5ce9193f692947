// Package facedetect implements the face-centred cropping algorithm's
// detection half: primary-then-fallback sampling across a segment,
// area-ratio filtering, outlier rejection, and the weighted centroid.
// The concrete detector may be swapped (§9 "Optional detectors") as
// long as the (cx, cy, area, confidence) tuple and area-ratio filter
// are preserved.
package facedetect

import (
	"math"
	"sort"
)

// Detection is one face observation: its centre, bounding-box area, and
// the detector's confidence.
type Detection struct {
	CX, CY     int
	Area       int
	Confidence float64
}

// Detector finds faces in a single RGB frame, returning zero or more
// Detections with frame-space coordinates.
type Detector interface {
	Detect(frame Frame) ([]Detection, error)
}

// Frame is a decoded RGB frame handed to a Detector.
type Frame struct {
	Width, Height int
	Pixels        []byte // row-major RGB24
}

const (
	minRelativeArea = 0.005
	maxRelativeArea = 0.9
)

// Sampler drives a primary detector, falling back to a secondary one
// only on frames where the primary finds nothing, across a set of
// frames supplied by the caller (the Renderer owns decoding and frame
// sampling — see §4.4's "up to ceil(duration/0.5) frames plus the
// midpoint").
type Sampler struct {
	Primary  Detector
	Fallback Detector
}

// DetectAll runs primary-then-fallback detection across every supplied
// frame, discards detections outside the area-ratio band, and — once
// all frames have been processed — applies the ±2σ outlier filter when
// three or more detections survive.
func (s *Sampler) DetectAll(frames []Frame) ([]Detection, error) {
	var all []Detection

	for _, frame := range frames {
		detected, err := s.Primary.Detect(frame)
		if err != nil || len(detected) == 0 {
			if s.Fallback != nil {
				detected, err = s.Fallback.Detect(frame)
			}
		}
		if err != nil {
			continue
		}

		frameArea := frame.Width * frame.Height
		for _, d := range detected {
			if frameArea == 0 {
				continue
			}
			relative := float64(d.Area) / float64(frameArea)
			if relative > minRelativeArea && relative < maxRelativeArea {
				all = append(all, d)
			}
		}
	}

	if len(all) > 2 {
		all = filterOutliers(all)
	}
	return all, nil
}

// filterOutliers keeps only detections within ±2σ of the median x and
// median y, falling back to the unfiltered set if nothing survives.
func filterOutliers(detections []Detection) []Detection {
	xs := make([]float64, len(detections))
	ys := make([]float64, len(detections))
	var sumX, sumY float64
	for i, d := range detections {
		xs[i] = float64(d.CX)
		ys[i] = float64(d.CY)
		sumX += xs[i]
		sumY += ys[i]
	}

	n := float64(len(detections))
	medianX := median(xs)
	medianY := median(ys)
	stdX := stddev(xs, sumX/n)
	stdY := stddev(ys, sumY/n)

	var filtered []Detection
	for _, d := range detections {
		if math.Abs(float64(d.CX)-medianX) <= 2*stdX && math.Abs(float64(d.CY)-medianY) <= 2*stdY {
			filtered = append(filtered, d)
		}
	}
	if len(filtered) == 0 {
		return detections
	}
	return filtered
}

func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func stddev(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

// WeightedCentroid computes the area-and-confidence weighted centre of
// a set of detections. Returns ok=false if the total weight is zero
// (caller should fall back to frame centre).
func WeightedCentroid(detections []Detection) (cx, cy float64, ok bool) {
	var totalWeight, sumX, sumY float64
	for _, d := range detections {
		weight := float64(d.Area) * d.Confidence
		totalWeight += weight
		sumX += float64(d.CX) * weight
		sumY += float64(d.CY) * weight
	}
	if totalWeight <= 0 {
		return 0, 0, false
	}
	return sumX / totalWeight, sumY / totalWeight, true
}
