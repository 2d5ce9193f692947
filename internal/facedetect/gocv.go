package facedetect

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// DNNDetector is the primary detector, backed by gocv's OpenCV bindings
// (standing in for the original's MediaPipe face detector — §9 allows
// the concrete detector to be replaced provided the detection tuple and
// area-ratio filter are preserved). It expects a pre-loaded SSD-style
// face model (e.g. res10_300x300_ssd) loaded once per process, the same
// "global model cache" discipline as the Transcriber's speech model
// (§9's one-shot construct guidance).
type DNNDetector struct {
	net             gocv.Net
	confidenceFloor float32
}

func NewDNNDetector(modelPath, configPath string) (*DNNDetector, error) {
	net := gocv.ReadNet(modelPath, configPath)
	if net.Empty() {
		return nil, fmt.Errorf("facedetect: failed to load DNN face model from %q", modelPath)
	}
	return &DNNDetector{net: net, confidenceFloor: 0.5}, nil
}

func (d *DNNDetector) Close() error {
	return d.net.Close()
}

func (d *DNNDetector) Detect(frame Frame) ([]Detection, error) {
	mat, err := frameToMat(frame)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	blob := gocv.BlobFromImage(mat, 1.0, image.Pt(300, 300), gocv.NewScalar(104, 177, 123, 0), false, false)
	defer blob.Close()

	d.net.SetInput(blob, "")
	out := d.net.Forward("")
	defer out.Close()

	reshaped := out.Reshape(1, out.Total()/7)
	defer reshaped.Close()

	var detections []Detection
	for i := 0; i < reshaped.Rows(); i++ {
		confidence := reshaped.GetFloatAt(i, 2)
		if confidence < d.confidenceFloor {
			continue
		}
		x1 := int(reshaped.GetFloatAt(i, 3) * float32(frame.Width))
		y1 := int(reshaped.GetFloatAt(i, 4) * float32(frame.Height))
		x2 := int(reshaped.GetFloatAt(i, 5) * float32(frame.Width))
		y2 := int(reshaped.GetFloatAt(i, 6) * float32(frame.Height))
		w, h := x2-x1, y2-y1
		if w <= 30 || h <= 30 {
			continue
		}
		detections = append(detections, Detection{
			CX:         x1 + w/2,
			CY:         y1 + h/2,
			Area:       w * h,
			Confidence: float64(confidence),
		})
	}
	return detections, nil
}

func frameToMat(frame Frame) (gocv.Mat, error) {
	mat, err := gocv.NewMatFromBytes(frame.Height, frame.Width, gocv.MatTypeCV8UC3, frame.Pixels)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("facedetect: build mat from frame: %w", err)
	}
	return mat, nil
}

// HaarDetector is the fallback detector used only on frames where the
// primary detector finds nothing, mirroring the original's
// mediapipe-then-Haar-cascade order and parameters (scaleFactor=1.05,
// minNeighbors=3, minSize=(40,40)).
type HaarDetector struct {
	classifier gocv.CascadeClassifier
}

func NewHaarDetector(cascadePath string) (*HaarDetector, error) {
	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(cascadePath) {
		classifier.Close()
		return nil, fmt.Errorf("facedetect: failed to load Haar cascade from %q", cascadePath)
	}
	return &HaarDetector{classifier: classifier}, nil
}

func (h *HaarDetector) Close() error {
	return h.classifier.Close()
}

func (h *HaarDetector) Detect(frame Frame) ([]Detection, error) {
	mat, err := frameToMat(frame)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorRGBToGray)

	rects := h.classifier.DetectMultiScaleWithParams(gray, 1.05, 3, 0, image.Pt(40, 40), image.Pt(0, 0))

	frameArea := float64(frame.Width * frame.Height)
	var detections []Detection
	for _, r := range rects {
		area := r.Dx() * r.Dy()
		relativeSize := float64(area) / frameArea
		confidence := 0.3 + relativeSize*2
		if confidence > 0.9 {
			confidence = 0.9
		}
		detections = append(detections, Detection{
			CX:         r.Min.X + r.Dx()/2,
			CY:         r.Min.Y + r.Dy()/2,
			Area:       area,
			Confidence: confidence,
		})
	}
	return detections, nil
}
