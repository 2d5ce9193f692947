// Command clipper runs the clip-extraction pipeline against a single
// media file: transcription, LLM-driven segment selection, rendering,
// and the final clip index, printed as JSON on completion.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bobarin/clipper/internal/analyzer"
	"github.com/bobarin/clipper/internal/config"
	"github.com/bobarin/clipper/internal/driver"
	"github.com/bobarin/clipper/internal/facedetect"
	"github.com/bobarin/clipper/internal/render"
	"github.com/bobarin/clipper/internal/subtitle"
	"github.com/bobarin/clipper/internal/transcriber"
	"github.com/bobarin/clipper/internal/worker"
)

// transcriberAdapter bridges transcriber.Transcriber's concrete Result
// type to the driver package's TranscribeResult, without giving the
// driver package (or the transcriber package) a direct dependency on
// each other.
type transcriberAdapter struct {
	inner *transcriber.Transcriber
}

func (a transcriberAdapter) Transcribe(ctx context.Context, mediaPath string) (*driver.TranscribeResult, error) {
	result, err := a.inner.Transcribe(ctx, mediaPath)
	if err != nil {
		return nil, err
	}
	return &driver.TranscribeResult{Words: result.Words, Lines: result.Lines, Text: result.Text}, nil
}

func main() {
	flag.Parse()
	mediaPath := flag.Arg(0)
	if mediaPath == "" {
		log.Fatalf("usage: clipper <media-file>")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("clipper: failed to load config: %v", err)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		log.Fatalf("clipper: failed to create output dir: %v", err)
	}

	sampler := buildSampler(cfg)

	parallelism := 1
	if cfg.RenderParallel {
		parallelism = cfg.RenderWorkers
	}

	d := &driver.Driver{
		Transcriber: transcriberAdapter{inner: transcriber.New(cfg.WhisperModel, "en")},
		Analyzer:    analyzer.NewClient(cfg.LLMBaseURL, cfg.LLMModel, cfg.LLMTestTimeout, cfg.LLMTimeout, cfg.LLMRetryBackoff, cfg.LLMMaxRetries),
		Render:      render.NewService(cfg.TempDir, cfg.EncodeTimeout),
		Detector:    sampler,
		Fonts:       subtitle.FaceLoader{ConfiguredPath: cfg.FontPath, SystemPaths: defaultSystemFontPaths()},
		Workers:     worker.New(parallelism),
		MaxClips:    cfg.MaxClips,
		OutputDir:   cfg.OutputDir,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("clipper: starting pipeline for %q", mediaPath)
	outcome, err := d.Run(ctx, driver.Request{MediaPath: mediaPath})
	if err != nil {
		log.Fatalf("clipper: pipeline failed: %v", err)
	}

	stage, message := outcome.Status.Snapshot()
	log.Printf("clipper: request %s finished with status %q %s (%d clips)", outcome.RequestID, stage, message, len(outcome.Clips))

	encoded, err := json.MarshalIndent(outcome.Clips, "", "  ")
	if err != nil {
		log.Fatalf("clipper: failed to encode clip index: %v", err)
	}
	fmt.Println(string(encoded))
}

// buildSampler constructs the primary-then-fallback face detector pair.
// A model/cascade that fails to load is logged and left nil: the
// detector pipeline degrades to "no detections" (frame-centre crop)
// rather than aborting startup, since face-centred cropping is a
// quality enhancement, not a hard requirement (§4.4).
func buildSampler(cfg *config.Config) *facedetect.Sampler {
	var primary facedetect.Detector
	if dnn, err := facedetect.NewDNNDetector(cfg.FaceModelPath, cfg.FaceConfigPath); err != nil {
		log.Printf("clipper: DNN face detector unavailable, falling back to Haar only: %v", err)
	} else {
		primary = dnn
	}

	var fallback facedetect.Detector
	if haar, err := facedetect.NewHaarDetector(cfg.HaarCascadePath); err != nil {
		log.Printf("clipper: Haar cascade unavailable: %v", err)
	} else {
		fallback = haar
	}

	if primary == nil {
		primary = fallback
		fallback = nil
	}
	if primary == nil {
		log.Printf("clipper: no face detector available, clips will crop to frame centre")
		primary = noopDetector{}
	}

	return &facedetect.Sampler{Primary: primary, Fallback: fallback}
}

// noopDetector finds nothing, used when neither the DNN model nor the
// Haar cascade could be loaded — face-centred cropping degrades to a
// frame-centre crop rather than blocking startup.
type noopDetector struct{}

func (noopDetector) Detect(facedetect.Frame) ([]facedetect.Detection, error) {
	return nil, nil
}

func defaultSystemFontPaths() []string {
	return []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
		"/System/Library/Fonts/Helvetica.ttc",
	}
}
