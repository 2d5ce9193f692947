package render

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/bobarin/clipper/internal/pipeline"
	"github.com/bobarin/clipper/internal/subtitle"
)

// Service drives ffmpeg/ffprobe subprocesses for probing and encoding.
type Service struct {
	TempDir       string
	EncodeTimeout time.Duration
}

func NewService(tempDir string, encodeTimeout time.Duration) *Service {
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		panic(fmt.Sprintf("render: failed to create temp dir: %v", err))
	}
	return &Service{TempDir: tempDir, EncodeTimeout: encodeTimeout}
}

// Probe reports a media file's duration (seconds) and video dimensions
// via ffprobe.
func (s *Service) Probe(ctx context.Context, path string) (durationS float64, width, height int, err error) {
	args := []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height:format=duration",
		"-of", "default=noprint_wrappers=1",
		path,
	}
	cmd := exec.CommandContext(ctx, "ffprobe", args...)
	out, err := cmd.Output()
	if err != nil {
		return 0, 0, 0, fmt.Errorf("render: ffprobe failed for %q: %w", path, err)
	}

	for _, line := range strings.Split(string(out), "\n") {
		kv := strings.SplitN(strings.TrimSpace(line), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "width":
			width, _ = strconv.Atoi(kv[1])
		case "height":
			height, _ = strconv.Atoi(kv[1])
		case "duration":
			durationS, _ = strconv.ParseFloat(kv[1], 64)
		}
	}
	if durationS <= 0 {
		return 0, 0, 0, fmt.Errorf("render: could not determine duration for %q", path)
	}
	return durationS, width, height, nil
}

// ExtractFrame decodes a single raw RGB24 frame at atS seconds into the
// returned facedetect.Frame-compatible byte slice, for use by the
// sampling step ahead of face detection.
func (s *Service) ExtractFrame(ctx context.Context, sourcePath string, atS float64, width, height int) ([]byte, error) {
	args := []string{
		"-ss", fmt.Sprintf("%.3f", atS),
		"-i", sourcePath,
		"-frames:v", "1",
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-",
	}
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("render: frame extraction at %.3fs failed: %w", atS, err)
	}
	expected := width * height * 3
	if len(out) < expected {
		return nil, fmt.Errorf("render: frame extraction at %.3fs returned %d bytes, wanted %d", atS, len(out), expected)
	}
	return out[:expected], nil
}

// EncodeParams collects everything RenderClip needs to produce one
// output file from the source subclip.
type EncodeParams struct {
	SourcePath   string
	StartS, EndS float64
	CropX, CropY int
	CropSide     int
	Overlays     []subtitle.Overlay
	OutputPath   string
	FaststartOK  bool
}

// RenderClip cuts [StartS, EndS) out of SourcePath, composes the three
// layers (§4.4), and encodes to OutputPath with the fixed H.264 baseline
// settings. Renderer failures are per-clip: callers are expected to
// catch and log, not propagate to sibling clips.
func (s *Service) RenderClip(ctx context.Context, p EncodeParams) error {
	encodeCtx, cancel := context.WithTimeout(ctx, s.EncodeTimeout)
	defer cancel()

	filterComplex, finalLabel := BuildFilterComplex(FilterGraphParams{
		CropX: p.CropX, CropY: p.CropY, CropSide: p.CropSide, Overlays: p.Overlays,
	})

	args := []string{
		"-ss", fmt.Sprintf("%.3f", p.StartS),
		"-to", fmt.Sprintf("%.3f", p.EndS),
		"-i", p.SourcePath,
	}
	for _, ov := range p.Overlays {
		args = append(args, "-i", ov.Path)
	}
	args = append(args,
		"-filter_complex", filterComplex,
		"-map", "["+finalLabel+"]",
		"-map", "0:a?",
		"-c:v", "libx264",
		"-preset", "medium",
		"-crf", "20",
		"-pix_fmt", "yuv420p",
		"-profile:v", "main",
		"-level", "4.1",
		"-c:a", "aac",
		"-b:a", "256k",
	)
	if p.FaststartOK {
		args = append(args, "-movflags", "+faststart")
	}
	args = append(args, "-y", p.OutputPath)

	cmd := exec.Command("ffmpeg", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	log.Printf("render: encoding clip %q (%.2fs-%.2fs, %d overlays)", p.OutputPath, p.StartS, p.EndS, len(p.Overlays))

	if err := runCancellable(encodeCtx, cmd); err != nil {
		if encodeCtx.Err() != nil {
			os.Remove(p.OutputPath)
			if ctx.Err() != nil {
				return pipeline.Wrap(pipeline.KindCancelled, "render.encode", ctx.Err())
			}
			return pipeline.Wrap(pipeline.KindClipRenderFailed, "render.encode", fmt.Errorf("ffmpeg encode exceeded %s: %w", s.EncodeTimeout, encodeCtx.Err()))
		}
		return pipeline.Wrap(pipeline.KindClipRenderFailed, "render.encode", fmt.Errorf("ffmpeg encode failed: %w", err))
	}
	return nil
}

// Cleanup removes temporary files such as subtitle overlay PNGs.
func (s *Service) Cleanup(paths ...string) {
	for _, path := range paths {
		os.Remove(path)
	}
}
