// Package driver wires the five pipeline stages — Transcriber, Analyzer,
// Validator/Expander, Renderer, Index — together for one request. It is
// the one package allowed to import all of them; no stage package
// imports this package.
package driver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/bobarin/clipper/internal/analysis"
	"github.com/bobarin/clipper/internal/analyzer"
	"github.com/bobarin/clipper/internal/facedetect"
	"github.com/bobarin/clipper/internal/pipeline"
	"github.com/bobarin/clipper/internal/render"
	"github.com/bobarin/clipper/internal/subtitle"
	"github.com/bobarin/clipper/internal/transcript"
	"github.com/bobarin/clipper/internal/worker"
)

// Transcriber is the subset of transcriber.Transcriber the driver needs,
// kept as an interface so the transcription stage can be faked in tests
// that don't want to shell out to ffmpeg/whisper.cpp.
type Transcriber interface {
	Transcribe(ctx context.Context, mediaPath string) (*TranscribeResult, error)
}

// TranscribeResult mirrors transcriber.Result's shape; callers adapt the
// concrete type at the construction site (see cmd/clipper).
type TranscribeResult struct {
	Words []transcript.Word
	Lines []transcript.Line
	Text  string
}

// Driver owns the request's Status and the media/cache resources for
// the request's lifetime (§ "Ownership").
type Driver struct {
	Transcriber Transcriber
	Analyzer    *analyzer.Client
	Render      *render.Service
	Detector    *facedetect.Sampler
	Fonts       subtitle.FaceLoader
	Workers     *worker.Pool

	MaxClips  int
	OutputDir string
}

// Request is one clip-extraction job.
type Request struct {
	MediaPath string
}

// Outcome is the final result of a request: the clip index and the
// request's terminal status.
type Outcome struct {
	RequestID uuid.UUID
	Clips     []pipeline.Clip
	Summary   string
	Status    *pipeline.Status
}

// Run drives the full pipeline: transcription, analysis, rendering, and
// indexing, in that order, updating status as it advances. A fatal error
// at any stage sets the status to error and returns immediately,
// discarding any partial outputs belonging to that stage and later ones
// (§7's "Policy").
func (d *Driver) Run(ctx context.Context, req Request) (*Outcome, error) {
	requestID := uuid.New()
	status := pipeline.NewStatus()
	outcome := &Outcome{RequestID: requestID, Status: status}
	log.Printf("driver: starting request %s for %q", requestID, req.MediaPath)

	status.Set(pipeline.StageTranscribing)
	transcribed, err := d.Transcriber.Transcribe(ctx, req.MediaPath)
	if err != nil {
		return d.fail(status, "transcriber", err)
	}

	status.Set(pipeline.StageAnalyzing)
	candidates, summary, keyTopics, err := d.analyze(ctx, transcribed)
	if err != nil {
		return d.fail(status, "analyzer", err)
	}
	outcome.Summary = summary

	result := analysis.Process(transcribed.Lines, candidates, summary, keyTopics)
	if len(result.Segments) == 0 {
		log.Printf("driver: no segments survived validation/expansion for %q", req.MediaPath)
	}

	status.Set(pipeline.StageRendering)
	sourceDurationS, sourceW, sourceH, err := d.Render.Probe(ctx, req.MediaPath)
	if err != nil {
		return d.fail(status, "render.probe", pipeline.Wrap(pipeline.KindMediaUnreadable, "render.probe", err))
	}

	outputPaths, renderErrs := d.renderAll(ctx, req.MediaPath, sourceDurationS, sourceW, sourceH, transcribed.Words, result.Segments)
	for _, rerr := range renderErrs {
		if rerr != nil && errKind(rerr).Fatal() {
			return d.fail(status, "render", rerr)
		}
	}

	outcome.Clips = pipeline.BuildIndex(result.Segments, outputPaths, renderErrs)
	status.Set(pipeline.StageCompleted)
	return outcome, nil
}

func (d *Driver) fail(status *pipeline.Status, stage string, err error) (*Outcome, error) {
	status.SetError(err.Error())
	log.Printf("driver: %s stage failed: %v", stage, err)
	return nil, err
}

func errKind(err error) pipeline.Kind {
	var pe *pipeline.Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return pipeline.KindCancelled
}

// analyze runs the Analyzer preflight, builds the prompt from the
// cached lines, runs the main generation request, and recovers the
// structured response.
func (d *Driver) analyze(ctx context.Context, transcribed *TranscribeResult) ([]analysis.CandidateSegment, string, []string, error) {
	if err := d.Analyzer.Preflight(ctx); err != nil {
		return nil, "", nil, err
	}

	prompt, err := analyzer.BuildPrompt(transcript.FormatLines(transcribed.Lines), d.MaxClips)
	if err != nil {
		return nil, "", nil, pipeline.Wrap(pipeline.KindLLMBadResponse, "analyzer.build_prompt", err)
	}

	raw, err := d.Analyzer.Generate(ctx, prompt)
	if err != nil {
		return nil, "", nil, err
	}

	resp, ok := analyzer.ExtractJSON(raw)
	if !ok {
		return nil, "", nil, pipeline.Wrap(pipeline.KindLLMBadResponse, "analyzer.extract_json", fmt.Errorf("could not recover structured JSON from model output"))
	}

	return analyzer.ToCandidateSegments(resp.MostRelevantSegments), resp.Summary, resp.KeyTopics, nil
}

// renderAll renders every accepted segment through the worker pool,
// returning parallel output-path and per-clip-error slices indexed the
// same way as segments.
func (d *Driver) renderAll(ctx context.Context, mediaPath string, sourceDurationS float64, sourceW, sourceH int, words []transcript.Word, segments []analysis.AcceptedSegment) ([]string, []error) {
	outputPaths := make([]string, len(segments))
	renderErrs := make([]error, len(segments))

	results, err := d.Workers.RenderAll(ctx, segments, func(ctx context.Context, segment analysis.AcceptedSegment, index int) (string, error) {
		return d.renderOne(ctx, mediaPath, sourceDurationS, sourceW, sourceH, words, segment, index)
	})
	if err != nil {
		for i := range renderErrs {
			renderErrs[i] = err
		}
		return outputPaths, renderErrs
	}

	for _, r := range results {
		outputPaths[r.Index] = r.OutputPath
		renderErrs[r.Index] = r.Err
	}
	return outputPaths, renderErrs
}

func (d *Driver) renderOne(ctx context.Context, mediaPath string, sourceDurationS float64, sourceW, sourceH int, words []transcript.Word, segment analysis.AcceptedSegment, index int) (string, error) {
	startS, endS, ok := render.ClampSegment(float64(segment.StartS), float64(segment.EndS), sourceDurationS)
	if !ok {
		return "", pipeline.Wrap(pipeline.KindClipRenderFailed, "render.clamp_segment", fmt.Errorf("segment %d starts at or beyond source duration", index+1))
	}
	durationS := endS - startS

	cropX, cropY, side, err := d.Render.ComputeCrop(ctx, mediaPath, startS, durationS, sourceW, sourceH, d.Detector)
	if err != nil {
		return "", pipeline.Wrap(pipeline.KindClipRenderFailed, "render.compute_crop", err)
	}

	relWords := subtitle.SelectWords(words, segment.StartS*1000, segment.EndS*1000)
	rasterizer := subtitle.Rasterizer{Faces: d.Fonts, CanvasW: render.CanvasWidth}
	overlays, err := subtitle.BuildOverlays(relWords, rasterizer, render.CanvasWidth, d.Render.TempDir)
	if err != nil {
		return "", pipeline.Wrap(pipeline.KindClipRenderFailed, "render.build_overlays", err)
	}
	defer func() {
		paths := make([]string, len(overlays))
		for i, ov := range overlays {
			paths[i] = ov.Path
		}
		d.Render.Cleanup(paths...)
	}()

	outputPath := filepath.Join(d.OutputDir, fmt.Sprintf("clip_%02d.mp4", index+1))
	err = d.Render.RenderClip(ctx, render.EncodeParams{
		SourcePath:  mediaPath,
		StartS:      startS,
		EndS:        endS,
		CropX:       cropX,
		CropY:       cropY,
		CropSide:    side,
		Overlays:    overlays,
		OutputPath:  outputPath,
		FaststartOK: true,
	})
	if err != nil {
		return "", err
	}
	return outputPath, nil
}
