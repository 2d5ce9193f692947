// Package transcriber turns a media file into a word-level transcript:
// ffmpeg audio extraction, whisper.cpp inference via CGO bindings, and
// assembly into the shared transcript cache (§4.1).
package transcriber

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	whisperlib "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"

	"github.com/bobarin/clipper/internal/pipeline"
	"github.com/bobarin/clipper/internal/transcript"
)

// modelCache loads the configured whisper.cpp model once per process and
// shares it across every transcription request, matching the "global
// model cache" discipline used elsewhere in this codebase for expensive
// one-shot resources (§9).
var (
	modelOnce   sync.Once
	modelErr    error
	loadedPath  string
	sharedModel whisperlib.Model
)

func loadModel(modelPath string) (whisperlib.Model, error) {
	modelOnce.Do(func() {
		sharedModel, modelErr = whisperlib.New(modelPath)
		loadedPath = modelPath
	})
	if modelErr != nil {
		return nil, fmt.Errorf("transcriber: load model %q: %w", modelPath, modelErr)
	}
	if loadedPath != modelPath {
		log.Printf("transcriber: warning: model already loaded from %q, ignoring requested %q", loadedPath, modelPath)
	}
	return sharedModel, nil
}

// Transcriber drives the whisper.cpp model against a media file's
// extracted PCM audio and assembles the word stream.
type Transcriber struct {
	ModelPath string
	Language  string
}

func New(modelPath, language string) *Transcriber {
	if language == "" {
		language = "en"
	}
	return &Transcriber{ModelPath: modelPath, Language: language}
}

// Result is the Transcriber's output: the ordered word stream, the
// derived lines, and the full joined text.
type Result struct {
	Words []transcript.Word
	Lines []transcript.Line
	Text  string
}

// Transcribe extracts the media file's audio, runs whisper.cpp
// inference with token-level timestamps, assembles the word stream and
// derived lines, and writes the transcript cache alongside mediaPath.
func (t *Transcriber) Transcribe(ctx context.Context, mediaPath string) (*Result, error) {
	pcm, err := extractPCM(ctx, mediaPath)
	if err != nil {
		return nil, err
	}
	samples := pcmToFloat32Mono(pcm)

	model, err := loadModel(t.ModelPath)
	if err != nil {
		return nil, pipeline.Wrap(pipeline.KindTranscriptionUnavailable, "transcriber.load_model", err)
	}

	// Each context is created fresh per call: whisper.cpp contexts are not
	// safe for concurrent reuse, while the underlying model is.
	wctx, err := model.NewContext()
	if err != nil {
		return nil, pipeline.Wrap(pipeline.KindTranscriptionUnavailable, "transcriber.new_context", err)
	}

	if err := wctx.SetLanguage(t.Language); err != nil {
		log.Printf("transcriber: failed to set language %q, using model default: %v", t.Language, err)
	}
	wctx.SetSplitOnWord(true)
	wctx.SetTokenTimestamps(true)

	if err := wctx.Process(samples, nil, nil, nil); err != nil {
		return nil, pipeline.Wrap(pipeline.KindTranscriptionUnavailable, "transcriber.process", err)
	}

	words, err := collectWords(wctx)
	if err != nil {
		return nil, pipeline.Wrap(pipeline.KindTranscriptionUnavailable, "transcriber.collect_words", err)
	}
	if len(words) == 0 {
		return nil, pipeline.Wrap(pipeline.KindTranscriptionUnavailable, "transcriber.collect_words", errors.New("no words produced by transcription"))
	}

	lines := transcript.DeriveLines(words)

	var textParts []string
	for _, w := range words {
		textParts = append(textParts, w.Text)
	}
	fullText := strings.Join(textParts, " ")

	cache := &transcript.Cache{
		Words:    words,
		Text:     fullText,
		Language: t.Language,
	}
	if err := transcript.Write(mediaPath, cache); err != nil {
		log.Printf("transcriber: failed to write transcript cache for %q: %v", mediaPath, err)
	}

	return &Result{Words: words, Lines: lines, Text: fullText}, nil
}

// collectWords drains every segment from wctx and flattens its
// word-level tokens (empty and special tokens, and tokens whose end is
// not after their start, are skipped)
// into the cache's Word representation. Timestamps are reported in
// whisper.cpp's 10ms ticks via Token.Start/Token.End (time.Duration);
// converted here to milliseconds.
func collectWords(wctx whisperlib.Context) ([]transcript.Word, error) {
	var words []transcript.Word

	for {
		segment, err := wctx.NextSegment()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read segment: %w", err)
		}

		for _, tok := range segment.Tokens {
			text := strings.TrimSpace(tok.Text)
			if text == "" || isSpecialToken(text) {
				continue
			}
			startMS := tok.Start.Milliseconds()
			endMS := tok.End.Milliseconds()
			if endMS <= startMS {
				continue
			}
			words = append(words, transcript.Word{
				Text:       text,
				StartMS:    startMS,
				EndMS:      endMS,
				Confidence: float64(tok.P),
			})
		}
	}

	return words, nil
}

func isSpecialToken(text string) bool {
	return strings.HasPrefix(text, "[_") || strings.HasPrefix(text, "<|")
}
