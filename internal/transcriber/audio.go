package transcriber

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/bobarin/clipper/internal/pipeline"
)

const whisperSampleRate = 16000

// extractPCM demuxes and resamples a media file's audio track to 16kHz
// mono signed 16-bit PCM on stdout via ffmpeg (§4.1's "audio extraction"
// supplement), with the same exec.CommandContext and wrapped-error style
// used for probing and frame extraction in internal/render.
func extractPCM(ctx context.Context, mediaPath string) ([]byte, error) {
	args := []string{
		"-i", mediaPath,
		"-vn",
		"-ac", "1",
		"-ar", fmt.Sprintf("%d", whisperSampleRate),
		"-f", "s16le",
		"-",
	}
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	out, err := cmd.Output()
	if err != nil {
		return nil, pipeline.Wrap(pipeline.KindMediaUnreadable, "transcriber.extract_pcm", fmt.Errorf("ffmpeg audio extraction failed for %q: %w", mediaPath, err))
	}
	if len(out) == 0 {
		return nil, pipeline.Wrap(pipeline.KindMediaUnreadable, "transcriber.extract_pcm", fmt.Errorf("ffmpeg produced no audio samples for %q", mediaPath))
	}
	return out, nil
}
