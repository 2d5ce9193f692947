package pipeline

import (
	"path/filepath"

	"github.com/bobarin/clipper/internal/analysis"
)

// Clip is one entry in the returned clip index (§4 "Clip Index").
type Clip struct {
	ClipID         int     `json:"clip_id"`
	Filename       string  `json:"filename"`
	Path           string  `json:"path"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	DurationS      float64 `json:"duration_s"`
	Text           string  `json:"text"`
	RelevanceScore float64 `json:"relevance_score"`
	Reasoning      string  `json:"reasoning"`
}

// BuildIndex converts the renderer's per-segment outcomes into the
// ordered clip index, skipping any segment whose render failed
// (§7's "Local errors never abort the request; they accumulate into
// the returned index").
func BuildIndex(segments []analysis.AcceptedSegment, outputPaths []string, renderErrs []error) []Clip {
	var clips []Clip
	clipID := 1
	for i, seg := range segments {
		if renderErrs[i] != nil || outputPaths[i] == "" {
			continue
		}
		clips = append(clips, Clip{
			ClipID:         clipID,
			Filename:       filepath.Base(outputPaths[i]),
			Path:           outputPaths[i],
			StartTime:      seg.StartTime,
			EndTime:        seg.EndTime,
			DurationS:      float64(seg.DurationS),
			Text:           seg.Text,
			RelevanceScore: seg.RelevanceScore,
			Reasoning:      seg.Reasoning,
		})
		clipID++
	}
	return clips
}
