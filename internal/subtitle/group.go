// Package subtitle derives time-anchored word-group captions from the
// cached word stream for a clip's time window and rasterises them to
// standalone RGBA images the Renderer composites as timed overlays.
package subtitle

import (
	"github.com/bobarin/clipper/internal/transcript"
)

// WordsPerGroup is the fixed grouping size (§4.5): every subtitle spans
// exactly this many words, except possibly the final one.
const WordsPerGroup = 3

// RelativeWord is a word translated into clip-relative seconds and
// clamped to the clip's own duration.
type RelativeWord struct {
	Text       string
	StartS     float64
	EndS       float64
	Confidence float64
}

// Group is one subtitle: the joined text of WordsPerGroup consecutive
// words and the clip-relative time window it's shown for.
type Group struct {
	Text   string
	StartS float64
	EndS   float64
}

// SelectWords finds every cached word intersecting [clipStartMS,
// clipEndMS) and translates it to clip-relative seconds, clamped to
// [0, clip duration]. Words that end up with zero or negative duration
// after clamping are dropped.
func SelectWords(words []transcript.Word, clipStartMS, clipEndMS int64) []RelativeWord {
	clipDurationS := float64(clipEndMS-clipStartMS) / 1000.0

	var relevant []RelativeWord
	for _, w := range words {
		if w.StartMS >= clipEndMS || w.EndMS <= clipStartMS {
			continue
		}
		startS := float64(w.StartMS-clipStartMS) / 1000.0
		endS := float64(w.EndMS-clipStartMS) / 1000.0
		if startS < 0 {
			startS = 0
		}
		if endS > clipDurationS {
			endS = clipDurationS
		}
		if endS <= startS {
			continue
		}
		relevant = append(relevant, RelativeWord{
			Text:       w.Text,
			StartS:     startS,
			EndS:       endS,
			Confidence: w.Confidence,
		})
	}
	return relevant
}

// GroupWords partitions relevant words into contiguous groups of
// WordsPerGroup, joining each group's text with a space and spanning
// [first_word.start, last_word.end]. Groups whose resulting duration is
// <= 0 are dropped (can't happen given SelectWords' own clamping, but
// preserved as a defensive check per §4.5's explicit rule).
func GroupWords(words []RelativeWord) []Group {
	var groups []Group
	for i := 0; i < len(words); i += WordsPerGroup {
		end := i + WordsPerGroup
		if end > len(words) {
			end = len(words)
		}
		chunk := words[i:end]

		text := chunk[0].Text
		for _, w := range chunk[1:] {
			text += " " + w.Text
		}

		start := chunk[0].StartS
		finish := chunk[len(chunk)-1].EndS
		if finish <= start {
			continue
		}
		groups = append(groups, Group{Text: text, StartS: start, EndS: finish})
	}
	return groups
}
