// Package transcript holds the word-level transcript cache shared by the
// Analyzer and the Clip Renderer: it is written once by the Transcriber
// and read-only thereafter.
package transcript

import "encoding/json"

// Word is one recognised token with millisecond timing, as produced by
// the speech model.
type Word struct {
	Text       string  `json:"text"`
	StartMS    int64   `json:"start"`
	EndMS      int64   `json:"end"`
	Confidence float64 `json:"confidence"`
}

// Line is a derived group of up to MaxWordsPerLine consecutive Words, or
// fewer if the group ends in a sentence terminator.
type Line struct {
	StartMS int64
	EndMS   int64
	Text    string
}

// MaxWordsPerLine bounds how many words accumulate into one Line before
// it is flushed regardless of punctuation.
const MaxWordsPerLine = 8

// Cache is the single source of truth for timing and text, shared
// read-only by the Analyzer and Renderer once the Transcriber has
// written it.
type Cache struct {
	Words    []Word            `json:"words"`
	Text     string            `json:"text"`
	Segments []json.RawMessage `json:"segments"`
	Language string            `json:"language"`
}
