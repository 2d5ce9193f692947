package transcript

import "strings"

func isSentenceTerminator(word string) bool {
	if word == "" {
		return false
	}
	switch word[len(word)-1] {
	case '.', '!', '?':
		return true
	default:
		return false
	}
}

// DeriveLines groups a word stream into Lines of up to MaxWordsPerLine
// words, flushing early on a sentence-terminating word. Words missing
// timing are expected to have already been dropped by the caller (the
// Transcriber never hands DeriveLines an incomplete Word).
//
// A trailing partial group is flushed using the group's own last word as
// its end time, mirroring the source transcript's own accumulation loop.
func DeriveLines(words []Word) []Line {
	var lines []Line
	var group []Word

	flush := func(endMS int64) {
		if len(group) == 0 {
			return
		}
		texts := make([]string, len(group))
		for i, w := range group {
			texts[i] = w.Text
		}
		lines = append(lines, Line{
			StartMS: group[0].StartMS,
			EndMS:   endMS,
			Text:    strings.Join(texts, " "),
		})
		group = nil
	}

	for _, w := range words {
		group = append(group, w)
		if len(group) >= MaxWordsPerLine || isSentenceTerminator(w.Text) {
			flush(w.EndMS)
		}
	}
	if len(group) > 0 {
		flush(group[len(group)-1].EndMS)
	}

	return lines
}

// FormatLines renders the derived lines as the newline-joined
// "[MM:SS - MM:SS] text" sequence the Analyzer consumes.
func FormatLines(lines []Line) string {
	rendered := make([]string, len(lines))
	for i, l := range lines {
		rendered[i] = "[" + FormatTimestamp(float64(l.StartMS)/1000) + " - " + FormatTimestamp(float64(l.EndMS)/1000) + "] " + l.Text
	}
	return strings.Join(rendered, "\n")
}
