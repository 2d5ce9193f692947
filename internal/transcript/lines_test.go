package transcript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func word(text string, startMS, endMS int64) Word {
	return Word{Text: text, StartMS: startMS, EndMS: endMS, Confidence: 1.0}
}

func TestDeriveLinesFlushesOnSentenceTerminator(t *testing.T) {
	words := []Word{
		word("Hello", 0, 200),
		word("world.", 200, 500),
		word("Next", 600, 800),
		word("line", 800, 1000),
	}
	lines := DeriveLines(words)
	require.Len(t, lines, 2)
	require.Equal(t, "Hello world.", lines[0].Text)
	require.Equal(t, int64(0), lines[0].StartMS)
	require.Equal(t, int64(500), lines[0].EndMS)
	require.Equal(t, "Next line", lines[1].Text)
}

func TestDeriveLinesFlushesAtMaxWords(t *testing.T) {
	var words []Word
	for i := 0; i < MaxWordsPerLine; i++ {
		words = append(words, word("w", int64(i*100), int64(i*100+100)))
	}
	words = append(words, word("overflow", 900, 1000))

	lines := DeriveLines(words)
	require.Len(t, lines, 2)
	require.Equal(t, MaxWordsPerLine, len(strings.Fields(lines[0].Text)))
	require.Equal(t, "overflow", lines[1].Text)
}

func TestDeriveLinesFlushesTrailingPartialGroup(t *testing.T) {
	words := []Word{
		word("trailing", 0, 300),
		word("partial", 300, 600),
	}
	lines := DeriveLines(words)
	require.Len(t, lines, 1)
	require.Equal(t, int64(600), lines[0].EndMS)
}

func TestFormatLinesProducesBracketedRanges(t *testing.T) {
	lines := []Line{{StartMS: 0, EndMS: 1500, Text: "hi there"}}
	got := FormatLines(lines)
	require.Equal(t, "[00:00 - 00:01] hi there", got)
}
