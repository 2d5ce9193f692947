package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractJSONDirectParse(t *testing.T) {
	resp, ok := ExtractJSON(`{"most_relevant_segments": [{"start_time":"00:00"}], "summary": "s"}`)
	require.True(t, ok)
	require.Len(t, resp.MostRelevantSegments, 1)
	require.Equal(t, "s", resp.Summary)
}

func TestExtractJSONFencedCodeBlock(t *testing.T) {
	text := "Sure, here you go:\n```json\n{\"most_relevant_segments\": [{\"start_time\":\"00:10\"}]}\n```\nhope that helps"
	resp, ok := ExtractJSON(text)
	require.True(t, ok)
	require.Len(t, resp.MostRelevantSegments, 1)
}

func TestExtractJSONBalancedBraceScan(t *testing.T) {
	text := "The result is: {\"most_relevant_segments\": [{\"start_time\":\"00:20\"}]} -- done."
	resp, ok := ExtractJSON(text)
	require.True(t, ok)
	require.Len(t, resp.MostRelevantSegments, 1)
}

func TestExtractJSONAllStrategiesFail(t *testing.T) {
	_, ok := ExtractJSON("Sure, here you go:\n```\nnot-json\n```")
	require.False(t, ok)
}

func TestExtractJSONEmptyInput(t *testing.T) {
	_, ok := ExtractJSON("")
	require.False(t, ok)
}

func TestExtractJSONAlternativeTopLevelKey(t *testing.T) {
	resp, ok := ExtractJSON(`{"segments": [{"start_time":"00:00"},{"start_time":"00:30"}]}`)
	require.True(t, ok)
	require.Len(t, resp.MostRelevantSegments, 2)
}

func TestBuildPromptSubstitutesPlaceholders(t *testing.T) {
	prompt, err := BuildPrompt("[00:00 - 00:05] hello", 5)
	require.NoError(t, err)
	require.Contains(t, prompt, "[00:00 - 00:05] hello")
	require.Contains(t, prompt, "identify the 5 most compelling")
	require.Contains(t, prompt, `"most_relevant_segments"`)
}
