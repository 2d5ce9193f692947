package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bobarin/clipper/internal/analysis"
)

func TestBuildIndexAssignsOneBasedIDsInOrder(t *testing.T) {
	segments := []analysis.AcceptedSegment{
		{CandidateSegment: analysis.CandidateSegment{StartTime: "00:00", EndTime: "00:30", Text: "first", RelevanceScore: 0.9}, StartS: 0, EndS: 30, DurationS: 30},
		{CandidateSegment: analysis.CandidateSegment{StartTime: "00:30", EndTime: "01:05", Text: "second", RelevanceScore: 0.8}, StartS: 30, EndS: 65, DurationS: 35},
	}
	outputs := []string{"/out/clip_01.mp4", "/out/clip_02.mp4"}
	errs := []error{nil, nil}

	clips := BuildIndex(segments, outputs, errs)

	require.Len(t, clips, 2)
	require.Equal(t, 1, clips[0].ClipID)
	require.Equal(t, "clip_01.mp4", clips[0].Filename)
	require.Equal(t, "00:00", clips[0].StartTime)
	require.Equal(t, "00:30", clips[0].EndTime)
	require.Equal(t, 2, clips[1].ClipID)
	require.Equal(t, "second", clips[1].Text)
}

func TestBuildIndexSkipsFailedRenders(t *testing.T) {
	segments := []analysis.AcceptedSegment{
		{CandidateSegment: analysis.CandidateSegment{Text: "first"}, StartS: 0, EndS: 30, DurationS: 30},
		{CandidateSegment: analysis.CandidateSegment{Text: "second"}, StartS: 30, EndS: 65, DurationS: 35},
		{CandidateSegment: analysis.CandidateSegment{Text: "third"}, StartS: 65, EndS: 100, DurationS: 35},
	}
	outputs := []string{"/out/clip_01.mp4", "", "/out/clip_03.mp4"}
	errs := []error{nil, errors.New("render failed"), nil}

	clips := BuildIndex(segments, outputs, errs)

	require.Len(t, clips, 2)
	require.Equal(t, "first", clips[0].Text)
	require.Equal(t, 1, clips[0].ClipID)
	require.Equal(t, "third", clips[1].Text)
	require.Equal(t, 2, clips[1].ClipID)
}

func TestBuildIndexReturnsEmptyForNoSegments(t *testing.T) {
	clips := BuildIndex(nil, nil, nil)
	require.Empty(t, clips)
}
