package analysis

import (
	"sort"

	"github.com/bobarin/clipper/internal/transcript"
)

// segmentKey identifies a segment by its formatted timing window, the
// same dedup key the original uses.
type segmentKey struct {
	start, end string
}

// dedupSortTruncate merges accepted with any newly expanded segments,
// deduplicates by (start_time, end_time), sorts by relevance_score
// descending, and truncates to MaxSegments.
func dedupSortTruncate(accepted []AcceptedSegment, maxSegments int) []AcceptedSegment {
	seen := make(map[segmentKey]bool, len(accepted))
	out := make([]AcceptedSegment, 0, len(accepted))
	for _, s := range accepted {
		key := segmentKey{s.StartTime, s.EndTime}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RelevanceScore > out[j].RelevanceScore
	})

	if len(out) > maxSegments {
		out = out[:maxSegments]
	}
	return out
}

// Process runs validation, and — only if fewer than MinSegments survive
// first-pass validation — the expansion fallback, then merges, dedups,
// sorts, and truncates the result into a final Analysis.
func Process(lines []transcript.Line, candidates []CandidateSegment, summary string, keyTopics []string) Analysis {
	accepted := ValidateSegments(candidates)

	if len(accepted) < MinSegments {
		expandedCandidates := ExpandSegments(lines, candidates)
		revalidated := ValidateSegments(expandedCandidates)
		accepted = append(accepted, revalidated...)
	}

	accepted = dedupSortTruncate(accepted, MaxSegments)

	return Analysis{
		Segments:  accepted,
		Summary:   summary,
		KeyTopics: keyTopics,
	}
}
