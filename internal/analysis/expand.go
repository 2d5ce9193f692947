package analysis

import (
	"fmt"
	"log"
	"strings"

	"github.com/bobarin/clipper/internal/transcript"
)

// ExpandSegments regrows each rejected candidate by stitching together
// cached Lines, starting at the first Line at or after the candidate's
// own start (with 1s slack for timestamp drift) and appending successive
// Lines until the duration clears MinSegmentDuration. A candidate that
// cannot reach a valid duration is dropped.
//
// Only called when first-pass validation leaves fewer than MinSegments
// accepted candidates (§4.3).
func ExpandSegments(lines []transcript.Line, candidates []CandidateSegment) []CandidateSegment {
	if len(lines) == 0 {
		log.Printf("analysis: expansion aborted: no cached lines available")
		return nil
	}

	var expanded []CandidateSegment

	for i, c := range candidates {
		startS, err := transcript.ParseTimestamp(c.StartTime)
		if err != nil {
			continue
		}

		startIdx := -1
		for idx, l := range lines {
			if l.StartMS/1000 >= startS-1 {
				startIdx = idx
				break
			}
		}
		if startIdx == -1 {
			continue
		}

		combined := []string{lines[startIdx].Text}
		newStartS := lines[startIdx].StartMS / 1000
		newEndS := lines[startIdx].EndMS / 1000

		j := startIdx + 1
		for (newEndS-newStartS) < MinSegmentDuration && j < len(lines) {
			combined = append(combined, lines[j].Text)
			newEndS = lines[j].EndMS / 1000
			if (newEndS - newStartS) > MaxSegmentDuration {
				break
			}
			j++
		}

		newDuration := newEndS - newStartS
		if newDuration < MinSegmentDuration || newDuration > MaxSegmentDuration+expansionToleranceSlack {
			log.Printf("analysis: expansion %d unable to reach valid duration (%ds)", i+1, newDuration)
			continue
		}

		text := strings.TrimSpace(c.Text + " " + strings.Join(combined, " "))
		expandedSeg := CandidateSegment{
			StartTime:      fmt.Sprintf("%02d:%02d", newStartS/60, newStartS%60),
			EndTime:        fmt.Sprintf("%02d:%02d", newEndS/60, newEndS%60),
			Text:           text,
			RelevanceScore: c.RelevanceScore,
			Reasoning:      c.Reasoning,
		}
		log.Printf("analysis: expansion %d grew to %s-%s (%ds)", i+1, expandedSeg.StartTime, expandedSeg.EndTime, newDuration)
		expanded = append(expanded, expandedSeg)
	}

	return expanded
}
