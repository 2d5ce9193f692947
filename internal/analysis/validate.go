package analysis

import (
	"log"
	"strings"

	"github.com/bobarin/clipper/internal/transcript"
)

// ValidateSegments applies the reject rules in order and returns only
// the candidates that survive. A rejected candidate is logged and
// skipped — validation failures never abort the pipeline (§7).
func ValidateSegments(candidates []CandidateSegment) []AcceptedSegment {
	var accepted []AcceptedSegment

	for i, c := range candidates {
		if strings.TrimSpace(c.Text) == "" || len(strings.Fields(c.Text)) < 3 {
			log.Printf("analysis: segment %d skipped: text too short", i+1)
			continue
		}

		startS, err := transcript.ParseTimestamp(c.StartTime)
		if err != nil {
			log.Printf("analysis: segment %d skipped: invalid start_time %q: %v", i+1, c.StartTime, err)
			continue
		}
		endS, err := transcript.ParseTimestamp(c.EndTime)
		if err != nil {
			log.Printf("analysis: segment %d skipped: invalid end_time %q: %v", i+1, c.EndTime, err)
			continue
		}

		duration := endS - startS
		if duration < MinSegmentDuration || duration > MaxSegmentDuration {
			log.Printf("analysis: segment %d skipped: duration %ds out of range [%d,%d]", i+1, duration, MinSegmentDuration, MaxSegmentDuration)
			continue
		}

		if c.RelevanceScore < 0.0 || c.RelevanceScore > 1.0 {
			log.Printf("analysis: segment %d skipped: invalid score %v", i+1, c.RelevanceScore)
			continue
		}

		accepted = append(accepted, AcceptedSegment{
			CandidateSegment: c,
			StartS:           startS,
			EndS:             endS,
			DurationS:        duration,
		})
	}

	return accepted
}
