package analyzer

import (
	"github.com/bobarin/clipper/internal/analysis"
)

// ToCandidateSegments normalises the loosely-typed RawSegment list
// recovered off the wire into the analysis package's strongly-typed
// CandidateSegment shape. Fields of the wrong or missing type are left
// at their zero value — ValidateSegments rejects the resulting
// candidate rather than this function guessing a default.
func ToCandidateSegments(raws []RawSegment) []analysis.CandidateSegment {
	out := make([]analysis.CandidateSegment, 0, len(raws))
	for _, raw := range raws {
		out = append(out, analysis.CandidateSegment{
			StartTime:      stringField(raw, "start_time"),
			EndTime:        stringField(raw, "end_time"),
			Text:           stringField(raw, "text"),
			RelevanceScore: floatField(raw, "relevance_score"),
			Reasoning:      stringField(raw, "reasoning"),
		})
	}
	return out
}

func stringField(raw RawSegment, key string) string {
	if v, ok := raw[key].(string); ok {
		return v
	}
	return ""
}

func floatField(raw RawSegment, key string) float64 {
	switch v := raw[key].(type) {
	case float64:
		return v
	default:
		return 0
	}
}
