// Package analysis turns the Analyzer's raw candidate segments into a
// validated, bounded Analysis: reject-or-repair validation followed by
// the deterministic expansion fallback and final dedup/sort/truncate.
package analysis

// CandidateSegment is what the Analyzer proposes, before any timing or
// content validation.
type CandidateSegment struct {
	StartTime      string // "MM:SS" or "HH:MM:SS"
	EndTime        string
	Text           string
	RelevanceScore float64
	Reasoning      string
}

// AcceptedSegment is a CandidateSegment that has passed validation (or
// was deterministically expanded into a valid one).
type AcceptedSegment struct {
	CandidateSegment
	StartS    int64
	EndS      int64
	DurationS int64
}

// Analysis is the final, immutable output of the analysis phase.
type Analysis struct {
	Segments  []AcceptedSegment
	Summary   string
	KeyTopics []string
}

const (
	MinSegmentDuration = 30 // seconds
	MaxSegmentDuration = 60 // seconds
	MinSegments        = 3
	MaxSegments        = 5

	// expansionToleranceSlack is the undocumented "+2s" grace the original
	// expander allows past MaxSegmentDuration. Preserved for behavioural
	// parity (see DESIGN.md Open Question 2) rather than silently dropped.
	expansionToleranceSlack = 2
)
