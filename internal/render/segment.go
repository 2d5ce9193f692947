package render

// ClampSegment applies §4.4's source-bounds rule: a segment starting at
// or beyond the source duration is skipped entirely (ok=false); one
// that merely overruns the end is clamped.
func ClampSegment(startS, endS, sourceDurationS float64) (clampedStart, clampedEnd float64, ok bool) {
	if startS >= sourceDurationS {
		return 0, 0, false
	}
	if endS > sourceDurationS {
		endS = sourceDurationS
	}
	return startS, endS, true
}
