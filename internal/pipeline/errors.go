package pipeline

import (
	"errors"
	"fmt"
)

// Kind identifies which branch of the error taxonomy an Error belongs to.
type Kind string

const (
	KindMediaUnreadable          Kind = "media_unreadable"
	KindTranscriptionUnavailable Kind = "transcription_unavailable"
	KindLLMUnreachable           Kind = "llm_unreachable"
	KindLLMTimeout               Kind = "llm_timeout"
	KindLLMBadResponse           Kind = "llm_bad_response"
	KindSegmentInvalid           Kind = "segment_invalid"
	KindExpansionFailed          Kind = "expansion_failed"
	KindClipRenderFailed         Kind = "clip_render_failed"
	KindCancelled                Kind = "cancelled"
)

// Fatal reports whether an error of this Kind aborts the whole request
// (as opposed to being absorbed locally and logged).
func (k Kind) Fatal() bool {
	switch k {
	case KindSegmentInvalid, KindExpansionFailed, KindClipRenderFailed:
		return false
	default:
		return true
	}
}

// Error wraps an underlying error with the stage it occurred in and its
// taxonomy Kind, so callers can branch with errors.Is/errors.As instead of
// string-matching.
type Error struct {
	Kind  Kind
	Stage string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Stage, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Recoverable reports whether this error should be absorbed locally
// rather than aborting the request — the inverse of Kind.Fatal, exposed
// so packages downstream of pipeline (e.g. the render worker pool) can
// branch on it without importing the Kind taxonomy itself.
func (e *Error) Recoverable() bool {
	return !e.Kind.Fatal()
}

// Wrap builds a tagged Error, matching the %w wrapping convention used
// throughout this codebase's subprocess and HTTP call sites.
func Wrap(kind Kind, stage string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Stage: stage, Err: err}
}

// Is reports whether err carries the given Kind anywhere in its chain.
func Is(err error, kind Kind) bool {
	for err != nil {
		var pe *Error
		if !errors.As(err, &pe) {
			return false
		}
		if pe.Kind == kind {
			return true
		}
		err = pe.Err
	}
	return false
}

var ErrCancelled = errors.New("pipeline: cancelled")
