package analyzer

import (
	"encoding/json"
	"regexp"
	"strings"
)

var jsonCodeBlockPattern = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// RawSegment is the loosely-typed shape recovered directly off the wire;
// it mirrors whatever top-level key the model actually used so callers
// can normalise later.
type RawSegment map[string]any

// Response is the recovered top-level JSON object.
type Response struct {
	MostRelevantSegments []RawSegment `json:"most_relevant_segments"`
	Summary              string       `json:"summary"`
	KeyTopics            []string     `json:"key_topics"`
	Error                string       `json:"error"`
}

// ExtractJSON recovers a structurally valid JSON object from free-form
// model output, in three stages: direct parse, fenced markdown code
// block, then a balanced-brace scan trying every depth-zero closing
// brace starting from the first "{". The first successful parse wins.
// Returns false if every strategy fails.
func ExtractJSON(text string) (Response, bool) {
	if strings.TrimSpace(text) == "" {
		return Response{}, false
	}

	if resp, ok := tryParse(strings.TrimSpace(text)); ok {
		return resp, true
	}

	for _, match := range jsonCodeBlockPattern.FindAllStringSubmatch(text, -1) {
		if resp, ok := tryParse(strings.TrimSpace(match[1])); ok {
			return resp, true
		}
	}

	start := strings.IndexByte(text, '{')
	if start == -1 {
		return Response{}, false
	}

	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				if resp, ok := tryParse(text[start : i+1]); ok {
					return resp, true
				}
			}
		}
	}

	return Response{}, false
}

func tryParse(candidate string) (Response, bool) {
	var resp Response
	if err := json.Unmarshal([]byte(candidate), &resp); err != nil {
		return Response{}, false
	}
	if len(resp.MostRelevantSegments) == 0 {
		// Recognise alternative top-level keys before giving up on this parse.
		var generic map[string]json.RawMessage
		if err := json.Unmarshal([]byte(candidate), &generic); err == nil {
			for _, altKey := range []string{"segments", "clips", "relevant_segments", "top_segments"} {
				if raw, ok := generic[altKey]; ok {
					var segs []RawSegment
					if err := json.Unmarshal(raw, &segs); err == nil && len(segs) > 0 {
						resp.MostRelevantSegments = segs
						break
					}
				}
			}
		}
	}
	return resp, true
}
