package analyzer

import (
	"strconv"
	"strings"
	"text/template"
)

// instructionTemplate is the fixed prompt contract (§4.2, §6): it
// instructs the model to return only JSON matching the segment schema,
// with an accepted no-segments error form.
const instructionTemplate = `You are analyzing a video transcript to find the most engaging, viral-worthy segments for a motivational/educational short-form video platform.

Given the timestamped transcript below, identify the {{.MaxClips}} most compelling continuous segments that would work well as standalone short clips (30-60 seconds each).

Rules for segment selection:
1. Each segment must be a continuous, coherent thought or story beat - do not cut mid-sentence or mid-idea
2. Prioritize segments with: strong emotional hooks, actionable advice, surprising insights, or quotable statements
3. Avoid segments that reference visual context the viewer can't see (e.g. "as you can see here")
4. Avoid segments that are purely introductory or transitional filler
5. Merge adjacent transcript lines if needed to reach the 30-60 second target - do not invent content
6. Each segment's relevance_score should reflect how viral-worthy it is standalone, from 0.0 to 1.0
7. Prefer fewer, higher quality segments over padding out to the maximum count

Transcript:
{{.Transcript}}

Respond with ONLY a JSON object in this exact format, no other text:
{
  "most_relevant_segments": [
    {
      "start_time": "MM:SS",
      "end_time": "MM:SS",
      "duration_seconds": <integer>,
      "text": "<the actual transcript text for this segment>",
      "relevance_score": <float between 0.7 and 1.0>,
      "reasoning": "<one sentence on why this segment works standalone>"
    }
  ],
  "summary": "<one paragraph summary of the overall video content>",
  "key_topics": ["<topic1>", "<topic2>"]
}

If no segments meet the bar, respond with:
{"most_relevant_segments": [], "error": "no suitable segments found"}
`

var promptTmpl = template.Must(template.New("analysis-prompt").Parse(instructionTemplate))

// BuildPrompt renders the fixed instruction template with the given
// transcript line-sequence and max-clips target.
func BuildPrompt(transcriptText string, maxClips int) (string, error) {
	var b strings.Builder
	data := struct {
		MaxClips   string
		Transcript string
	}{
		MaxClips:   strconv.Itoa(maxClips),
		Transcript: transcriptText,
	}
	if err := promptTmpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
