package driver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bobarin/clipper/internal/analyzer"
	"github.com/bobarin/clipper/internal/transcript"
)

func newAnalyzerClient(t *testing.T, responseJSON string) *analyzer.Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"models":[]}`))
	})
	mux.HandleFunc("/api/generate", func(w http.ResponseWriter, r *http.Request) {
		type out struct {
			Response string `json:"response"`
		}
		b, _ := json.Marshal(out{Response: responseJSON})
		w.Write(b)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return analyzer.NewClient(server.URL, "test-model", 2*time.Second, 2*time.Second, 5*time.Millisecond, 1)
}

func sampleTranscript() *TranscribeResult {
	return &TranscribeResult{
		Lines: []transcript.Line{
			{StartMS: 0, EndMS: 5000, Text: "hello there friend"},
		},
		Text: "hello there friend",
	}
}

func TestDriverAnalyzeReturnsNormalizedCandidates(t *testing.T) {
	d := &Driver{
		Analyzer: newAnalyzerClient(t, `{"most_relevant_segments":[{"start_time":"00:00","end_time":"00:45","text":"hello there friend","relevance_score":0.9,"reasoning":"good hook"}],"summary":"a video","key_topics":["intro"]}`),
		MaxClips: 3,
	}

	candidates, summary, keyTopics, err := d.analyze(t.Context(), sampleTranscript())
	require.NoError(t, err)
	require.Equal(t, "a video", summary)
	require.Equal(t, []string{"intro"}, keyTopics)
	require.Len(t, candidates, 1)
	require.Equal(t, "00:00", candidates[0].StartTime)
	require.Equal(t, "00:45", candidates[0].EndTime)
	require.InDelta(t, 0.9, candidates[0].RelevanceScore, 0.0001)
}

func TestDriverAnalyzeFailsWhenModelOutputIsNotJSON(t *testing.T) {
	d := &Driver{
		Analyzer: newAnalyzerClient(t, "not json at all, just prose"),
		MaxClips: 3,
	}

	_, _, _, err := d.analyze(t.Context(), sampleTranscript())
	require.Error(t, err)
}

func TestDriverAnalyzeFailsWhenBackendUnreachable(t *testing.T) {
	d := &Driver{
		Analyzer: analyzer.NewClient("http://127.0.0.1:1", "test-model", 50*time.Millisecond, 50*time.Millisecond, time.Millisecond, 0),
		MaxClips: 3,
	}

	_, _, _, err := d.analyze(t.Context(), sampleTranscript())
	require.Error(t, err)
}
