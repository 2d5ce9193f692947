// Package analyzer drives the LLM-completion side of segment selection:
// reachability preflight, the main generation request with its retry
// policy, and recovery of a structurally valid JSON object from
// free-form model output.
package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/bobarin/clipper/internal/pipeline"
)

// Client talks to a local Ollama-style completion endpoint.
type Client struct {
	BaseURL string
	Model   string

	TestTimeout     time.Duration
	AnalysisTimeout time.Duration
	MaxRetries      int
	RetryBackoff    time.Duration

	httpClient *http.Client
}

func NewClient(baseURL, model string, testTimeout, analysisTimeout, retryBackoff time.Duration, maxRetries int) *Client {
	return &Client{
		BaseURL:         strings.TrimRight(baseURL, "/"),
		Model:           model,
		TestTimeout:     testTimeout,
		AnalysisTimeout: analysisTimeout,
		MaxRetries:      maxRetries,
		RetryBackoff:    retryBackoff,
		httpClient:      &http.Client{},
	}
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	MaxTokens   int     `json:"max_tokens"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Preflight verifies reachability with a GET against the tags endpoint
// (capped at 60s per the spec's "≤60 s" regardless of the configured
// test timeout), then issues a minimal generation request bounded by
// TestTimeout. A preflight latency over 60s is logged as a "slow
// backend" warning but does not fail the preflight — actual analysis
// latency is expected to be far higher.
func (c *Client) Preflight(ctx context.Context) error {
	tagsTimeout := c.TestTimeout
	if tagsTimeout > 60*time.Second {
		tagsTimeout = 60 * time.Second
	}

	tagsCtx, cancel := context.WithTimeout(ctx, tagsTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(tagsCtx, http.MethodGet, c.BaseURL+"/api/tags", nil)
	if err != nil {
		return pipeline.Wrap(pipeline.KindLLMUnreachable, "analyzer.preflight", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pipeline.Wrap(pipeline.KindLLMUnreachable, "analyzer.preflight", fmt.Errorf("tags request failed: %w", err))
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return pipeline.Wrap(pipeline.KindLLMUnreachable, "analyzer.preflight", fmt.Errorf("tags endpoint returned status %d", resp.StatusCode))
	}
	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return pipeline.Wrap(pipeline.KindLLMUnreachable, "analyzer.preflight", fmt.Errorf("decode tags response: %w", err))
	}

	start := time.Now()
	genCtx, cancelGen := context.WithTimeout(ctx, c.TestTimeout)
	defer cancelGen()
	_, err = c.generate(genCtx, "say 'Hi'", 5)
	elapsed := time.Since(start)
	if err != nil {
		return pipeline.Wrap(pipeline.KindLLMUnreachable, "analyzer.preflight", fmt.Errorf("test generation failed: %w", err))
	}
	if elapsed > 60*time.Second {
		log.Printf("analyzer: slow backend warning: preflight generation took %s", elapsed)
	}
	return nil
}

// Generate runs the main analysis request with the retry policy in
// §4.2: up to MaxRetries additional attempts, fixed RetryBackoff sleep
// between them, retrying on timeout/connection error/5xx/empty body,
// never retrying other 4xx (except 408/429).
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			log.Printf("analyzer: retrying generate (attempt %d/%d) after %s", attempt+1, c.MaxRetries+1, c.RetryBackoff)
			select {
			case <-ctx.Done():
				return "", pipeline.Wrap(pipeline.KindCancelled, "analyzer.generate", ctx.Err())
			case <-time.After(c.RetryBackoff):
			}
		}

		genCtx, cancel := context.WithTimeout(ctx, c.AnalysisTimeout)
		text, err := c.generate(genCtx, prompt, 2048)
		cancel()

		if err == nil && text != "" {
			return text, nil
		}

		lastErr = err
		if err == nil {
			lastErr = fmt.Errorf("empty response from LLM")
		}

		if !isRetryable(lastErr) {
			return "", pipeline.Wrap(pipeline.KindLLMTimeout, "analyzer.generate", lastErr)
		}
	}

	return "", pipeline.Wrap(pipeline.KindLLMTimeout, "analyzer.generate", fmt.Errorf("exhausted %d retries: %w", c.MaxRetries, lastErr))
}

type httpStatusError struct {
	status int
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("llm endpoint returned status %d", e.status)
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	var statusErr *httpStatusError
	if se, ok := err.(*httpStatusError); ok {
		statusErr = se
		if statusErr.status == 408 || statusErr.status == 429 {
			return true
		}
		if statusErr.status >= 500 {
			return true
		}
		if statusErr.status >= 400 {
			return false
		}
	}
	// transport timeouts, connection errors, and empty bodies fall through
	// to here and are retryable.
	return true
}

func (c *Client) generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	payload := generateRequest{
		Model:  c.Model,
		Prompt: prompt,
		Stream: false,
		Options: generateOptions{
			Temperature: 0.1,
			TopP:        0.9,
			MaxTokens:   maxTokens,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		log.Printf("analyzer: generate returned status %d, body: %s", resp.StatusCode, truncate(string(raw), 2000))
		return "", &httpStatusError{status: resp.StatusCode}
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode generate response: %w", err)
	}

	return strings.TrimSpace(result.Response), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "...(truncated)"
}
