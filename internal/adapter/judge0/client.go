package judge0

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Diploma-Survivors/vibe-match-workbench/internal/config"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/ports/primary"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/ports/secondary"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/domain"
)

var _ secondary.JudgeClient = (*Client)(nil)

// maxPollFailures closes the feed after this many consecutive poll errors;
// the orchestrator's watchdog covers whatever is still outstanding.
const maxPollFailures = 5

// Client implements the JudgeClient port against a Judge0-style batch API:
// one POST creates a batch of per-test-case submissions, polling by token
// drains them as they settle.
type Client struct {
	baseURL      string
	apiKey       string
	pollInterval time.Duration
	httpClient   *http.Client
	logger       primary.Logger
}

// NewClient creates a judge client from configuration
func NewClient(cfg *config.JudgeConfig, logger primary.Logger) *Client {
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		// a zero ticker interval panics in the poll goroutine
		pollInterval = 500 * time.Millisecond
	}
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:       cfg.APIKey,
		pollInterval: pollInterval,
		httpClient:   &http.Client{Timeout: cfg.RequestTimeout},
		logger:       logger,
	}
}

// InvokeRun executes the request against its sample test cases only
func (c *Client) InvokeRun(ctx context.Context, req domain.ExecutionRequest) (<-chan domain.ExecutionResult, error) {
	return c.invoke(ctx, req, "run")
}

// InvokeSubmit executes the request against the full judge pipeline
func (c *Client) InvokeSubmit(ctx context.Context, req domain.ExecutionRequest) (<-chan domain.ExecutionResult, error) {
	return c.invoke(ctx, req, "submit")
}

func (c *Client) invoke(ctx context.Context, req domain.ExecutionRequest, pipeline string) (<-chan domain.ExecutionResult, error) {
	tokens, err := c.createBatch(ctx, req, pipeline)
	if err != nil {
		return nil, err
	}

	feed := make(chan domain.ExecutionResult, len(tokens))
	go c.poll(ctx, tokens, feed)
	return feed, nil
}

// createBatch posts one submission per test case snapshot and returns the
// judge's tokens in ordinal order.
func (c *Client) createBatch(ctx context.Context, req domain.ExecutionRequest, pipeline string) ([]string, error) {
	entries := make([]submissionEntry, len(req.TestCases))
	for i, tc := range req.TestCases {
		entries[i] = submissionEntry{
			LanguageID:     req.LanguageID,
			SourceCode:     req.SourceCode,
			Stdin:          tc.Input,
			ExpectedOutput: tc.ExpectedOutput,
		}
	}

	body, err := json.Marshal(batchCreateRequest{Submissions: entries})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal batch request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/submissions/batch?base64_encoded=false&pipeline=%s", c.baseURL, url.QueryEscape(pipeline))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build batch request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("X-Auth-Token", c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("judge batch create failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("judge batch create returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var created []tokenEntry
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to decode batch response: %w", err)
	}
	if len(created) != len(req.TestCases) {
		return nil, fmt.Errorf("judge returned %d tokens for %d test cases", len(created), len(req.TestCases))
	}

	tokens := make([]string, len(created))
	for i, entry := range created {
		tokens[i] = entry.Token
	}
	return tokens, nil
}

// poll drains the batch, emitting each submission the first time it settles.
// Entries settle in whatever order the judge finishes them.
func (c *Client) poll(ctx context.Context, tokens []string, feed chan<- domain.ExecutionResult) {
	defer close(feed)

	indexByToken := make(map[string]int, len(tokens))
	for i, token := range tokens {
		indexByToken[token] = i
	}
	emitted := make(map[string]bool, len(tokens))
	failures := 0

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for len(emitted) < len(tokens) {
		select {
		case <-ctx.Done():
			c.logger.Warn("Judge poll cancelled", "outstanding", len(tokens)-len(emitted))
			return
		case <-ticker.C:
		}

		statuses, err := c.pollBatch(ctx, tokens)
		if err != nil {
			failures++
			c.logger.Error("Judge poll failed", "attempt", failures, "error", err)
			if failures >= maxPollFailures {
				return
			}
			continue
		}
		failures = 0

		for _, status := range statuses {
			if emitted[status.Token] || !status.settled() {
				continue
			}
			index, ok := indexByToken[status.Token]
			if !ok {
				c.logger.Warn("Judge returned unknown token", "token", status.Token)
				continue
			}
			emitted[status.Token] = true
			feed <- status.toResult(index)
		}
	}
}

func (c *Client) pollBatch(ctx context.Context, tokens []string) ([]submissionStatus, error) {
	endpoint := fmt.Sprintf(
		"%s/submissions/batch?base64_encoded=false&tokens=%s&fields=token,status_id,time,memory,stdout,stderr,compile_output",
		c.baseURL,
		url.QueryEscape(strings.Join(tokens, ",")),
	)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build poll request: %w", err)
	}
	if c.apiKey != "" {
		httpReq.Header.Set("X-Auth-Token", c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("judge poll request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("judge poll returned %d", resp.StatusCode)
	}

	var decoded batchPollResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode poll response: %w", err)
	}
	return decoded.Submissions, nil
}
