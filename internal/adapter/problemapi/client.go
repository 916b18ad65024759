package problemapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Diploma-Survivors/vibe-match-workbench/internal/config"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/ports/primary"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/ports/secondary"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/domain"
)

var _ secondary.ProblemSource = (*Client)(nil)

// Client implements the ProblemSource port over the content API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     primary.Logger
}

// NewClient creates a problem API client from configuration
func NewClient(cfg *config.ProblemAPICfg, logger primary.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		logger:     logger,
	}
}

// GetProblem retrieves a problem by ID
func (c *Client) GetProblem(ctx context.Context, problemID string) (*domain.Problem, error) {
	endpoint := fmt.Sprintf("%s/api/problems/%s", c.baseURL, url.PathEscape(problemID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build problem request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("problem request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("problem %s: %w", problemID, secondary.ErrProblemNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("problem API returned %d", resp.StatusCode)
	}

	var problem domain.Problem
	if err := json.NewDecoder(resp.Body).Decode(&problem); err != nil {
		return nil, fmt.Errorf("failed to decode problem: %w", err)
	}
	return &problem, nil
}
