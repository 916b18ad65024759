package sessions

import (
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/domain"
)

// OpenSessionRequest represents a request to open a workbench session
type OpenSessionRequest struct {
	ProblemID string `json:"problemId"`
	Language  string `json:"language"`
}

// ExecRequest represents a run or submit request
type ExecRequest struct {
	SourceCode string `json:"sourceCode"`
	Language   string `json:"language"`
}

// UpdateTestCaseRequest represents an in-place test case edit
type UpdateTestCaseRequest struct {
	Field domain.TestCaseField `json:"field"`
	Value string               `json:"value"`
}

// SetActiveRequest selects a test case tab by position
type SetActiveRequest struct {
	Index int `json:"index"`
}

// SetViewRequest switches the test panel tab
type SetViewRequest struct {
	Mode domain.ViewMode `json:"mode"`
}

// SetLayoutRequest applies a one-shot divider drag for non-WebSocket clients
type SetLayoutRequest struct {
	Axis   domain.DragAxis `json:"axis"`
	Bounds domain.Bounds   `json:"bounds"`
	Point  domain.Point    `json:"point"`
}
