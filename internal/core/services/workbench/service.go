package workbench

import (
	"context"
	"time"

	"github.com/Diploma-Survivors/vibe-match-workbench/internal/domain"
)

// Snapshot is the read-only view of a session handed to transports. The
// shell never mutates controller-owned state through it.
type Snapshot struct {
	SessionID        string                         `json:"sessionId"`
	ProblemID        string                         `json:"problemId"`
	ProblemTitle     string                         `json:"problemTitle,omitempty"`
	Language         string                         `json:"language"`
	Layout           domain.LayoutState             `json:"layout"`
	TestCases        []domain.TestCase              `json:"testCases"`
	ActiveIndex      int                            `json:"activeIndex"`
	ViewMode         domain.ViewMode                `json:"viewMode"`
	RunState         domain.ExecState               `json:"runState"`
	SubmitState      domain.ExecState               `json:"submitState"`
	RunGeneration    uint64                         `json:"runGeneration"`
	SubmitGeneration uint64                         `json:"submitGeneration"`
	RunResults       map[int]domain.ExecutionResult `json:"runResults"`
	SubmitResults    map[int]domain.ExecutionResult `json:"submitResults"`
}

// IWorkbenchService is the registry of live workbench sessions, one per
// open problem-solving workbench.
type IWorkbenchService interface {
	// Open creates a session for a problem, seeding the test case store
	// from the problem's samples
	Open(ctx context.Context, problemID, language string) (*Session, error)

	// Get retrieves a live session by ID
	Get(sessionID string) (*Session, bool)

	// Close tears a session down
	Close(sessionID string) bool

	// CleanupIdle closes sessions idle for longer than maxIdle
	CleanupIdle(maxIdle time.Duration) int

	// ExpireStale sweeps all sessions for wedged in-flight executions
	ExpireStale(maxAge time.Duration)
}
