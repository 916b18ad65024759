package execution

import (
	"context"
	"errors"
	"time"

	"github.com/Diploma-Survivors/vibe-match-workbench/internal/domain"
)

// ErrEmptySource rejects a dispatch before it reaches the judge. Transports
// surface it as an inline message next to the editor.
var ErrEmptySource = errors.New("source code must not be empty")

// IExecutionService orchestrates run and submit executions. The two kinds are
// independently exclusive: a second start of the same kind while one is in
// flight is a rejected no-op, while the other kind may start concurrently and
// keeps its own generation counter.
type IExecutionService interface {
	// Run executes the current test case snapshot against sample judging
	Run(ctx context.Context, sourceCode, language string) error

	// Submit executes against the full judge pipeline and, on completion,
	// hands a scored SubmissionRecord to the history collaborator.
	Submit(ctx context.Context, sourceCode, language string) error

	// State returns the kind's current orchestrator state
	State(kind domain.RunKind) domain.ExecState

	// Generation returns the kind's current request generation
	Generation(kind domain.RunKind) uint64

	// ExpireStale settles any in-flight execution older than maxAge with
	// a synthetic timeout result. A maxAge of zero disables expiry.
	ExpireStale(maxAge time.Duration)

	// SetHooks registers the shell callbacks: onStarted fires when a
	// dispatch is accepted (before any result), onResult per applied
	// result, onSettled when the kind returns to idle.
	SetHooks(onStarted func(domain.RunKind), onResult func(domain.RunKind, domain.ExecutionResult), onSettled func(domain.RunKind))
}
