package secondary

import (
	"context"

	"github.com/Diploma-Survivors/vibe-match-workbench/internal/domain"
)

// JudgeClient invokes the remote judge and exposes its asynchronous result
// feed. The feed eventually yields zero or more results tagged with their
// ordinal index, in no guaranteed order, and is closed when the judge is
// done. Delivery mechanics (polling, streaming) are the adapter's business.
type JudgeClient interface {
	// InvokeRun executes the request against its sample test cases only
	InvokeRun(ctx context.Context, req domain.ExecutionRequest) (<-chan domain.ExecutionResult, error)

	// InvokeSubmit executes the request against the full judge pipeline
	InvokeSubmit(ctx context.Context, req domain.ExecutionRequest) (<-chan domain.ExecutionResult, error)
}
