package results

import "github.com/Diploma-Survivors/vibe-match-workbench/internal/domain"

// IResultService consumes the asynchronous result feed of an execution and
// merges it into displayable per-index state. Batch and incremental delivery
// look identical to this service: results arrive one at a time, in any order,
// and partial delivery is always a valid state.
type IResultService interface {
	// Reset starts a new generation for the kind, discarding all results
	// of earlier generations. snapshotLen bounds the valid ordinal range.
	Reset(kind domain.RunKind, generation uint64, snapshotLen int)

	// Apply merges one delivered result. Results from a stale generation
	// or with an out-of-range ordinal index are dropped. Returns whether
	// the result was applied.
	Apply(kind domain.RunKind, generation uint64, result domain.ExecutionResult) bool

	// ResultAt returns the merged result for the test case at index, if
	// one has arrived in the current generation.
	ResultAt(kind domain.RunKind, index int) (domain.ExecutionResult, bool)

	// Results returns all merged results of the kind's current
	// generation, keyed by ordinal index.
	Results(kind domain.RunKind) map[int]domain.ExecutionResult

	// Generation returns the kind's current generation tag
	Generation(kind domain.RunKind) uint64

	// SetOnFirstResult registers the shell hook fired when the first
	// result of a generation lands. Fired at most once per generation.
	SetOnFirstResult(fn func(kind domain.RunKind))
}
