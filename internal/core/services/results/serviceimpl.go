package results

import (
	"sync"

	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/ports/primary"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/domain"
)

var _ IResultService = (*ResultService)(nil)

type generationState struct {
	generation  uint64
	snapshotLen int
	merged      map[int]domain.ExecutionResult
	announced   bool
}

// ResultService implements the IResultService interface
type ResultService struct {
	mu            sync.Mutex
	kinds         map[domain.RunKind]*generationState
	logger        primary.Logger
	onFirstResult func(kind domain.RunKind)
}

// NewResultService creates a result consumer with no live generation
func NewResultService(logger primary.Logger) *ResultService {
	return &ResultService{
		kinds:  make(map[domain.RunKind]*generationState),
		logger: logger,
	}
}

// SetOnFirstResult registers the shell hook for first-result arrival
func (s *ResultService) SetOnFirstResult(fn func(kind domain.RunKind)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onFirstResult = fn
}

// Reset starts a new generation for the kind
func (s *ResultService) Reset(kind domain.RunKind, generation uint64, snapshotLen int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.kinds[kind] = &generationState{
		generation:  generation,
		snapshotLen: snapshotLen,
		merged:      make(map[int]domain.ExecutionResult),
	}
}

// Apply merges one delivered result into the current generation
func (s *ResultService) Apply(kind domain.RunKind, generation uint64, result domain.ExecutionResult) bool {
	s.mu.Lock()

	st, ok := s.kinds[kind]
	if !ok || st.generation != generation {
		s.mu.Unlock()
		s.logger.Debug("Dropping stale result",
			"kind", kind,
			"generation", generation,
			"index", result.OrdinalIndex)
		return false
	}

	if result.OrdinalIndex < 0 || result.OrdinalIndex >= st.snapshotLen {
		s.mu.Unlock()
		s.logger.Warn("Dropping result outside snapshot range",
			"kind", kind,
			"index", result.OrdinalIndex,
			"snapshotLen", st.snapshotLen)
		return false
	}

	st.merged[result.OrdinalIndex] = result
	first := !st.announced
	st.announced = true
	hook := s.onFirstResult
	s.mu.Unlock()

	if first && hook != nil {
		hook(kind)
	}
	return true
}

// ResultAt returns the merged result at index, if one has arrived
func (s *ResultService) ResultAt(kind domain.RunKind, index int) (domain.ExecutionResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.kinds[kind]
	if !ok {
		return domain.ExecutionResult{}, false
	}
	res, ok := st.merged[index]
	return res, ok
}

// Results returns a copy of the kind's merged results
func (s *ResultService) Results(kind domain.RunKind) map[int]domain.ExecutionResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[int]domain.ExecutionResult)
	st, ok := s.kinds[kind]
	if !ok {
		return out
	}
	for i, r := range st.merged {
		out[i] = r
	}
	return out
}

// Generation returns the kind's current generation tag
func (s *ResultService) Generation(kind domain.RunKind) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.kinds[kind]; ok {
		return st.generation
	}
	return 0
}
