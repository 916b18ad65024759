package execution

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/ports/primary"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/ports/secondary"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/services/results"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/services/testcase"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/domain"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/static/languages"
)

var _ IExecutionService = (*ExecutionService)(nil)

type kindState struct {
	state       domain.ExecState
	generation  uint64
	startedAt   time.Time
	snapshotLen int
	language    string
}

// ExecutionService implements the IExecutionService interface
type ExecutionService struct {
	mu        sync.Mutex
	problemID string
	store     testcase.ITestCaseService
	consumer  results.IResultService
	judge     secondary.JudgeClient
	sink      secondary.SubmissionSink
	logger    primary.Logger
	kinds     map[domain.RunKind]*kindState

	onStarted func(domain.RunKind)
	onResult  func(domain.RunKind, domain.ExecutionResult)
	onSettled func(domain.RunKind)
}

// NewExecutionService creates an orchestrator bound to one problem session
func NewExecutionService(
	problemID string,
	store testcase.ITestCaseService,
	consumer results.IResultService,
	judge secondary.JudgeClient,
	sink secondary.SubmissionSink,
	logger primary.Logger,
) *ExecutionService {
	return &ExecutionService{
		problemID: problemID,
		store:     store,
		consumer:  consumer,
		judge:     judge,
		sink:      sink,
		logger:    logger,
		kinds: map[domain.RunKind]*kindState{
			domain.KindRun:    {state: domain.ExecIdle},
			domain.KindSubmit: {state: domain.ExecIdle},
		},
	}
}

// SetHooks registers the shell callbacks
func (s *ExecutionService) SetHooks(
	onStarted func(domain.RunKind),
	onResult func(domain.RunKind, domain.ExecutionResult),
	onSettled func(domain.RunKind),
) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onStarted = onStarted
	s.onResult = onResult
	s.onSettled = onSettled
}

// Run executes the current test case snapshot against sample judging
func (s *ExecutionService) Run(ctx context.Context, sourceCode, language string) error {
	return s.start(ctx, domain.KindRun, sourceCode, language)
}

// Submit executes against the full judge pipeline
func (s *ExecutionService) Submit(ctx context.Context, sourceCode, language string) error {
	return s.start(ctx, domain.KindSubmit, sourceCode, language)
}

// start snapshots the store, transitions the kind to in-flight and hands the
// request to the judge asynchronously. A kind already in flight rejects the
// new request without touching the one being delivered.
func (s *ExecutionService) start(ctx context.Context, kind domain.RunKind, sourceCode, language string) error {
	if strings.TrimSpace(sourceCode) == "" {
		return ErrEmptySource
	}

	s.mu.Lock()
	ks := s.kinds[kind]
	if ks.state == domain.ExecInFlight {
		s.mu.Unlock()
		s.logger.Debug("Rejecting duplicate execution", "kind", kind)
		return nil
	}

	snapshot := s.store.Snapshot()
	ks.generation++
	ks.state = domain.ExecInFlight
	ks.startedAt = time.Now()
	ks.snapshotLen = len(snapshot)
	ks.language = language

	req := domain.ExecutionRequest{
		Kind:       kind,
		Generation: ks.generation,
		ProblemID:  s.problemID,
		LanguageID: languages.Resolve(language),
		SourceCode: sourceCode,
		TestCases:  snapshot,
	}
	started := s.onStarted
	s.mu.Unlock()

	s.consumer.Reset(kind, req.Generation, len(snapshot))

	s.logger.Info("Dispatching execution",
		"kind", kind,
		"problemId", s.problemID,
		"generation", req.Generation,
		"testCases", len(snapshot))

	// busy indicator and result view switch happen before any result
	if started != nil {
		started(kind)
	}

	go s.dispatch(kind, req)
	return nil
}

// dispatch drives one request through the judge feed to completion. It runs
// detached from the caller's context: an issued request keeps delivering
// after the triggering HTTP call returns.
func (s *ExecutionService) dispatch(kind domain.RunKind, req domain.ExecutionRequest) {
	ctx := context.Background()

	var (
		feed <-chan domain.ExecutionResult
		err  error
	)
	if kind == domain.KindSubmit {
		feed, err = s.judge.InvokeSubmit(ctx, req)
	} else {
		feed, err = s.judge.InvokeRun(ctx, req)
	}
	if err != nil {
		s.failInFlight(kind, req.Generation, err.Error())
		return
	}

	for res := range feed {
		if res.ExpectedOutput == "" && res.OrdinalIndex >= 0 && res.OrdinalIndex < len(req.TestCases) {
			res.ExpectedOutput = req.TestCases[res.OrdinalIndex].ExpectedOutput
		}
		if s.consumer.Apply(kind, req.Generation, res) {
			s.mu.Lock()
			hook := s.onResult
			s.mu.Unlock()
			if hook != nil {
				hook(kind, res)
			}
		}
	}

	if kind != domain.KindSubmit {
		s.settle(kind, req.Generation)
		return
	}

	// capture the merged results and language before the idle transition:
	// the settled hook may accept a new submit immediately, and its Reset
	// discards this generation's results
	merged := s.consumer.Results(domain.KindSubmit)
	s.mu.Lock()
	language := s.kinds[kind].language
	s.mu.Unlock()

	if !s.settle(kind, req.Generation) {
		return
	}
	s.recordSubmission(ctx, language, merged)
}

// recordSubmission aggregates the delivered results into a SubmissionRecord
// and hands it to the history collaborator. Submits that delivered nothing
// produce no record.
func (s *ExecutionService) recordSubmission(ctx context.Context, language string, merged map[int]domain.ExecutionResult) {
	if len(merged) == 0 {
		s.logger.Warn("Submit delivered no results, skipping record", "problemId", s.problemID)
		return
	}
	flat := make([]domain.ExecutionResult, 0, len(merged))
	for _, r := range merged {
		flat = append(flat, r)
	}

	record := domain.NewSubmissionRecord(s.problemID, language, flat)
	if err := s.sink.SaveSubmission(ctx, record); err != nil {
		s.logger.Error("Failed to hand submission to history", "submissionId", record.ID, "error", err)
		return
	}
	s.logger.Info("Submission recorded",
		"submissionId", record.ID,
		"status", record.Status,
		"score", record.Score)
}

// failInFlight absorbs a transport or judge failure: a synthetic OTHER
// result lands in the active test case's slot and the kind settles to idle.
// Nothing propagates to the caller.
func (s *ExecutionService) failInFlight(kind domain.RunKind, generation uint64, message string) {
	s.mu.Lock()
	ks := s.kinds[kind]
	if ks.state != domain.ExecInFlight || ks.generation != generation {
		s.mu.Unlock()
		return
	}
	index := s.store.ActiveIndex()
	if index >= ks.snapshotLen {
		index = ks.snapshotLen - 1
	}
	if index < 0 {
		index = 0
	}
	s.mu.Unlock()

	s.logger.Error("Execution failed", "kind", kind, "generation", generation, "error", message)

	synthetic := domain.ExecutionResult{
		OrdinalIndex: index,
		Status:       domain.StatusOther,
		Stderr:       message,
	}
	if s.consumer.Apply(kind, generation, synthetic) {
		s.mu.Lock()
		hook := s.onResult
		s.mu.Unlock()
		if hook != nil {
			hook(kind, synthetic)
		}
	}
	s.settle(kind, generation)
}

// settle transitions the kind back to idle if the given generation is still
// the live one. Reports whether this call performed the transition.
func (s *ExecutionService) settle(kind domain.RunKind, generation uint64) bool {
	s.mu.Lock()
	ks := s.kinds[kind]
	if ks.state != domain.ExecInFlight || ks.generation != generation {
		s.mu.Unlock()
		return false
	}
	ks.state = domain.ExecIdle
	hook := s.onSettled
	s.mu.Unlock()

	s.logger.Info("Execution settled", "kind", kind, "generation", generation)
	if hook != nil {
		hook(kind)
	}
	return true
}

// State returns the kind's current orchestrator state
func (s *ExecutionService) State(kind domain.RunKind) domain.ExecState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kinds[kind].state
}

// Generation returns the kind's current request generation
func (s *ExecutionService) Generation(kind domain.RunKind) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kinds[kind].generation
}

// ExpireStale settles in-flight executions older than maxAge with a
// synthetic timeout result
func (s *ExecutionService) ExpireStale(maxAge time.Duration) {
	if maxAge <= 0 {
		return
	}

	type stale struct {
		kind       domain.RunKind
		generation uint64
	}
	var expired []stale

	s.mu.Lock()
	for kind, ks := range s.kinds {
		if ks.state == domain.ExecInFlight && time.Since(ks.startedAt) > maxAge {
			expired = append(expired, stale{kind: kind, generation: ks.generation})
		}
	}
	s.mu.Unlock()

	for _, e := range expired {
		s.failInFlight(e.kind, e.generation, "execution timed out waiting for the judge")
	}
}
