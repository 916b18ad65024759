package workbench

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/ports/primary"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/ports/secondary"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/services/execution"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/services/layout"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/services/results"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/services/testcase"
)

var _ IWorkbenchService = (*WorkbenchService)(nil)

// WorkbenchService implements the IWorkbenchService interface
type WorkbenchService struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	problems secondary.ProblemSource
	judge    secondary.JudgeClient
	sink     secondary.SubmissionSink
	logger   primary.Logger
}

// NewWorkbenchService creates a session registry
func NewWorkbenchService(
	problems secondary.ProblemSource,
	judge secondary.JudgeClient,
	sink secondary.SubmissionSink,
	logger primary.Logger,
) *WorkbenchService {
	return &WorkbenchService{
		sessions: make(map[string]*Session),
		problems: problems,
		judge:    judge,
		sink:     sink,
		logger:   logger,
	}
}

// Open creates a session seeded from the problem's sample test cases
func (s *WorkbenchService) Open(ctx context.Context, problemID, language string) (*Session, error) {
	problem, err := s.problems.GetProblem(ctx, problemID)
	if err != nil {
		s.logger.Error("Failed to load problem for session", "problemId", problemID, "error", err)
		return nil, fmt.Errorf("failed to load problem %s: %w", problemID, err)
	}

	store := testcase.NewTestCaseService()
	store.Seed(problem.TestcaseSamples)

	consumer := results.NewResultService(s.logger)
	exec := execution.NewExecutionService(problemID, store, consumer, s.judge, s.sink, s.logger)

	session := newSession(problemID, language, layout.NewLayoutService(), store, consumer, exec)
	session.problemTitle = problem.Title

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.logger.Info("Workbench session opened",
		"sessionId", session.ID,
		"problemId", problemID,
		"samples", len(problem.TestcaseSamples))
	return session, nil
}

// Get retrieves a live session by ID
func (s *WorkbenchService) Get(sessionID string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	return session, ok
}

// Close tears a session down
func (s *WorkbenchService) Close(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return false
	}
	delete(s.sessions, sessionID)
	s.logger.Info("Workbench session closed", "sessionId", sessionID)
	return true
}

// CleanupIdle closes sessions idle for longer than maxIdle
func (s *WorkbenchService) CleanupIdle(maxIdle time.Duration) int {
	if maxIdle <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	closed := 0
	for id, session := range s.sessions {
		if time.Since(session.LastActive()) > maxIdle {
			delete(s.sessions, id)
			closed++
			s.logger.Info("Idle workbench session closed", "sessionId", id)
		}
	}
	return closed
}

// ExpireStale sweeps all sessions for wedged in-flight executions
func (s *WorkbenchService) ExpireStale(maxAge time.Duration) {
	s.mu.RLock()
	live := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		live = append(live, session)
	}
	s.mu.RUnlock()

	for _, session := range live {
		session.exec.ExpireStale(maxAge)
	}
}
