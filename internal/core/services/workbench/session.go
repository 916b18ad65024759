package workbench

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/services/execution"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/services/layout"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/services/results"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/services/testcase"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/domain"
)

// Notifier receives server-originated session messages for fan-out to
// attached connections
type Notifier func(messageType string, payload interface{})

// Session composes the four workbench controllers for one problem-solving
// session. Every controller owns its state exclusively; the session only
// routes intents in and snapshots out, and owns the view mode.
type Session struct {
	ID        string
	ProblemID string

	mu           sync.Mutex
	problemTitle string
	language     string
	viewMode     domain.ViewMode
	lastActive   time.Time
	notifier     Notifier

	layout   layout.ILayoutService
	store    testcase.ITestCaseService
	consumer results.IResultService
	exec     execution.IExecutionService
}

func newSession(problemID, language string, lay layout.ILayoutService, store testcase.ITestCaseService, consumer results.IResultService, exec execution.IExecutionService) *Session {
	s := &Session{
		ID:         uuid.New().String(),
		ProblemID:  problemID,
		language:   language,
		viewMode:   domain.ViewTestcase,
		lastActive: time.Now(),
		layout:     lay,
		store:      store,
		consumer:   consumer,
		exec:       exec,
	}

	// shell transition rules: switch to the result view when a run is
	// dispatched and when the first result of a generation lands. The
	// flip is one-directional; switching back is a user action only.
	exec.SetHooks(
		func(kind domain.RunKind) {
			s.showResults()
			s.pushState()
		},
		func(kind domain.RunKind, res domain.ExecutionResult) {
			s.notify("exec.result", map[string]interface{}{
				"kind":   kind,
				"result": res,
			})
		},
		func(kind domain.RunKind) {
			s.notify("exec.settled", map[string]interface{}{"kind": kind})
			s.pushState()
		},
	)
	consumer.SetOnFirstResult(func(kind domain.RunKind) {
		s.showResults()
	})

	return s
}

// SetNotifier attaches the transport fan-out for this session
func (s *Session) SetNotifier(n Notifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifier = n
}

func (s *Session) notify(messageType string, payload interface{}) {
	s.mu.Lock()
	n := s.notifier
	s.mu.Unlock()
	if n != nil {
		n(messageType, payload)
	}
}

func (s *Session) pushState() {
	s.notify("state", s.Snapshot())
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastActive = time.Now()
	s.mu.Unlock()
}

func (s *Session) showResults() {
	s.mu.Lock()
	s.viewMode = domain.ViewResult
	s.mu.Unlock()
}

// LastActive reports when the session last received an intent
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// BeginDrag starts a pane drag on the given axis
func (s *Session) BeginDrag(axis domain.DragAxis) {
	s.touch()
	s.layout.BeginDrag(axis)
	s.pushState()
}

// PointerMove feeds one pointer sample into the layout controller
func (s *Session) PointerMove(axis domain.DragAxis, bounds domain.Bounds, pos domain.Point) {
	s.touch()
	s.layout.PointerMove(axis, bounds, pos)
	s.pushState()
}

// EndDrag ends any active pane drag
func (s *Session) EndDrag() {
	s.touch()
	s.layout.EndDrag()
	s.pushState()
}

// AddTestCase appends a blank test case and selects it
func (s *Session) AddTestCase() domain.TestCase {
	s.touch()
	tc := s.store.Add()
	s.pushState()
	return tc
}

// ToggleEdit flips edit mode on one test case
func (s *Session) ToggleEdit(id uuid.UUID) {
	s.touch()
	s.store.ToggleEdit(id)
	s.pushState()
}

// UpdateTestCase edits one field of one test case
func (s *Session) UpdateTestCase(id uuid.UUID, field domain.TestCaseField, value string) {
	s.touch()
	s.store.Update(id, field, value)
	s.pushState()
}

// RemoveTestCase deletes a test case; refused for the last remaining one
func (s *Session) RemoveTestCase(id uuid.UUID) bool {
	s.touch()
	removed := s.store.Remove(id)
	if removed {
		s.pushState()
	}
	return removed
}

// SetActiveTestCase selects a test case by position
func (s *Session) SetActiveTestCase(index int) {
	s.touch()
	s.store.SetActive(index)
	s.pushState()
}

// SetViewMode switches the test panel tab. This is the user's side of the
// one-directional auto-switch: late results never revert it.
func (s *Session) SetViewMode(mode domain.ViewMode) {
	s.touch()
	s.mu.Lock()
	s.viewMode = mode
	s.mu.Unlock()
	s.pushState()
}

// Run dispatches a sample run of the given source code
func (s *Session) Run(ctx context.Context, sourceCode, language string) error {
	s.touch()
	s.setLanguage(language)
	return s.exec.Run(ctx, sourceCode, language)
}

// Submit dispatches a full judge submit of the given source code
func (s *Session) Submit(ctx context.Context, sourceCode, language string) error {
	s.touch()
	s.setLanguage(language)
	return s.exec.Submit(ctx, sourceCode, language)
}

func (s *Session) setLanguage(language string) {
	if language == "" {
		return
	}
	s.mu.Lock()
	s.language = language
	s.mu.Unlock()
}

// Snapshot assembles the full read-only view of the session
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	title := s.problemTitle
	language := s.language
	viewMode := s.viewMode
	s.mu.Unlock()

	return Snapshot{
		SessionID:        s.ID,
		ProblemID:        s.ProblemID,
		ProblemTitle:     title,
		Language:         language,
		Layout:           s.layout.State(),
		TestCases:        s.store.Cases(),
		ActiveIndex:      s.store.ActiveIndex(),
		ViewMode:         viewMode,
		RunState:         s.exec.State(domain.KindRun),
		SubmitState:      s.exec.State(domain.KindSubmit),
		RunGeneration:    s.exec.Generation(domain.KindRun),
		SubmitGeneration: s.exec.Generation(domain.KindSubmit),
		RunResults:       s.consumer.Results(domain.KindRun),
		SubmitResults:    s.consumer.Results(domain.KindSubmit),
	}
}

// ResultAt exposes the lazy per-index result view
func (s *Session) ResultAt(kind domain.RunKind, index int) (domain.ExecutionResult, bool) {
	return s.consumer.ResultAt(kind, index)
}

// ViewMode returns the test panel's current tab
func (s *Session) ViewMode() domain.ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewMode
}
