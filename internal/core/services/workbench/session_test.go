package workbench_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/services/workbench"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

type fakeProblems struct {
	problem *domain.Problem
	err     error
}

func (f *fakeProblems) GetProblem(_ context.Context, problemID string) (*domain.Problem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.problem, nil
}

type fakeJudge struct {
	mu    sync.Mutex
	err   error
	feeds []chan domain.ExecutionResult
}

func (f *fakeJudge) open() (<-chan domain.ExecutionResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	ch := make(chan domain.ExecutionResult, 16)
	f.feeds = append(f.feeds, ch)
	return ch, nil
}

func (f *fakeJudge) InvokeRun(_ context.Context, _ domain.ExecutionRequest) (<-chan domain.ExecutionResult, error) {
	return f.open()
}

func (f *fakeJudge) InvokeSubmit(_ context.Context, _ domain.ExecutionRequest) (<-chan domain.ExecutionResult, error) {
	return f.open()
}

func (f *fakeJudge) feed(i int) chan domain.ExecutionResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.feeds[i]
}

func (f *fakeJudge) feedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.feeds)
}

type fakeSink struct{}

func (fakeSink) SaveSubmission(_ context.Context, _ *domain.SubmissionRecord) error { return nil }
func (fakeSink) ListSubmissions(_ context.Context, _ string, _ int) ([]*domain.SubmissionRecord, error) {
	return nil, nil
}

func fibonacciProblem() *domain.Problem {
	return &domain.Problem{
		ID:    "fib",
		Title: "Fibonacci",
		TestcaseSamples: []domain.Sample{
			{Input: "5", Output: "1 1 2 3 5"},
			{Input: "8", Output: "1 1 2 3 5 8 13 21"},
		},
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestOpenSeedsFromProblemSamples(t *testing.T) {
	svc := workbench.NewWorkbenchService(&fakeProblems{problem: fibonacciProblem()}, &fakeJudge{}, fakeSink{}, nopLogger{})

	session, err := svc.Open(context.Background(), "fib", "python")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	snap := session.Snapshot()
	if len(snap.TestCases) != 2 {
		t.Fatalf("expected 2 seeded cases, got %d", len(snap.TestCases))
	}
	if snap.TestCases[0].Input != "5" || snap.TestCases[1].ExpectedOutput != "1 1 2 3 5 8 13 21" {
		t.Fatalf("seed content mismatch: %+v", snap.TestCases)
	}
	if snap.ViewMode != domain.ViewTestcase {
		t.Fatalf("fresh session must open on the testcase view, got %s", snap.ViewMode)
	}
	if snap.Layout.HorizontalRatio != 50 || snap.Layout.VerticalRatio != 50 {
		t.Fatalf("fresh session must have default splits")
	}
}

func TestOpenFailsWhenProblemUnavailable(t *testing.T) {
	svc := workbench.NewWorkbenchService(&fakeProblems{err: errors.New("not found")}, &fakeJudge{}, fakeSink{}, nopLogger{})

	if _, err := svc.Open(context.Background(), "missing", "cpp"); err == nil {
		t.Fatalf("expected error for unavailable problem")
	}
}

func TestRunSwitchesToResultViewBeforeAnyResult(t *testing.T) {
	judge := &fakeJudge{}
	svc := workbench.NewWorkbenchService(&fakeProblems{problem: fibonacciProblem()}, judge, fakeSink{}, nopLogger{})
	session, err := svc.Open(context.Background(), "fib", "python")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	if err := session.Run(context.Background(), "print(fib(n))", "python"); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// the view flips as part of dispatch, before the feed delivers anything
	if got := session.ViewMode(); got != domain.ViewResult {
		t.Fatalf("view must be Result while in flight, got %s", got)
	}
	if got := session.Snapshot().RunState; got != domain.ExecInFlight {
		t.Fatalf("run must be in flight, got %s", got)
	}
	if len(session.Snapshot().RunResults) != 0 {
		t.Fatalf("no result may have arrived yet")
	}

	waitFor(t, "feed open", func() bool { return judge.feedCount() == 1 })
	close(judge.feed(0))
}

func TestTransportErrorLeavesIdleWithSyntheticResult(t *testing.T) {
	judge := &fakeJudge{err: errors.New("connection refused")}
	svc := workbench.NewWorkbenchService(&fakeProblems{problem: fibonacciProblem()}, judge, fakeSink{}, nopLogger{})
	session, err := svc.Open(context.Background(), "fib", "python")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	if err := session.Run(context.Background(), "code", "python"); err != nil {
		t.Fatalf("transport failure must be absorbed, got %v", err)
	}

	waitFor(t, "settle", func() bool {
		return session.Snapshot().RunState == domain.ExecIdle
	})

	res, ok := session.ResultAt(domain.KindRun, 0)
	if !ok || res.Status != domain.StatusOther || res.Stderr == "" {
		t.Fatalf("expected OTHER result with stderr in the current slot, got %+v ok=%v", res, ok)
	}
}

func TestUserViewChoiceSurvivesLateResults(t *testing.T) {
	judge := &fakeJudge{}
	svc := workbench.NewWorkbenchService(&fakeProblems{problem: fibonacciProblem()}, judge, fakeSink{}, nopLogger{})
	session, err := svc.Open(context.Background(), "fib", "python")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	if err := session.Run(context.Background(), "code", "python"); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	waitFor(t, "feed open", func() bool { return judge.feedCount() == 1 })

	judge.feed(0) <- domain.ExecutionResult{OrdinalIndex: 0, Status: domain.StatusAccepted}
	waitFor(t, "first result", func() bool {
		_, ok := session.ResultAt(domain.KindRun, 0)
		return ok
	})

	// user flips back; the late result must not revert it
	session.SetViewMode(domain.ViewTestcase)
	judge.feed(0) <- domain.ExecutionResult{OrdinalIndex: 1, Status: domain.StatusAccepted}
	waitFor(t, "second result", func() bool {
		_, ok := session.ResultAt(domain.KindRun, 1)
		return ok
	})

	if got := session.ViewMode(); got != domain.ViewTestcase {
		t.Fatalf("late results must not revert the user's view choice, got %s", got)
	}

	close(judge.feed(0))
}

func TestSessionRegistryLifecycle(t *testing.T) {
	svc := workbench.NewWorkbenchService(&fakeProblems{problem: fibonacciProblem()}, &fakeJudge{}, fakeSink{}, nopLogger{})
	session, err := svc.Open(context.Background(), "fib", "cpp")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	if _, ok := svc.Get(session.ID); !ok {
		t.Fatalf("session must be retrievable")
	}
	if !svc.Close(session.ID) {
		t.Fatalf("close must succeed")
	}
	if _, ok := svc.Get(session.ID); ok {
		t.Fatalf("closed session must be gone")
	}
	if svc.Close(session.ID) {
		t.Fatalf("double close must report false")
	}
}

func TestCleanupIdleClosesStaleSessions(t *testing.T) {
	svc := workbench.NewWorkbenchService(&fakeProblems{problem: fibonacciProblem()}, &fakeJudge{}, fakeSink{}, nopLogger{})
	session, err := svc.Open(context.Background(), "fib", "cpp")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	time.Sleep(5 * time.Millisecond)
	if closed := svc.CleanupIdle(time.Nanosecond); closed != 1 {
		t.Fatalf("expected 1 idle session closed, got %d", closed)
	}
	if _, ok := svc.Get(session.ID); ok {
		t.Fatalf("idle session must be gone")
	}
}

func TestSnapshotTracksTestCaseIntents(t *testing.T) {
	svc := workbench.NewWorkbenchService(&fakeProblems{problem: fibonacciProblem()}, &fakeJudge{}, fakeSink{}, nopLogger{})
	session, err := svc.Open(context.Background(), "fib", "cpp")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	added := session.AddTestCase()
	session.UpdateTestCase(added.ID, domain.FieldInput, "13")

	snap := session.Snapshot()
	if len(snap.TestCases) != 3 {
		t.Fatalf("expected 3 cases, got %d", len(snap.TestCases))
	}
	if snap.ActiveIndex != 2 {
		t.Fatalf("added case must be active, got %d", snap.ActiveIndex)
	}
	if snap.TestCases[2].Input != "13" {
		t.Fatalf("update must be visible in snapshot")
	}

	if !session.RemoveTestCase(added.ID) {
		t.Fatalf("remove failed")
	}
	snap = session.Snapshot()
	if len(snap.TestCases) != 2 || snap.ActiveIndex != 1 {
		t.Fatalf("remove must clamp selection, got len=%d active=%d", len(snap.TestCases), snap.ActiveIndex)
	}
}
