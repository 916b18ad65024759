package results_test

import (
	"reflect"
	"testing"

	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/services/results"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

func res(idx int, status domain.Status) domain.ExecutionResult {
	return domain.ExecutionResult{OrdinalIndex: idx, Status: status, Stdout: "out"}
}

func TestMergeIsOrderIndependent(t *testing.T) {
	inOrder := results.NewResultService(nopLogger{})
	inOrder.Reset(domain.KindRun, 1, 3)
	for _, i := range []int{0, 1, 2} {
		inOrder.Apply(domain.KindRun, 1, res(i, domain.StatusAccepted))
	}

	shuffled := results.NewResultService(nopLogger{})
	shuffled.Reset(domain.KindRun, 1, 3)
	for _, i := range []int{2, 0, 1} {
		shuffled.Apply(domain.KindRun, 1, res(i, domain.StatusAccepted))
	}

	if !reflect.DeepEqual(inOrder.Results(domain.KindRun), shuffled.Results(domain.KindRun)) {
		t.Fatalf("delivery order [2,0,1] must merge to the same state as [0,1,2]")
	}
}

func TestApplyReplacesSameIndex(t *testing.T) {
	svc := results.NewResultService(nopLogger{})
	svc.Reset(domain.KindRun, 1, 2)

	svc.Apply(domain.KindRun, 1, res(0, domain.StatusWrongAnswer))
	svc.Apply(domain.KindRun, 1, res(0, domain.StatusAccepted))

	got, ok := svc.ResultAt(domain.KindRun, 0)
	if !ok || got.Status != domain.StatusAccepted {
		t.Fatalf("later result must replace earlier one at same index, got %+v", got)
	}
}

func TestStaleGenerationIsDiscarded(t *testing.T) {
	svc := results.NewResultService(nopLogger{})
	svc.Reset(domain.KindRun, 1, 2)
	svc.Reset(domain.KindRun, 2, 2)

	if svc.Apply(domain.KindRun, 1, res(0, domain.StatusAccepted)) {
		t.Fatalf("result from superseded generation must be discarded")
	}
	if _, ok := svc.ResultAt(domain.KindRun, 0); ok {
		t.Fatalf("stale result must not be visible in the current generation")
	}
}

func TestOutOfRangeOrdinalIsDropped(t *testing.T) {
	svc := results.NewResultService(nopLogger{})
	svc.Reset(domain.KindRun, 1, 2)

	if svc.Apply(domain.KindRun, 1, res(5, domain.StatusAccepted)) {
		t.Fatalf("out-of-range ordinal must be dropped")
	}
	if svc.Apply(domain.KindRun, 1, res(-1, domain.StatusAccepted)) {
		t.Fatalf("negative ordinal must be dropped")
	}
}

func TestResultAtBeforeArrivalIsEmpty(t *testing.T) {
	svc := results.NewResultService(nopLogger{})
	svc.Reset(domain.KindRun, 1, 3)

	if _, ok := svc.ResultAt(domain.KindRun, 1); ok {
		t.Fatalf("no result has arrived for index 1")
	}
}

func TestKindsAreNeverCrossMerged(t *testing.T) {
	svc := results.NewResultService(nopLogger{})
	svc.Reset(domain.KindRun, 1, 2)
	svc.Reset(domain.KindSubmit, 1, 2)

	svc.Apply(domain.KindRun, 1, res(0, domain.StatusWrongAnswer))

	if _, ok := svc.ResultAt(domain.KindSubmit, 0); ok {
		t.Fatalf("run results must not leak into submit state")
	}
}

func TestFirstResultHookFiresOncePerGeneration(t *testing.T) {
	svc := results.NewResultService(nopLogger{})
	fired := 0
	svc.SetOnFirstResult(func(domain.RunKind) { fired++ })

	svc.Reset(domain.KindRun, 1, 3)
	svc.Apply(domain.KindRun, 1, res(0, domain.StatusAccepted))
	svc.Apply(domain.KindRun, 1, res(1, domain.StatusAccepted))
	if fired != 1 {
		t.Fatalf("hook must fire exactly once per generation, fired %d", fired)
	}

	svc.Reset(domain.KindRun, 2, 3)
	svc.Apply(domain.KindRun, 2, res(0, domain.StatusAccepted))
	if fired != 2 {
		t.Fatalf("new generation must re-arm the hook, fired %d", fired)
	}
}
