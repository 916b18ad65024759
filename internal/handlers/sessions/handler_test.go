package sessions_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/ports/secondary"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/services/workbench"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/domain"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/handlers/sessions"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

type fakeProblems struct {
	problem *domain.Problem
}

func (f *fakeProblems) GetProblem(_ context.Context, problemID string) (*domain.Problem, error) {
	if f.problem == nil || f.problem.ID != problemID {
		return nil, secondary.ErrProblemNotFound
	}
	return f.problem, nil
}

type fakeJudge struct{}

func (fakeJudge) InvokeRun(_ context.Context, _ domain.ExecutionRequest) (<-chan domain.ExecutionResult, error) {
	ch := make(chan domain.ExecutionResult)
	close(ch)
	return ch, nil
}

func (fakeJudge) InvokeSubmit(_ context.Context, _ domain.ExecutionRequest) (<-chan domain.ExecutionResult, error) {
	ch := make(chan domain.ExecutionResult)
	close(ch)
	return ch, nil
}

type fakeSink struct{}

func (fakeSink) SaveSubmission(_ context.Context, _ *domain.SubmissionRecord) error { return nil }
func (fakeSink) ListSubmissions(_ context.Context, _ string, _ int) ([]*domain.SubmissionRecord, error) {
	return nil, nil
}

func newRouter(t *testing.T) (*mux.Router, workbench.IWorkbenchService) {
	t.Helper()

	problems := &fakeProblems{problem: &domain.Problem{
		ID:    "two-sum",
		Title: "Two Sum",
		TestcaseSamples: []domain.Sample{
			{Input: "1 2", Output: "3"},
			{Input: "4 5", Output: "9"},
		},
	}}

	svc := workbench.NewWorkbenchService(problems, fakeJudge{}, fakeSink{}, nopLogger{})
	router := mux.NewRouter()
	sessions.NewSessionHandler(svc, nopLogger{}).RegisterRoutes(router)
	return router, svc
}

func openSession(t *testing.T, router *mux.Router) workbench.Snapshot {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/workbench/sessions",
		strings.NewReader(`{"problemId":"two-sum","language":"python"}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("open session: got status %d, want %d", rec.Code, http.StatusCreated)
	}

	var snap workbench.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	return snap
}

func TestOpenSessionSeedsFromSamples(t *testing.T) {
	router, _ := newRouter(t)

	snap := openSession(t, router)

	if snap.SessionID == "" {
		t.Fatal("expected a session id")
	}
	if snap.ProblemTitle != "Two Sum" {
		t.Fatalf("got title %q", snap.ProblemTitle)
	}
	if len(snap.TestCases) != 2 {
		t.Fatalf("got %d test cases, want 2", len(snap.TestCases))
	}
	if snap.TestCases[0].Input != "1 2" || snap.TestCases[1].ExpectedOutput != "9" {
		t.Fatalf("samples not seeded: %+v", snap.TestCases)
	}
}

func TestOpenSessionUnknownProblem(t *testing.T) {
	router, _ := newRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/workbench/sessions",
		strings.NewReader(`{"problemId":"missing","language":"python"}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestGetSessionNotFound(t *testing.T) {
	router, _ := newRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/workbench/sessions/nope", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestRunRejectsEmptySource(t *testing.T) {
	router, _ := newRouter(t)
	snap := openSession(t, router)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/workbench/sessions/"+snap.SessionID+"/run",
		strings.NewReader(`{"sourceCode":"   ","language":"python"}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestRunAcceptedReturnsSnapshot(t *testing.T) {
	router, _ := newRouter(t)
	snap := openSession(t, router)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/workbench/sessions/"+snap.SessionID+"/run",
		strings.NewReader(`{"sourceCode":"print(1)","language":"python"}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusAccepted)
	}

	var after workbench.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &after); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if after.ViewMode != domain.ViewResult {
		t.Fatalf("got view mode %q, want %q", after.ViewMode, domain.ViewResult)
	}
}

func TestAddAndRemoveTestCases(t *testing.T) {
	router, _ := newRouter(t)
	snap := openSession(t, router)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/workbench/sessions/"+snap.SessionID+"/testcases", nil)
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add: got status %d, want %d", rec.Code, http.StatusCreated)
	}

	var added domain.TestCase
	if err := json.Unmarshal(rec.Body.Bytes(), &added); err != nil {
		t.Fatalf("decode test case: %v", err)
	}
	if !added.IsEditing {
		t.Fatal("fresh test case should open in edit mode")
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete,
		"/api/workbench/sessions/"+snap.SessionID+"/testcases/"+added.ID.String(), nil)
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove: got status %d, want %d", rec.Code, http.StatusOK)
	}

	var after workbench.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &after); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if len(after.TestCases) != 2 {
		t.Fatalf("got %d test cases, want 2", len(after.TestCases))
	}
}

func TestRemoveLastTestCaseRefused(t *testing.T) {
	router, svc := newRouter(t)
	snap := openSession(t, router)

	session, ok := svc.Get(snap.SessionID)
	if !ok {
		t.Fatal("session vanished")
	}
	// Drain down to a single case
	for len(session.Snapshot().TestCases) > 1 {
		session.RemoveTestCase(session.Snapshot().TestCases[0].ID)
	}
	last := session.Snapshot().TestCases[0]

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete,
		"/api/workbench/sessions/"+snap.SessionID+"/testcases/"+last.ID.String(), nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestSetViewRejectsUnknownMode(t *testing.T) {
	router, _ := newRouter(t)
	snap := openSession(t, router)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/workbench/sessions/"+snap.SessionID+"/view",
		strings.NewReader(`{"mode":"SPLIT"}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestSetLayoutClampsRatio(t *testing.T) {
	router, _ := newRouter(t)
	snap := openSession(t, router)

	body := `{"axis":"HORIZONTAL","bounds":{"left":0,"top":0,"width":1000,"height":600},"point":{"x":990,"y":10}}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/workbench/sessions/"+snap.SessionID+"/layout",
		strings.NewReader(body))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusOK)
	}

	var after workbench.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &after); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if after.Layout.HorizontalRatio != domain.RatioMax {
		t.Fatalf("got ratio %v, want clamp to %v", after.Layout.HorizontalRatio, domain.RatioMax)
	}
}

func TestCloseSession(t *testing.T) {
	router, svc := newRouter(t)
	snap := openSession(t, router)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/workbench/sessions/"+snap.SessionID, nil)
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusNoContent)
	}

	if _, ok := svc.Get(snap.SessionID); ok {
		t.Fatal("session should be gone")
	}
}
