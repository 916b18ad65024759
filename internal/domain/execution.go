package domain

// Status represents the outcome of one test case execution
type Status string

const (
	StatusAccepted          Status = "ACCEPTED"
	StatusWrongAnswer       Status = "WRONG_ANSWER"
	StatusTimeLimitExceeded Status = "TIME_LIMIT_EXCEEDED"
	StatusRuntimeError      Status = "RUNTIME_ERROR"
	StatusOther             Status = "OTHER"
)

// RunKind distinguishes the two execution pipelines
type RunKind string

const (
	KindRun    RunKind = "RUN"
	KindSubmit RunKind = "SUBMIT"
)

// ExecState is the per-kind orchestrator state
type ExecState string

const (
	ExecIdle     ExecState = "IDLE"
	ExecInFlight ExecState = "IN_FLIGHT"
)

// ViewMode is the test panel's current tab
type ViewMode string

const (
	ViewTestcase ViewMode = "TESTCASE"
	ViewResult   ViewMode = "RESULT"
)

// ExecutionRequest is the immutable snapshot dispatched to the judge.
// Generation tags every result derived from this request so that stale
// deliveries from a superseded request can be discarded.
type ExecutionRequest struct {
	Kind       RunKind            `json:"kind"`
	Generation uint64             `json:"generation"`
	ProblemID  string             `json:"problemId"`
	LanguageID int                `json:"languageId"`
	SourceCode string             `json:"sourceCode"`
	TestCases  []TestCaseSnapshot `json:"testCases"`
}

// ExecutionResult is one per-test-case outcome delivered asynchronously by
// the judge. OrdinalIndex is the position in the request's snapshot, not in
// the live, possibly mutated test case list.
type ExecutionResult struct {
	OrdinalIndex   int     `json:"ordinalIndex"`
	Status         Status  `json:"status"`
	TimeMs         float64 `json:"timeMs"`
	MemoryKB       float64 `json:"memoryKb"`
	Stdout         string  `json:"stdout"`
	Stderr         string  `json:"stderr"`
	ExpectedOutput string  `json:"expectedOutput"`
}

// statusRank orders statuses from best to worst for aggregation
var statusRank = map[Status]int{
	StatusAccepted:          0,
	StatusWrongAnswer:       1,
	StatusRuntimeError:      2,
	StatusTimeLimitExceeded: 3,
	StatusOther:             4,
}

// WorseStatus returns the worse of two statuses
func WorseStatus(a, b Status) Status {
	if statusRank[b] > statusRank[a] {
		return b
	}
	return a
}
