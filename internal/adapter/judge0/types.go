package judge0

import (
	"strconv"

	"github.com/Diploma-Survivors/vibe-match-workbench/internal/domain"
)

// Judge numeric status identifiers, Judge0 compatible
const (
	statusInQueue     = 1
	statusProcessing  = 2
	statusAccepted    = 3
	statusWrongAnswer = 4
	statusTimeLimit   = 5
	statusCompilation = 6
	statusRTSigsegv   = 7
	statusRTNzec      = 11
	statusRTOther     = 12
)

// batchCreateRequest is the body of POST /submissions/batch
type batchCreateRequest struct {
	Submissions []submissionEntry `json:"submissions"`
}

type submissionEntry struct {
	LanguageID     int    `json:"language_id"`
	SourceCode     string `json:"source_code"`
	Stdin          string `json:"stdin"`
	ExpectedOutput string `json:"expected_output"`
}

// tokenEntry is one element of the batch-create response
type tokenEntry struct {
	Token string `json:"token"`
}

// batchPollResponse is the body of GET /submissions/batch?tokens=...
type batchPollResponse struct {
	Submissions []submissionStatus `json:"submissions"`
}

type submissionStatus struct {
	Token         string  `json:"token"`
	StatusID      int     `json:"status_id"`
	Time          string  `json:"time"`
	Memory        float64 `json:"memory"`
	Stdout        string  `json:"stdout"`
	Stderr        string  `json:"stderr"`
	CompileOutput string  `json:"compile_output"`
}

func (s submissionStatus) settled() bool {
	return s.StatusID != statusInQueue && s.StatusID != statusProcessing
}

// toResult maps one settled judge entry onto the workbench result model.
// Time arrives as seconds in string form, memory in KB.
func (s submissionStatus) toResult(ordinalIndex int) domain.ExecutionResult {
	res := domain.ExecutionResult{
		OrdinalIndex: ordinalIndex,
		Status:       mapStatus(s.StatusID),
		MemoryKB:     s.Memory,
		Stdout:       s.Stdout,
		Stderr:       s.Stderr,
	}
	if seconds, err := strconv.ParseFloat(s.Time, 64); err == nil {
		res.TimeMs = seconds * 1000
	}
	if s.StatusID == statusCompilation && res.Stderr == "" {
		res.Stderr = s.CompileOutput
	}
	return res
}

func mapStatus(id int) domain.Status {
	switch {
	case id == statusAccepted:
		return domain.StatusAccepted
	case id == statusWrongAnswer:
		return domain.StatusWrongAnswer
	case id == statusTimeLimit:
		return domain.StatusTimeLimitExceeded
	case id >= statusRTSigsegv && id <= statusRTOther:
		return domain.StatusRuntimeError
	default:
		return domain.StatusOther
	}
}
