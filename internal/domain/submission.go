package domain

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionRecord is the scored record produced by a completed submit.
// The workbench hands it to the history collaborator and does not retain it.
type SubmissionRecord struct {
	ID          uuid.UUID `json:"id" db:"id"`
	ProblemID   string    `json:"problemId" db:"problem_id"`
	Language    string    `json:"language" db:"language"`
	Status      Status    `json:"status" db:"status"`
	RuntimeMs   float64   `json:"runtimeMs" db:"runtime_ms"`
	MemoryKB    float64   `json:"memoryKb" db:"memory_kb"`
	Score       float64   `json:"score" db:"score"`
	SubmittedAt time.Time `json:"submittedAt" db:"submitted_at"`
}

// NewSubmissionRecord aggregates a full result set into one scored record.
// Worst status wins, runtime and memory are the observed maxima, score is the
// accepted fraction in percent.
func NewSubmissionRecord(problemID, language string, results []ExecutionResult) *SubmissionRecord {
	rec := &SubmissionRecord{
		ID:          uuid.New(),
		ProblemID:   problemID,
		Language:    language,
		Status:      StatusAccepted,
		SubmittedAt: time.Now(),
	}
	if len(results) == 0 {
		rec.Status = StatusOther
		return rec
	}
	accepted := 0
	for _, r := range results {
		rec.Status = WorseStatus(rec.Status, r.Status)
		if r.TimeMs > rec.RuntimeMs {
			rec.RuntimeMs = r.TimeMs
		}
		if r.MemoryKB > rec.MemoryKB {
			rec.MemoryKB = r.MemoryKB
		}
		if r.Status == StatusAccepted {
			accepted++
		}
	}
	rec.Score = float64(accepted) / float64(len(results)) * 100
	return rec
}
