package secondary

import (
	"context"

	"github.com/Diploma-Survivors/vibe-match-workbench/internal/domain"
)

// SubmissionSink receives the scored record of a completed submit. The
// workbench core hands records off and never reads them back itself; listing
// exists for the history panel only.
type SubmissionSink interface {
	// SaveSubmission persists a submission record
	SaveSubmission(ctx context.Context, record *domain.SubmissionRecord) error

	// ListSubmissions retrieves recent submissions, optionally filtered by problem
	ListSubmissions(ctx context.Context, problemID string, limit int) ([]*domain.SubmissionRecord, error)
}
