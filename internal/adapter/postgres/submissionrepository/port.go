// package submissionrepository contains the PostgreSQL implementation of the
// submission history sink
package submissionrepository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/ports/primary"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/ports/secondary"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/domain"
	querybuilder "github.com/Diploma-Survivors/vibe-match-workbench/internal/utils"
)

const defaultListLimit = 50

var _ secondary.SubmissionSink = (*SubmissionRepository)(nil)

// SubmissionRepository implements the SubmissionSink port with PostgreSQL
type SubmissionRepository struct {
	db     *sqlx.DB
	logger primary.Logger
}

// NewSubmissionRepository creates a new PostgreSQL submission repository
func NewSubmissionRepository(db *sqlx.DB, logger primary.Logger) *SubmissionRepository {
	return &SubmissionRepository{
		db:     db,
		logger: logger,
	}
}

// SaveSubmission persists a submission record
func (r *SubmissionRepository) SaveSubmission(ctx context.Context, record *domain.SubmissionRecord) error {
	query, args := querybuilder.New().
		Into("submissions").
		Insert("id", "problem_id", "language", "status", "runtime_ms", "memory_kb", "score", "submitted_at").
		Values(
			record.ID,
			record.ProblemID,
			record.Language,
			record.Status,
			record.RuntimeMs,
			record.MemoryKB,
			record.Score,
			record.SubmittedAt,
		).
		Build()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("Failed to save submission", "submissionId", record.ID, "error", err)
		return fmt.Errorf("failed to save submission: %w", err)
	}
	return nil
}

// ListSubmissions retrieves recent submissions, newest first
func (r *SubmissionRepository) ListSubmissions(ctx context.Context, problemID string, limit int) ([]*domain.SubmissionRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	qb := querybuilder.New().
		Select("id", "problem_id", "language", "status", "runtime_ms", "memory_kb", "score", "submitted_at").
		From("submissions")
	if problemID != "" {
		qb = qb.Where("problem_id = ?", problemID)
	}
	query, args := qb.
		OrderBy("submitted_at", false).
		Limit(limit).
		Build()

	var records []*domain.SubmissionRecord
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		r.logger.Error("Failed to list submissions", "problemId", problemID, "error", err)
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return records, nil
}
