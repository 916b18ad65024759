package secondary

import (
	"context"
	"errors"

	"github.com/Diploma-Survivors/vibe-match-workbench/internal/domain"
)

// ErrProblemNotFound is returned when the content API has no such problem
var ErrProblemNotFound = errors.New("problem not found")

// ProblemSource serves problem metadata, including the sample test cases the
// workbench seeds its store from.
type ProblemSource interface {
	// GetProblem retrieves a problem by ID
	GetProblem(ctx context.Context, problemID string) (*domain.Problem, error)
}
