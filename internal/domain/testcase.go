package domain

import "github.com/google/uuid"

// TestCase represents one user-editable input/expected-output pair
type TestCase struct {
	ID             uuid.UUID `json:"id"`
	Input          string    `json:"input"`
	ExpectedOutput string    `json:"expectedOutput"`
	IsEditing      bool      `json:"isEditing"`
}

// NewTestCase creates an empty test case in edit mode
func NewTestCase() TestCase {
	return TestCase{
		ID:        uuid.New(),
		IsEditing: true,
	}
}

// TestCaseField names an editable test case field
type TestCaseField string

const (
	FieldInput          TestCaseField = "input"
	FieldExpectedOutput TestCaseField = "output"
)

// TestCaseSnapshot is the immutable form of a test case captured into an
// execution request. Results correlate back to it by ordinal position only.
type TestCaseSnapshot struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expectedOutput"`
}
