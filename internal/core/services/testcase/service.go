package testcase

import (
	"github.com/google/uuid"

	"github.com/Diploma-Survivors/vibe-match-workbench/internal/domain"
)

// ITestCaseService is the ordered, mutable store of user-editable test cases
// for one workbench session. The store is never empty while the session is
// open: removal of the only remaining case is refused.
type ITestCaseService interface {
	// Seed replaces the store's content with the problem's sample cases
	Seed(samples []domain.Sample)

	// Add appends a new empty case in edit mode and makes it active
	Add() domain.TestCase

	// ToggleEdit flips edit mode on the referenced case only
	ToggleEdit(id uuid.UUID)

	// Update assigns input or expected output on the referenced case.
	// Unknown ids are a silent no-op.
	Update(id uuid.UUID, field domain.TestCaseField, value string)

	// Remove deletes the referenced case. Refused while only one case
	// remains; the active index is clamped into the remaining collection.
	Remove(id uuid.UUID) bool

	// SetActive selects a case by position, clamped into [0, len-1]
	SetActive(index int)

	// Cases returns a copy of the current collection
	Cases() []domain.TestCase

	// ActiveIndex returns the current selection
	ActiveIndex() int

	// Snapshot captures the collection into the immutable form an
	// execution request carries
	Snapshot() []domain.TestCaseSnapshot
}
