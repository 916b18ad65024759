package testcase

import (
	"sync"

	"github.com/google/uuid"

	"github.com/Diploma-Survivors/vibe-match-workbench/internal/domain"
)

var _ ITestCaseService = (*TestCaseService)(nil)

// TestCaseService implements the ITestCaseService interface
type TestCaseService struct {
	mu     sync.Mutex
	cases  []domain.TestCase
	active int
}

// NewTestCaseService creates a store holding a single blank case, so the
// never-empty invariant holds even before seeding.
func NewTestCaseService() *TestCaseService {
	return &TestCaseService{
		cases: []domain.TestCase{newBlankCase()},
	}
}

func newBlankCase() domain.TestCase {
	return domain.TestCase{ID: uuid.New()}
}

// Seed replaces the store's content with the problem's sample cases
func (s *TestCaseService) Seed(samples []domain.Sample) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(samples) == 0 {
		s.cases = []domain.TestCase{newBlankCase()}
		s.active = 0
		return
	}

	cases := make([]domain.TestCase, 0, len(samples))
	for _, sample := range samples {
		id, err := uuid.Parse(sample.ID)
		if err != nil {
			id = uuid.New()
		}
		cases = append(cases, domain.TestCase{
			ID:             id,
			Input:          sample.Input,
			ExpectedOutput: sample.Output,
		})
	}
	s.cases = cases
	s.active = 0
}

// Add appends a new empty case in edit mode and makes it active
func (s *TestCaseService) Add() domain.TestCase {
	s.mu.Lock()
	defer s.mu.Unlock()

	tc := domain.NewTestCase()
	s.cases = append(s.cases, tc)
	s.active = len(s.cases) - 1
	return tc
}

// ToggleEdit flips edit mode on the referenced case only
func (s *TestCaseService) ToggleEdit(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cases {
		if s.cases[i].ID == id {
			s.cases[i].IsEditing = !s.cases[i].IsEditing
			return
		}
	}
}

// Update assigns input or expected output on the referenced case
func (s *TestCaseService) Update(id uuid.UUID, field domain.TestCaseField, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cases {
		if s.cases[i].ID != id {
			continue
		}
		switch field {
		case domain.FieldInput:
			s.cases[i].Input = value
		case domain.FieldExpectedOutput:
			s.cases[i].ExpectedOutput = value
		}
		return
	}
}

// Remove deletes the referenced case, keeping the active index valid
func (s *TestCaseService) Remove(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.cases) <= 1 {
		return false
	}

	for i := range s.cases {
		if s.cases[i].ID != id {
			continue
		}
		s.cases = append(s.cases[:i], s.cases[i+1:]...)
		if s.active >= len(s.cases) {
			s.active = len(s.cases) - 1
		}
		if s.active < 0 {
			s.active = 0
		}
		return true
	}
	return false
}

// SetActive selects a case by position, clamped into [0, len-1]
func (s *TestCaseService) SetActive(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 {
		index = 0
	}
	if index > len(s.cases)-1 {
		index = len(s.cases) - 1
	}
	s.active = index
}

// Cases returns a copy of the current collection
func (s *TestCaseService) Cases() []domain.TestCase {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.TestCase, len(s.cases))
	copy(out, s.cases)
	return out
}

// ActiveIndex returns the current selection
func (s *TestCaseService) ActiveIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Snapshot captures the collection into immutable request form
func (s *TestCaseService) Snapshot() []domain.TestCaseSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.TestCaseSnapshot, len(s.cases))
	for i, tc := range s.cases {
		out[i] = domain.TestCaseSnapshot{
			Input:          tc.Input,
			ExpectedOutput: tc.ExpectedOutput,
		}
	}
	return out
}
