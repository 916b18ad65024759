package layout

import (
	"sync"

	"github.com/Diploma-Survivors/vibe-match-workbench/internal/domain"
)

var _ ILayoutService = (*LayoutService)(nil)

// LayoutService implements the ILayoutService interface
type LayoutService struct {
	mu    sync.Mutex
	state domain.LayoutState
}

// NewLayoutService creates a layout service with default 50/50 splits
func NewLayoutService() *LayoutService {
	return &LayoutService{
		state: domain.NewLayoutState(),
	}
}

// BeginDrag marks the given axis as the active drag
func (s *LayoutService) BeginDrag(axis domain.DragAxis) {
	if axis == domain.DragNone {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.DragAxis = axis
}

// PointerMove updates the ratio matching the active axis from a pointer
// sample. Samples arriving for another axis, or with degenerate container
// geometry, are ignored and the last valid ratio is retained.
func (s *LayoutService) PointerMove(axis domain.DragAxis, bounds domain.Bounds, pos domain.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if axis == domain.DragNone || axis != s.state.DragAxis {
		return
	}

	switch axis {
	case domain.DragHorizontal:
		if bounds.Width <= 0 {
			return
		}
		s.state.HorizontalRatio = clampRatio((pos.X - bounds.Left) / bounds.Width * 100)
	case domain.DragVertical:
		if bounds.Height <= 0 {
			return
		}
		s.state.VerticalRatio = clampRatio((pos.Y - bounds.Top) / bounds.Height * 100)
	}
}

// EndDrag clears the active drag unconditionally
func (s *LayoutService) EndDrag() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.DragAxis = domain.DragNone
}

// State returns a snapshot of the current layout
func (s *LayoutService) State() domain.LayoutState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func clampRatio(v float64) float64 {
	if v < domain.RatioMin {
		return domain.RatioMin
	}
	if v > domain.RatioMax {
		return domain.RatioMax
	}
	return v
}
