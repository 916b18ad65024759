package layout

import "github.com/Diploma-Survivors/vibe-match-workbench/internal/domain"

// ILayoutService drives the workbench's two split handles. It is a pure
// state machine: the transport layer owns the platform pointer events and
// feeds samples in, the service never touches them.
type ILayoutService interface {
	// BeginDrag marks the given axis as the active drag
	BeginDrag(axis domain.DragAxis)

	// PointerMove converts a pointer sample into a clamped ratio on the
	// active axis. Samples for a non-active axis are ignored.
	PointerMove(axis domain.DragAxis, bounds domain.Bounds, pos domain.Point)

	// EndDrag clears the active drag. Safe to call with no drag active.
	EndDrag()

	// State returns a snapshot of the current layout
	State() domain.LayoutState
}
