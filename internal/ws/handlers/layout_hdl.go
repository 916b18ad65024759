package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/ports/primary"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/services/workbench"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/ws/defs"
)

// BeginDragHandler handles layout begin-drag intents
type BeginDragHandler struct {
	WorkbenchService workbench.IWorkbenchService
	Logger           primary.Logger
}

func NewBeginDragHandler(workbenchService workbench.IWorkbenchService, logger primary.Logger) *BeginDragHandler {
	return &BeginDragHandler{WorkbenchService: workbenchService, Logger: logger}
}

// HandleIntent implements the IntentHandler interface
func (h *BeginDragHandler) HandleIntent(ctx context.Context, sessionID string, payload []byte) error {
	session, ok := h.WorkbenchService.Get(sessionID)
	if !ok {
		return fmt.Errorf("session not found: %s", sessionID)
	}

	var data defs.DragData
	if err := json.Unmarshal(payload, &data); err != nil {
		h.Logger.Error("Failed to parse begin-drag intent", "sessionId", sessionID, "error", err)
		return err
	}

	session.BeginDrag(data.Axis)
	return nil
}

// PointerMoveHandler handles pointer samples during a divider drag
type PointerMoveHandler struct {
	WorkbenchService workbench.IWorkbenchService
	Logger           primary.Logger
}

func NewPointerMoveHandler(workbenchService workbench.IWorkbenchService, logger primary.Logger) *PointerMoveHandler {
	return &PointerMoveHandler{WorkbenchService: workbenchService, Logger: logger}
}

// HandleIntent implements the IntentHandler interface
func (h *PointerMoveHandler) HandleIntent(ctx context.Context, sessionID string, payload []byte) error {
	session, ok := h.WorkbenchService.Get(sessionID)
	if !ok {
		return fmt.Errorf("session not found: %s", sessionID)
	}

	var data defs.PointerMoveData
	if err := json.Unmarshal(payload, &data); err != nil {
		h.Logger.Error("Failed to parse pointer-move intent", "sessionId", sessionID, "error", err)
		return err
	}

	session.PointerMove(data.Axis, data.Bounds, data.Point)
	return nil
}

// EndDragHandler handles layout end-drag intents
type EndDragHandler struct {
	WorkbenchService workbench.IWorkbenchService
	Logger           primary.Logger
}

func NewEndDragHandler(workbenchService workbench.IWorkbenchService, logger primary.Logger) *EndDragHandler {
	return &EndDragHandler{WorkbenchService: workbenchService, Logger: logger}
}

// HandleIntent implements the IntentHandler interface
func (h *EndDragHandler) HandleIntent(ctx context.Context, sessionID string, payload []byte) error {
	session, ok := h.WorkbenchService.Get(sessionID)
	if !ok {
		return fmt.Errorf("session not found: %s", sessionID)
	}

	session.EndDrag()
	return nil
}
