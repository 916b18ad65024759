package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/ports/primary"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/services/workbench"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/ws/defs"
)

// AddTestCaseHandler appends a fresh test case to the session store
type AddTestCaseHandler struct {
	WorkbenchService workbench.IWorkbenchService
	Logger           primary.Logger
}

func NewAddTestCaseHandler(workbenchService workbench.IWorkbenchService, logger primary.Logger) *AddTestCaseHandler {
	return &AddTestCaseHandler{WorkbenchService: workbenchService, Logger: logger}
}

// HandleIntent implements the IntentHandler interface
func (h *AddTestCaseHandler) HandleIntent(ctx context.Context, sessionID string, payload []byte) error {
	session, ok := h.WorkbenchService.Get(sessionID)
	if !ok {
		return fmt.Errorf("session not found: %s", sessionID)
	}

	session.AddTestCase()
	return nil
}

// ToggleEditHandler flips a test case between display and edit mode
type ToggleEditHandler struct {
	WorkbenchService workbench.IWorkbenchService
	Logger           primary.Logger
}

func NewToggleEditHandler(workbenchService workbench.IWorkbenchService, logger primary.Logger) *ToggleEditHandler {
	return &ToggleEditHandler{WorkbenchService: workbenchService, Logger: logger}
}

// HandleIntent implements the IntentHandler interface
func (h *ToggleEditHandler) HandleIntent(ctx context.Context, sessionID string, payload []byte) error {
	session, ok := h.WorkbenchService.Get(sessionID)
	if !ok {
		return fmt.Errorf("session not found: %s", sessionID)
	}

	var data defs.TestCaseRefData
	if err := json.Unmarshal(payload, &data); err != nil {
		h.Logger.Error("Failed to parse toggle-edit intent", "sessionId", sessionID, "error", err)
		return err
	}

	session.ToggleEdit(data.ID)
	return nil
}

// UpdateTestCaseHandler applies an in-place edit to a test case field
type UpdateTestCaseHandler struct {
	WorkbenchService workbench.IWorkbenchService
	Logger           primary.Logger
}

func NewUpdateTestCaseHandler(workbenchService workbench.IWorkbenchService, logger primary.Logger) *UpdateTestCaseHandler {
	return &UpdateTestCaseHandler{WorkbenchService: workbenchService, Logger: logger}
}

// HandleIntent implements the IntentHandler interface
func (h *UpdateTestCaseHandler) HandleIntent(ctx context.Context, sessionID string, payload []byte) error {
	session, ok := h.WorkbenchService.Get(sessionID)
	if !ok {
		return fmt.Errorf("session not found: %s", sessionID)
	}

	var data defs.TestCaseUpdateData
	if err := json.Unmarshal(payload, &data); err != nil {
		h.Logger.Error("Failed to parse update intent", "sessionId", sessionID, "error", err)
		return err
	}

	session.UpdateTestCase(data.ID, data.Field, data.Value)
	return nil
}

// RemoveTestCaseHandler deletes a test case, refusing to empty the store
type RemoveTestCaseHandler struct {
	WorkbenchService workbench.IWorkbenchService
	Logger           primary.Logger
}

func NewRemoveTestCaseHandler(workbenchService workbench.IWorkbenchService, logger primary.Logger) *RemoveTestCaseHandler {
	return &RemoveTestCaseHandler{WorkbenchService: workbenchService, Logger: logger}
}

// HandleIntent implements the IntentHandler interface
func (h *RemoveTestCaseHandler) HandleIntent(ctx context.Context, sessionID string, payload []byte) error {
	session, ok := h.WorkbenchService.Get(sessionID)
	if !ok {
		return fmt.Errorf("session not found: %s", sessionID)
	}

	var data defs.TestCaseRefData
	if err := json.Unmarshal(payload, &data); err != nil {
		h.Logger.Error("Failed to parse remove intent", "sessionId", sessionID, "error", err)
		return err
	}

	if !session.RemoveTestCase(data.ID) {
		h.Logger.Debug("Remove refused, store keeps at least one case", "sessionId", sessionID)
	}
	return nil
}

// SetActiveTestCaseHandler selects which test case tab is shown
type SetActiveTestCaseHandler struct {
	WorkbenchService workbench.IWorkbenchService
	Logger           primary.Logger
}

func NewSetActiveTestCaseHandler(workbenchService workbench.IWorkbenchService, logger primary.Logger) *SetActiveTestCaseHandler {
	return &SetActiveTestCaseHandler{WorkbenchService: workbenchService, Logger: logger}
}

// HandleIntent implements the IntentHandler interface
func (h *SetActiveTestCaseHandler) HandleIntent(ctx context.Context, sessionID string, payload []byte) error {
	session, ok := h.WorkbenchService.Get(sessionID)
	if !ok {
		return fmt.Errorf("session not found: %s", sessionID)
	}

	var data defs.SetActiveData
	if err := json.Unmarshal(payload, &data); err != nil {
		h.Logger.Error("Failed to parse set-active intent", "sessionId", sessionID, "error", err)
		return err
	}

	session.SetActiveTestCase(data.Index)
	return nil
}
