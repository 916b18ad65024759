package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/ports/primary"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/services/workbench"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/ws/defs"
)

// RunHandler launches a run over the session's current test cases
type RunHandler struct {
	WorkbenchService workbench.IWorkbenchService
	Logger           primary.Logger
}

func NewRunHandler(workbenchService workbench.IWorkbenchService, logger primary.Logger) *RunHandler {
	return &RunHandler{WorkbenchService: workbenchService, Logger: logger}
}

// HandleIntent implements the IntentHandler interface
func (h *RunHandler) HandleIntent(ctx context.Context, sessionID string, payload []byte) error {
	session, ok := h.WorkbenchService.Get(sessionID)
	if !ok {
		return fmt.Errorf("session not found: %s", sessionID)
	}

	var data defs.ExecData
	if err := json.Unmarshal(payload, &data); err != nil {
		h.Logger.Error("Failed to parse run intent", "sessionId", sessionID, "error", err)
		return err
	}

	return session.Run(ctx, data.SourceCode, data.Language)
}

// SubmitHandler launches a submission against the problem's judge test set
type SubmitHandler struct {
	WorkbenchService workbench.IWorkbenchService
	Logger           primary.Logger
}

func NewSubmitHandler(workbenchService workbench.IWorkbenchService, logger primary.Logger) *SubmitHandler {
	return &SubmitHandler{WorkbenchService: workbenchService, Logger: logger}
}

// HandleIntent implements the IntentHandler interface
func (h *SubmitHandler) HandleIntent(ctx context.Context, sessionID string, payload []byte) error {
	session, ok := h.WorkbenchService.Get(sessionID)
	if !ok {
		return fmt.Errorf("session not found: %s", sessionID)
	}

	var data defs.ExecData
	if err := json.Unmarshal(payload, &data); err != nil {
		h.Logger.Error("Failed to parse submit intent", "sessionId", sessionID, "error", err)
		return err
	}

	return session.Submit(ctx, data.SourceCode, data.Language)
}
