package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/ports/primary"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/services/workbench"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/domain"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/ws/defs"
)

// SetViewModeHandler switches the test panel between Testcase and Result tabs
type SetViewModeHandler struct {
	WorkbenchService workbench.IWorkbenchService
	Logger           primary.Logger
}

func NewSetViewModeHandler(workbenchService workbench.IWorkbenchService, logger primary.Logger) *SetViewModeHandler {
	return &SetViewModeHandler{WorkbenchService: workbenchService, Logger: logger}
}

// HandleIntent implements the IntentHandler interface
func (h *SetViewModeHandler) HandleIntent(ctx context.Context, sessionID string, payload []byte) error {
	session, ok := h.WorkbenchService.Get(sessionID)
	if !ok {
		return fmt.Errorf("session not found: %s", sessionID)
	}

	var data defs.ViewSetData
	if err := json.Unmarshal(payload, &data); err != nil {
		h.Logger.Error("Failed to parse view intent", "sessionId", sessionID, "error", err)
		return err
	}

	if data.Mode != domain.ViewTestcase && data.Mode != domain.ViewResult {
		return fmt.Errorf("unknown view mode: %s", data.Mode)
	}

	session.SetViewMode(data.Mode)
	return nil
}
