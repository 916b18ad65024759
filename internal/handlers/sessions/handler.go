package sessions

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/ports/primary"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/ports/secondary"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/services/execution"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/services/workbench"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/domain"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/handlers/response"
)

// SessionHandler handles workbench session API requests
type SessionHandler struct {
	workbenchService workbench.IWorkbenchService
	logger           primary.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(workbenchService workbench.IWorkbenchService, logger primary.Logger) *SessionHandler {
	return &SessionHandler{
		workbenchService: workbenchService,
		logger:           logger,
	}
}

// RegisterRoutes registers the API routes for SessionHandler
func (h *SessionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/workbench/sessions", h.OpenSession).Methods("POST")
	router.HandleFunc("/api/workbench/sessions/{id}", h.GetSession).Methods("GET")
	router.HandleFunc("/api/workbench/sessions/{id}", h.CloseSession).Methods("DELETE")
	router.HandleFunc("/api/workbench/sessions/{id}/run", h.Run).Methods("POST")
	router.HandleFunc("/api/workbench/sessions/{id}/submit", h.Submit).Methods("POST")
	router.HandleFunc("/api/workbench/sessions/{id}/testcases", h.AddTestCase).Methods("POST")
	router.HandleFunc("/api/workbench/sessions/{id}/testcases/active", h.SetActiveTestCase).Methods("PUT")
	router.HandleFunc("/api/workbench/sessions/{id}/testcases/{caseId}", h.UpdateTestCase).Methods("PATCH")
	router.HandleFunc("/api/workbench/sessions/{id}/testcases/{caseId}", h.RemoveTestCase).Methods("DELETE")
	router.HandleFunc("/api/workbench/sessions/{id}/testcases/{caseId}/edit", h.ToggleEdit).Methods("POST")
	router.HandleFunc("/api/workbench/sessions/{id}/view", h.SetView).Methods("PUT")
	router.HandleFunc("/api/workbench/sessions/{id}/layout", h.SetLayout).Methods("PUT")
}

// OpenSession handles session creation requests
func (h *SessionHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	var req OpenSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if req.ProblemID == "" {
		http.Error(w, "problemId is required", http.StatusBadRequest)
		return
	}

	session, err := h.workbenchService.Open(r.Context(), req.ProblemID, req.Language)
	if err != nil {
		if errors.Is(err, secondary.ErrProblemNotFound) {
			response.WriteError(w, response.ErrorMessage{Message: "Problem not found", StatusCode: http.StatusNotFound})
			return
		}
		h.logger.Error("Failed to open session", "problemId", req.ProblemID, "error", err)
		http.Error(w, "Failed to open session", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(session.Snapshot())
}

// GetSession handles session snapshot requests
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	response.WriteSuccess(w, session.Snapshot())
}

// CloseSession handles session teardown requests
func (h *SessionHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	if !h.workbenchService.Close(sessionID) {
		response.WriteError(w, response.ErrorMessage{Message: "Session not found", StatusCode: http.StatusNotFound})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Run handles run requests over the session's current test cases
func (h *SessionHandler) Run(w http.ResponseWriter, r *http.Request) {
	h.exec(w, r, domain.KindRun)
}

// Submit handles submission requests
func (h *SessionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	h.exec(w, r, domain.KindSubmit)
}

func (h *SessionHandler) exec(w http.ResponseWriter, r *http.Request, kind domain.RunKind) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var req ExecRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	var err error
	if kind == domain.KindSubmit {
		err = session.Submit(r.Context(), req.SourceCode, req.Language)
	} else {
		err = session.Run(r.Context(), req.SourceCode, req.Language)
	}
	if err != nil {
		if errors.Is(err, execution.ErrEmptySource) {
			response.WriteError(w, response.ErrorMessage{Message: "Source code is empty", StatusCode: http.StatusUnprocessableEntity})
			return
		}
		h.logger.Error("Failed to start execution", "kind", kind, "error", err)
		http.Error(w, "Failed to start execution", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(session.Snapshot())
}

// AddTestCase appends a fresh test case and returns it
func (h *SessionHandler) AddTestCase(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	tc := session.AddTestCase()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(tc)
}

// UpdateTestCase applies an in-place edit to one test case field
func (h *SessionHandler) UpdateTestCase(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	caseID, ok := h.caseID(w, r)
	if !ok {
		return
	}

	var req UpdateTestCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if req.Field != domain.FieldInput && req.Field != domain.FieldExpectedOutput {
		http.Error(w, "Unknown test case field", http.StatusBadRequest)
		return
	}

	session.UpdateTestCase(caseID, req.Field, req.Value)
	response.WriteSuccess(w, session.Snapshot())
}

// RemoveTestCase deletes a test case, refusing to empty the store
func (h *SessionHandler) RemoveTestCase(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	caseID, ok := h.caseID(w, r)
	if !ok {
		return
	}

	if !session.RemoveTestCase(caseID) {
		response.WriteError(w, response.ErrorMessage{Message: "Cannot remove the last test case", StatusCode: http.StatusConflict})
		return
	}
	response.WriteSuccess(w, session.Snapshot())
}

// ToggleEdit flips a test case between display and edit mode
func (h *SessionHandler) ToggleEdit(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	caseID, ok := h.caseID(w, r)
	if !ok {
		return
	}

	session.ToggleEdit(caseID)
	response.WriteSuccess(w, session.Snapshot())
}

// SetActiveTestCase selects which test case tab is shown
func (h *SessionHandler) SetActiveTestCase(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var req SetActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	session.SetActiveTestCase(req.Index)
	response.WriteSuccess(w, session.Snapshot())
}

// SetView switches the test panel between Testcase and Result tabs
func (h *SessionHandler) SetView(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var req SetViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if req.Mode != domain.ViewTestcase && req.Mode != domain.ViewResult {
		http.Error(w, "Unknown view mode", http.StatusBadRequest)
		return
	}

	session.SetViewMode(req.Mode)
	response.WriteSuccess(w, session.Snapshot())
}

// SetLayout applies a one-shot divider drag for non-WebSocket clients
func (h *SessionHandler) SetLayout(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var req SetLayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	session.BeginDrag(req.Axis)
	session.PointerMove(req.Axis, req.Bounds, req.Point)
	session.EndDrag()
	response.WriteSuccess(w, session.Snapshot())
}

func (h *SessionHandler) session(w http.ResponseWriter, r *http.Request) (*workbench.Session, bool) {
	sessionID := mux.Vars(r)["id"]
	session, ok := h.workbenchService.Get(sessionID)
	if !ok {
		response.WriteError(w, response.ErrorMessage{Message: "Session not found", StatusCode: http.StatusNotFound})
		return nil, false
	}
	return session, true
}

func (h *SessionHandler) caseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := mux.Vars(r)["caseId"]
	id, err := uuid.Parse(raw)
	if err != nil {
		h.logger.Error("Invalid test case ID", "id", raw)
		http.Error(w, "Invalid test case ID", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}
