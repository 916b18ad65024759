package submissions

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/ports/primary"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/ports/secondary"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/domain"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/handlers/response"
)

// SubmissionHandler serves the submission history panel
type SubmissionHandler struct {
	submissionSink secondary.SubmissionSink
	logger         primary.Logger
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(submissionSink secondary.SubmissionSink, logger primary.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		submissionSink: submissionSink,
		logger:         logger,
	}
}

// RegisterRoutes registers the API routes for SubmissionHandler
func (h *SubmissionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/submissions", h.ListSubmissions).Methods("GET")
}

// ListSubmissions handles submission history requests
func (h *SubmissionHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	problemID := r.URL.Query().Get("problemId")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	records, err := h.submissionSink.ListSubmissions(r.Context(), problemID, limit)
	if err != nil {
		h.logger.Error("Failed to list submissions", "problemId", problemID, "error", err)
		http.Error(w, "Failed to list submissions", http.StatusInternalServerError)
		return
	}

	if records == nil {
		records = []*domain.SubmissionRecord{}
	}
	response.WriteSuccess(w, map[string][]*domain.SubmissionRecord{"submissions": records})
}
