package problems

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/ports/primary"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/ports/secondary"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/handlers/response"
)

// ProblemHandler handles problem lookup requests
type ProblemHandler struct {
	problemSource secondary.ProblemSource
	logger        primary.Logger
}

// NewProblemHandler creates a new problem handler
func NewProblemHandler(problemSource secondary.ProblemSource, logger primary.Logger) *ProblemHandler {
	return &ProblemHandler{
		problemSource: problemSource,
		logger:        logger,
	}
}

// RegisterRoutes registers the API routes for ProblemHandler
func (h *ProblemHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/problems/{problemId}", h.GetProblem).Methods("GET")
}

// GetProblem handles problem retrieval requests
func (h *ProblemHandler) GetProblem(w http.ResponseWriter, r *http.Request) {
	problemID := mux.Vars(r)["problemId"]

	problem, err := h.problemSource.GetProblem(r.Context(), problemID)
	if err != nil {
		if errors.Is(err, secondary.ErrProblemNotFound) {
			response.WriteError(w, response.ErrorMessage{Message: "Problem not found", StatusCode: http.StatusNotFound})
			return
		}
		h.logger.Error("Failed to get problem", "problemId", problemID, "error", err)
		http.Error(w, "Failed to get problem", http.StatusInternalServerError)
		return
	}

	response.WriteSuccess(w, problem)
}
