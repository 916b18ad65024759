package languages

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Diploma-Survivors/vibe-match-workbench/internal/core/ports/primary"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/handlers/response"
	"github.com/Diploma-Survivors/vibe-match-workbench/internal/static/languages"
)

// LanguageHandler serves the editor language catalog
type LanguageHandler struct {
	logger primary.Logger
}

// NewLanguageHandler creates a new language handler
func NewLanguageHandler(logger primary.Logger) *LanguageHandler {
	return &LanguageHandler{logger: logger}
}

// RegisterRoutes registers the API routes for LanguageHandler
func (h *LanguageHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/languages", h.GetLanguages).Methods("GET")
}

// LanguageEntry pairs a language name with its judge identifier
type LanguageEntry struct {
	Name string `json:"name"`
	ID   int    `json:"id"`
}

// GetLanguages handles language catalog requests
func (h *LanguageHandler) GetLanguages(w http.ResponseWriter, r *http.Request) {
	names := languages.Names()
	entries := make([]LanguageEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, LanguageEntry{Name: name, ID: languages.Resolve(name)})
	}
	response.WriteSuccess(w, map[string][]LanguageEntry{"languages": entries})
}
