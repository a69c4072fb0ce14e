package handlers

import (
	"net/http"

	"github.com/anuarbek-t/sociograph/internal/services"
)

// SuggestionHandler handles HTTP requests for people and group suggestions.
type SuggestionHandler struct {
	Service *services.SuggestionService
}

func NewSuggestionHandler(service *services.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{Service: service}
}

// PeopleSuggestionsHandler returns people suggestions for the caller.
func (h *SuggestionHandler) PeopleSuggestionsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	result, err := h.Service.PeopleSuggestions(r.Context(), userID, pageOptions(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GroupSuggestionsHandler returns group suggestions for the caller.
func (h *SuggestionHandler) GroupSuggestionsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	result, err := h.Service.GroupSuggestions(r.Context(), userID, pageOptions(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
