package handlers

import (
	"net/http"

	"github.com/anuarbek-t/sociograph/internal/services"
	log "github.com/sirupsen/logrus"
)

// BlockHandler handles HTTP requests for block edges.
type BlockHandler struct {
	Service *services.BlockService
}

func NewBlockHandler(service *services.BlockService) *BlockHandler {
	return &BlockHandler{Service: service}
}

// BlockUserHandler blocks the user in the path.
func (h *BlockHandler) BlockUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	targetID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	block, err := h.Service.BlockUser(r.Context(), userID, targetID)
	if err != nil {
		writeError(w, err)
		return
	}

	log.WithFields(log.Fields{
		"blockerID": userID.Hex(),
		"blockedID": targetID.Hex(),
	}).Info("User blocked")
	writeJSON(w, http.StatusCreated, block)
}

// UnblockUserHandler removes the caller's block on the user in the path.
func (h *BlockHandler) UnblockUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	targetID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.Service.UnblockUser(r.Context(), userID, targetID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "unblocked"})
}

// BlockedUsersHandler lists who the caller blocked.
func (h *BlockHandler) BlockedUsersHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	result, err := h.Service.BlockedUsers(r.Context(), userID, pageOptions(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
