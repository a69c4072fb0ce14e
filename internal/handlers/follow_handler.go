package handlers

import (
	"net/http"

	"github.com/anuarbek-t/sociograph/internal/services"
	log "github.com/sirupsen/logrus"
)

// FollowHandler handles HTTP requests for follow edges.
type FollowHandler struct {
	Service *services.FollowService
}

func NewFollowHandler(service *services.FollowService) *FollowHandler {
	return &FollowHandler{Service: service}
}

// FollowUserHandler creates a follow edge to the user in the path.
func (h *FollowHandler) FollowUserHandler(w http.ResponseWriter, r *http.Request) {
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

	follow, err := h.Service.Follow(r.Context(), userID, targetID)
	if err != nil {
		writeError(w, err)
		return
	}

	log.WithFields(log.Fields{
		"followerID": userID.Hex(),
		"followedID": targetID.Hex(),
	}).Info("User followed")
	writeJSON(w, http.StatusCreated, follow)
}

// UnfollowUserHandler removes the follow edge to the user in the path.
func (h *FollowHandler) UnfollowUserHandler(w http.ResponseWriter, r *http.Request) {
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

	if err := h.Service.Unfollow(r.Context(), userID, targetID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "unfollowed"})
}

// FollowersHandler lists the followers of the user in the path.
func (h *FollowHandler) FollowersHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.Service.Followers(r.Context(), userID, pageOptions(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// FollowingHandler lists who the user in the path follows.
func (h *FollowHandler) FollowingHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.Service.Following(r.Context(), userID, pageOptions(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// FollowCountsHandler returns follower/following totals.
func (h *FollowHandler) FollowCountsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	followers, following, err := h.Service.Counts(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{
		"followers": followers,
		"following": following,
	})
}
