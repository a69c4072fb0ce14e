package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/anuarbek-t/sociograph/internal/services"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GroupHandler handles HTTP requests for groups and membership.
type GroupHandler struct {
	Service *services.GroupService
}

func NewGroupHandler(service *services.GroupService) *GroupHandler {
	return &GroupHandler{Service: service}
}

// CreateGroupHandler creates a group owned by the caller.
func (h *GroupHandler) CreateGroupHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input services.CreateGroupInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	group, err := h.Service.CreateGroup(r.Context(), userID, input)
	if err != nil {
		writeError(w, err)
		return
	}

	log.WithField("groupID", group.ID.Hex()).Info("Group created")
	writeJSON(w, http.StatusCreated, group)
}

// GetGroupHandler fetches one group.
func (h *GroupHandler) GetGroupHandler(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	group, err := h.Service.GetGroup(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

// ListGroupsHandler lists groups, optionally filtered by privacy.
func (h *GroupHandler) ListGroupsHandler(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if privacy := r.URL.Query().Get("privacy"); privacy != "" {
		filter["privacy"] = privacy
	}

	result, err := h.Service.Groups(r.Context(), filter, pageOptions(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// JoinGroupHandler joins (or requests to join) the group in the path.
func (h *GroupHandler) JoinGroupHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	groupID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	group, err := h.Service.JoinGroup(r.Context(), userID, groupID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

// LeaveGroupHandler leaves the group in the path.
func (h *GroupHandler) LeaveGroupHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	groupID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.Service.LeaveGroup(r.Context(), userID, groupID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "left"})
}

func (h *GroupHandler) memberAction(w http.ResponseWriter, r *http.Request, action func(actor, group, user primitive.ObjectID) error) {
	actor, ok := actorID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	groupID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := action(actor, groupID, userID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ApprovePendingHandler approves a pending membership request.
func (h *GroupHandler) ApprovePendingHandler(w http.ResponseWriter, r *http.Request) {
	h.memberAction(w, r, func(actor, group, user primitive.ObjectID) error {
		_, err := h.Service.ApprovePending(r.Context(), actor, group, user)
		return err
	})
}

// RejectPendingHandler rejects a pending membership request.
func (h *GroupHandler) RejectPendingHandler(w http.ResponseWriter, r *http.Request) {
	h.memberAction(w, r, func(actor, group, user primitive.ObjectID) error {
		return h.Service.RejectPending(r.Context(), actor, group, user)
	})
}

// RemoveMemberHandler removes a member from the group.
func (h *GroupHandler) RemoveMemberHandler(w http.ResponseWriter, r *http.Request) {
	h.memberAction(w, r, func(actor, group, user primitive.ObjectID) error {
		return h.Service.RemoveMember(r.Context(), actor, group, user)
	})
}

// PromoteAdminHandler promotes a member to admin.
func (h *GroupHandler) PromoteAdminHandler(w http.ResponseWriter, r *http.Request) {
	h.memberAction(w, r, func(actor, group, user primitive.ObjectID) error {
		_, err := h.Service.PromoteToAdmin(r.Context(), actor, group, user)
		return err
	})
}

// PromoteCoLeaderHandler promotes a member to co-leader.
func (h *GroupHandler) PromoteCoLeaderHandler(w http.ResponseWriter, r *http.Request) {
	h.memberAction(w, r, func(actor, group, user primitive.ObjectID) error {
		_, err := h.Service.PromoteToCoLeader(r.Context(), actor, group, user)
		return err
	})
}

// DemoteRoleHandler strips elevated roles from a member.
func (h *GroupHandler) DemoteRoleHandler(w http.ResponseWriter, r *http.Request) {
	h.memberAction(w, r, func(actor, group, user primitive.ObjectID) error {
		_, err := h.Service.DemoteRole(r.Context(), actor, group, user)
		return err
	})
}

// DeleteGroupHandler soft-deletes the group.
func (h *GroupHandler) DeleteGroupHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	groupID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.Service.DeleteGroup(r.Context(), userID, groupID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
