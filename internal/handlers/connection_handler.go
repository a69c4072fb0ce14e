package handlers

import (
	"net/http"

	"github.com/anuarbek-t/sociograph/internal/services"
	log "github.com/sirupsen/logrus"
)

// ConnectionHandler handles HTTP requests for connection edges.
type ConnectionHandler struct {
	Service *services.ConnectionService
}

func NewConnectionHandler(service *services.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{Service: service}
}

// SendRequestHandler sends a connection request to the user in the path.
func (h *ConnectionHandler) SendRequestHandler(w http.ResponseWriter, r *http.Request) {
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

	conn, err := h.Service.SendRequest(r.Context(), userID, targetID)
	if err != nil {
		writeError(w, err)
		return
	}

	log.WithField("connectionID", conn.ID.Hex()).Info("Connection request sent")
	writeJSON(w, http.StatusCreated, conn)
}

// AcceptRequestHandler accepts a pending request addressed to the caller.
func (h *ConnectionHandler) AcceptRequestHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	requestID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	conn, err := h.Service.AcceptRequest(r.Context(), requestID, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conn)
}

// DeclineRequestHandler declines a pending request addressed to the caller.
func (h *ConnectionHandler) DeclineRequestHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	requestID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.Service.DeclineRequest(r.Context(), requestID, userID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "declined"})
}

// CancelRequestHandler withdraws a pending request the caller sent.
func (h *ConnectionHandler) CancelRequestHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	requestID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.Service.CancelRequest(r.Context(), requestID, userID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

// RemoveConnectionHandler removes the accepted connection with the user in
// the path.
func (h *ConnectionHandler) RemoveConnectionHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	peerID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.Service.RemoveConnection(r.Context(), userID, peerID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// ConnectionsHandler lists the caller's accepted connections.
func (h *ConnectionHandler) ConnectionsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	result, err := h.Service.Connections(r.Context(), userID, pageOptions(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// PendingIncomingHandler lists pending requests addressed to the caller.
func (h *ConnectionHandler) PendingIncomingHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	result, err := h.Service.PendingIncoming(r.Context(), userID, pageOptions(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// PendingOutgoingHandler lists pending requests the caller sent.
func (h *ConnectionHandler) PendingOutgoingHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	result, err := h.Service.PendingOutgoing(r.Context(), userID, pageOptions(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// MutualConnectionsHandler lists users connected to both the caller and the
// user in the path.
func (h *ConnectionHandler) MutualConnectionsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	otherID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	mutual, err := h.Service.MutualConnections(r.Context(), userID, otherID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mutual)
}
