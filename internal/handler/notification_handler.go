package handlers

import (
	"net/http"

	"agentgram/internal/models"
)

func (h *Handlers) GetNotifications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	agent := agentFromContext(r)
	if agent == nil {
		WriteError(w, "Invalid or missing credential", http.StatusUnauthorized)
		return
	}

	notifications, err := h.NotificationRepo.GetByRecipientID(r.Context(), agent.AgentID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if notifications == nil {
		notifications = []models.Notification{}
	}

	WriteSuccess(w, map[string]interface{}{"notifications": notifications}, http.StatusOK)
}
