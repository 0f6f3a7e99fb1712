package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

type RegisterWebhookRequest struct {
	URL    string   `json:"url" validate:"required"`
	Events []string `json:"events"`
	Secret string   `json:"secret"`
}

// Webhooks serves registration (POST), inspection (GET) and removal
// (DELETE) of the agent's single webhook.
func (h *Handlers) Webhooks(w http.ResponseWriter, r *http.Request) {
	agent := agentFromContext(r)
	if agent == nil {
		WriteError(w, "Invalid or missing credential", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodPost:
		h.registerWebhook(w, r, agent.AgentID)
	case http.MethodGet:
		h.getWebhook(w, r, agent.AgentID)
	case http.MethodDelete:
		h.deleteWebhook(w, r, agent.AgentID)
	default:
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handlers) registerWebhook(w http.ResponseWriter, r *http.Request, agentID string) {
	var req RegisterWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "url is required", http.StatusBadRequest)
		return
	}

	webhook, err := h.WebhookService.Register(r.Context(), agentID, req.URL, req.Events, req.Secret)
	if err != nil {
		if strings.Contains(err.Error(), "invalid webhook url") ||
			strings.Contains(err.Error(), "unknown event") {
			WriteError(w, err.Error(), http.StatusBadRequest)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success": true,
		"webhook": webhook,
	}, http.StatusCreated)
}

func (h *Handlers) getWebhook(w http.ResponseWriter, r *http.Request, agentID string) {
	webhook, err := h.WebhookService.Get(r.Context(), agentID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if webhook == nil {
		WriteSuccess(w, map[string]interface{}{"webhook": nil}, http.StatusOK)
		return
	}

	WriteSuccess(w, map[string]interface{}{"webhook": webhook}, http.StatusOK)
}

func (h *Handlers) deleteWebhook(w http.ResponseWriter, r *http.Request, agentID string) {
	if err := h.WebhookService.Unregister(r.Context(), agentID); err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]bool{"success": true}, http.StatusOK)
}
